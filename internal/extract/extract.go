// Package extract converts uploaded files of known formats into raw text.
// The declared MIME type selects exactly one extractor; there are no
// fallbacks across extractors. Image types are routed to the OCR bridge.
package extract

import (
	"context"
	"mime"
	"strings"

	"legalease-platform/internal/common"
	"legalease-platform/internal/ocr"
)

const (
	mimePDF  = "application/pdf"
	mimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeText = "text/plain"
)

// Extractor dispatches per-format text extraction.
type Extractor struct {
	recognizer ocr.Recognizer
}

// New creates an Extractor. The recognizer handles image/* inputs.
func New(recognizer ocr.Recognizer) *Extractor {
	return &Extractor{recognizer: recognizer}
}

// Text extracts the full text of the file at path according to its declared
// MIME type. It returns ErrUnsupportedFormat for non-image types with no
// extractor, ErrExtraction for corrupt or empty input, and ErrSubprocess
// for OCR process failures.
func (e *Extractor) Text(ctx context.Context, path, declaredMimeType string) (string, error) {
	sanitized := sanitizeMimeType(declaredMimeType)

	var text string
	var err error

	switch {
	case sanitized == mimePDF:
		text, err = extractPDF(path)
	case sanitized == mimeDocx:
		text, err = extractDocx(path)
	case sanitized == mimeText:
		text, err = extractTxt(path)
	case strings.HasPrefix(sanitized, "image/"):
		text, err = e.recognizer.Recognize(ctx, path)
	default:
		return "", common.WrapError(common.ErrUnsupportedFormat, "no extractor for "+sanitized)
	}

	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", common.WrapError(common.ErrExtraction, "no text extracted from "+path)
	}
	return text, nil
}

// sanitizeMimeType normalizes a declared Content-Type down to its bare media
// type. Declared types often carry parameters ("text/plain; charset=utf-8")
// which must not change dispatch.
func sanitizeMimeType(declared string) string {
	declared = strings.ToLower(strings.TrimSpace(declared))
	if mediaType, _, err := mime.ParseMediaType(declared); err == nil {
		return mediaType
	}
	return declared
}
