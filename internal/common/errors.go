package common

import (
	"errors"
	"fmt"
)

// Pipeline error kinds. Every stage of the analysis pipeline wraps its
// failures around exactly one of these sentinels so that callers can map
// them to user-visible outcomes without string matching.
var (
	// ErrUnsupportedFormat means the declared MIME type selects no extractor.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrExtraction means a selected extractor failed on its input.
	ErrExtraction = errors.New("text extraction failed")

	// ErrSubprocess means the OCR subprocess exited nonzero, produced
	// unparsable output, or could not be launched.
	ErrSubprocess = errors.New("ocr subprocess failed")

	// ErrRejected means the classifier vetoed the extracted text.
	ErrRejected = errors.New("document rejected by classifier")

	// ErrModel means a generative model call had missing input or produced
	// no usable output.
	ErrModel = errors.New("model inference failed")

	// ErrPersistence means the document store could not be written.
	ErrPersistence = errors.New("persistence failed")

	// ErrNotFound means a record lookup missed.
	ErrNotFound = errors.New("document not found")

	// ErrEmptyContext means a stored record carries no extracted text to
	// ground an explanation on.
	ErrEmptyContext = errors.New("document context is empty")
)

// WrapError attaches a message while preserving the sentinel chain.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// IsClientFault reports whether err should surface as a 4xx rather than a
// processing failure. Rejections and empty-context requests are the caller's
// document being out of scope, not a system fault.
func IsClientFault(err error) bool {
	return errors.Is(err, ErrRejected) || errors.Is(err, ErrEmptyContext)
}
