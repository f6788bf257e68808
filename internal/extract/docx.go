package extract

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"strings"

	"legalease-platform/internal/common"
)

// extractDocx reads the main document part of a DOCX archive and collects
// its run text, one line per paragraph. DOCX is a zip container whose body
// lives at word/document.xml.
func extractDocx(path string) (string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", common.WrapError(common.ErrExtraction, "failed to open DOCX archive")
	}
	defer archive.Close()

	var body io.ReadCloser
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			body, err = f.Open()
			if err != nil {
				return "", common.WrapError(common.ErrExtraction, "failed to open document part")
			}
			break
		}
	}
	if body == nil {
		return "", common.WrapError(common.ErrExtraction, "DOCX archive has no word/document.xml")
	}
	defer body.Close()

	text, err := collectDocxText(body)
	if err != nil {
		return "", common.WrapError(common.ErrExtraction, "failed to parse document part")
	}
	return text, nil
}

// collectDocxText walks the WordprocessingML token stream, appending <w:t>
// contents and breaking lines at paragraph ends.
func collectDocxText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)
	var sb strings.Builder
	inText := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}

	return sb.String(), nil
}
