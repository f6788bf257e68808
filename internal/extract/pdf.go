package extract

import (
	"bytes"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"legalease-platform/internal/common"
)

// extractPDF pulls plain text from every page of a PDF file.
func extractPDF(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", common.WrapError(common.ErrExtraction, "failed to read PDF file")
	}

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", common.WrapError(common.ErrExtraction, "failed to parse PDF")
	}

	var textBuilder strings.Builder
	pages := reader.NumPage()

	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		fonts := make(map[string]*pdf.Font)
		text, err := page.GetPlainText(fonts)
		if err != nil {
			// A single unreadable page does not fail the document.
			continue
		}

		if textBuilder.Len() > 0 {
			textBuilder.WriteString("\n")
		}
		textBuilder.WriteString(text)
	}

	return textBuilder.String(), nil
}
