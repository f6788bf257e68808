package extract

import (
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"legalease-platform/internal/common"
)

// extractTxt reads a plain text file as UTF-8. Files that are not valid
// UTF-8 get one retry as latin-1 before failing; real-world text uploads
// from older systems are frequently in a single-byte legacy encoding.
func extractTxt(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", common.WrapError(common.ErrExtraction, "failed to read text file")
	}

	if utf8.Valid(data) {
		return string(data), nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", common.WrapError(common.ErrExtraction, "failed to decode text file")
	}
	return string(decoded), nil
}
