package services

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"legalease-platform/internal/store"
)

const exportSheet = "Documents"

// ExportRecordsXLSX renders the full record collection as a spreadsheet,
// one row per document. Extracted text is left out on purpose; the export
// is an inventory, not a content dump.
func ExportRecordsXLSX(ctx context.Context, repo store.Repository) (*excelize.File, error) {
	records, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", exportSheet)

	header := []interface{}{"ID", "File Name", "MIME Type", "Status", "Summary", "Created At"}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, r := range records {
		row := []interface{}{
			r.ID,
			r.FileName,
			r.MimeType,
			r.Status,
			r.Summary,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	return f, nil
}
