package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// PendingHoldersXLSX renders the pending-registration summary as a
// spreadsheet.
func PendingHoldersXLSX(rows []PendingHolderRow) ([]byte, error) {
	recs := make([][]string, 0, len(rows))
	for _, r := range rows {
		recs = append(recs, r.cells())
	}
	return writeXLSX("Pending Holders", pendingHeader, recs)
}

// CompletionXLSX renders the completion report as a spreadsheet.
func CompletionXLSX(rows []CompletionRow) ([]byte, error) {
	recs := make([][]string, 0, len(rows))
	for _, r := range rows {
		recs = append(recs, r.cells())
	}
	return writeXLSX("Survey Completion", completionHeader, recs)
}

func writeXLSX(sheet string, header []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	// WriteToBuffer needs the file open, so no deferred Close before it.
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	for col, h := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	for i, rec := range rows {
		for col, v := range rec {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
