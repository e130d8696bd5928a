package export

import (
	"bytes"
	"encoding/csv"
)

// PendingHoldersCSV renders the pending-registration summary.
func PendingHoldersCSV(rows []PendingHolderRow) ([]byte, error) {
	recs := make([][]string, 0, len(rows))
	for _, r := range rows {
		recs = append(recs, r.cells())
	}
	return writeCSV(pendingHeader, recs)
}

// CompletionCSV renders the survey completion report.
func CompletionCSV(rows []CompletionRow) ([]byte, error) {
	recs := make([][]string, 0, len(rows))
	for _, r := range rows {
		recs = append(recs, r.cells())
	}
	return writeCSV(completionHeader, recs)
}

func writeCSV(header []string, rows [][]string) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, rec := range rows {
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
