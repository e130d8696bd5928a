package export

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"
)

// PendingHoldersPDF renders the pending-registration summary as a PDF
// suitable for the 24h review meeting handout.
func PendingHoldersPDF(rows []PendingHolderRow) ([]byte, error) {
	recs := make([][]string, 0, len(rows))
	for _, r := range rows {
		recs = append(recs, r.cells())
	}
	widths := []float64{25, 60, 45, 80, 30}
	return writePDF("Pending Holder Registrations", pendingHeader, widths, recs)
}

// CompletionPDF renders the completion report as a PDF.
func CompletionPDF(rows []CompletionRow) ([]byte, error) {
	recs := make([][]string, 0, len(rows))
	for _, r := range rows {
		recs = append(recs, r.cells())
	}
	widths := []float64{30, 90, 70, 30}
	return writePDF("Survey Completion Report", completionHeader, widths, recs)
}

func writePDF(title string, header []string, widths []float64, rows [][]string) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range header {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, rec := range rows {
		for i, v := range rec {
			pdf.CellFormat(widths[i], 7, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
