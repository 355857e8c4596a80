package report

import (
	"fmt"

	"github.com/go-pdf/fpdf"
)

// Page layout constants (A4 portrait in mm), matched to the scale a text
// summary table needs rather than a 2D cut diagram.
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
)

// WritePDF writes one page per Result: run metadata, bin/lower-bound
// statistics, and a block/split/duration table across the four packing
// stages — the numeric analogue of the teacher's per-sheet cut diagram,
// since there is no 2D layout to draw for a 1D block list.
func WritePDF(path string, results []Result) error {
	if len(results) == 0 {
		return fmt.Errorf("no results to export")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for _, r := range results {
		pdf.AddPage()
		renderResultPage(pdf, r)
	}

	return pdf.OutputFileAndClose(path)
}

func renderResultPage(pdf *fpdf.Fpdf, r Result) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, fmt.Sprintf("Run %s", r.RunID), "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Run statistics", "", 0, "L", false, 0, "")
	y += 9

	statItems := []struct {
		label string
		value string
	}{
		{"Seed", fmt.Sprintf("%d", r.Seed)},
		{"Item count before reduction", fmt.Sprintf("%d", r.ItemCountBefore)},
		{"Item count after reduction", fmt.Sprintf("%d", r.ItemCountAfter)},
		{"Time spent in reduction", fmt.Sprintf("%.3fs", r.ReductionDuration.Seconds())},
		{"Bin count", fmt.Sprintf("%d", r.BinCount)},
		{"Lower bound", fmt.Sprintf("%d", r.LowerBound)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range statItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(70, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Stage results", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{50, 30, 30, 45}
	headers := []string{"Stage", "Blocks", "Splits", "Duration"}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	rows := []struct {
		name  string
		stage StageResult
	}{
		{"G", r.G},
		{"B3G", r.B3G},
		{"FFF Stage 1", r.FFFStage1},
		{"FFF Stage 2", r.FFFStage2},
	}

	pdf.SetFont("Helvetica", "", 10)
	for i, row := range rows {
		xPos = marginLeft
		rowData := []string{
			row.name,
			fmt.Sprintf("%d", row.stage.Blocks),
			fmt.Sprintf("%d", row.stage.Splits),
			fmt.Sprintf("%.4fs", row.stage.Duration.Seconds()),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Fragmented bin packing optimizer run summary", "", 0, "C", false, 0, "")
}
