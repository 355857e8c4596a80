package report

import (
	"fmt"

	"github.com/SELAB-AA/fragbinpacking-optimizer/internal/model"
	"github.com/xuri/excelize/v2"
)

// RunBlocks is one run's block table: the solution a caller wants broken
// out row-by-row, together with the bin capacity needed to compute each
// block's slack.
type RunBlocks struct {
	RunID       RunID
	BinCapacity uint32
	Solution    *model.Solution
}

var blockTableHeader = []string{"Block", "Begin", "End", "Item count", "Bin count", "Size", "Slack"}

// WriteXLSX writes one sheet per run and one row per block — the
// spreadsheet analogue of the teacher's part-list import sheet, read back
// out in block form rather than part form.
func WriteXLSX(path string, runs []RunBlocks) error {
	if len(runs) == 0 {
		return fmt.Errorf("no runs to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	usedNames := make(map[string]int)

	for i, run := range runs {
		sheetName := sheetNameFor(run.RunID, usedNames)

		var err error
		if i == 0 {
			err = f.SetSheetName(f.GetSheetName(0), sheetName)
		} else {
			_, err = f.NewSheet(sheetName)
		}
		if err != nil {
			return fmt.Errorf("write xlsx report: %w", err)
		}

		if err := writeBlockSheet(f, sheetName, run); err != nil {
			return fmt.Errorf("write xlsx report: %w", err)
		}
	}

	return f.SaveAs(path)
}

func writeBlockSheet(f *excelize.File, sheetName string, run RunBlocks) error {
	for col, header := range blockTableHeader {
		cellRef, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cellRef, header); err != nil {
			return err
		}
	}

	if run.Solution == nil {
		return nil
	}

	for i, b := range run.Solution.Blocks {
		row := i + 2
		values := []interface{}{
			i + 1,
			b.Begin,
			b.End,
			b.ItemCount(),
			b.BinCount,
			b.Size,
			b.Slack(run.BinCapacity),
		}
		for col, v := range values {
			cellRef, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cellRef, v); err != nil {
				return err
			}
		}
	}

	return nil
}

// sheetNameFor derives a valid, unique Excel sheet name from a RunID,
// appending a counter suffix on collision the way spreadsheet software
// does when duplicating a sheet.
func sheetNameFor(id RunID, used map[string]int) string {
	base := string(id)
	if base == "" {
		base = "run"
	}

	name := base
	if n, ok := used[base]; ok {
		n++
		used[base] = n
		name = fmt.Sprintf("%s (%d)", base, n)
	} else {
		used[base] = 0
	}
	return name
}
