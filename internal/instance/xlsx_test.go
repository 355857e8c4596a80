package instance

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func createTestWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "items.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save workbook: %v", err)
	}
	return path
}

func TestParseXLSXWithHeaderAndCountColumn(t *testing.T) {
	path := createTestWorkbook(t, [][]interface{}{
		{"Size", "Count"},
		{4, 3},
		{9, 1},
	})

	got, err := ParseXLSX(path)
	if err != nil {
		t.Fatalf("ParseXLSX returned error: %v", err)
	}

	want := []uint32{4, 4, 4, 9}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}

func TestParseXLSXWithoutHeaderDefaultsToOneItemPerRow(t *testing.T) {
	path := createTestWorkbook(t, [][]interface{}{
		{5},
		{7},
		{7},
	})

	got, err := ParseXLSX(path)
	if err != nil {
		t.Fatalf("ParseXLSX returned error: %v", err)
	}

	want := []uint32{5, 7, 7}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestParseXLSXRejectsMissingSizeValue(t *testing.T) {
	path := createTestWorkbook(t, [][]interface{}{
		{"Size", "Count"},
		{nil, 2},
	})

	_, err := ParseXLSX(path)
	if err == nil {
		t.Fatal("expected an error for a missing size value")
	}
}

func TestParseXLSXItemCountsCompressesDuplicateSizes(t *testing.T) {
	path := createTestWorkbook(t, [][]interface{}{
		{"Size", "Count"},
		{4, 3},
		{9, 1},
	})

	got, err := ParseXLSXItemCounts(path)
	if err != nil {
		t.Fatalf("ParseXLSXItemCounts returned error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 distinct sizes, got %d", len(got))
	}
	if got[0].Size != 9 || got[0].Count != 1 {
		t.Errorf("expected first entry {9,1}, got %+v", got[0])
	}
	if got[1].Size != 4 || got[1].Count != 3 {
		t.Errorf("expected second entry {4,3}, got %+v", got[1])
	}
}
