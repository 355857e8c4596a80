package instance

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/SELAB-AA/fragbinpacking-optimizer/internal/model"
	"github.com/xuri/excelize/v2"
)

// xlsxColumnMapping maps the two semantic roles a spreadsheet of item sizes
// can carry to their column indices: size is required, count is optional
// (a missing count column means "one item per row").
type xlsxColumnMapping struct {
	Size  int
	Count int
}

// sizeHeaderAliases and countHeaderAliases mirror the teacher's header
// alias table, narrowed to the two columns a 1D item list needs.
var (
	sizeHeaderAliases  = []string{"size", "length", "len", "width", "w", "item", "item size"}
	countHeaderAliases = []string{"count", "quantity", "qty", "num", "amount", "pcs", "pieces"}
)

// detectXLSXColumns examines a header row and returns a xlsxColumnMapping,
// falling back to positional mapping (size in column 0, count in column 1)
// when no recognized header is present.
func detectXLSXColumns(row []string) (xlsxColumnMapping, bool) {
	mapping := xlsxColumnMapping{Size: -1, Count: -1}
	isHeader := false

	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for _, alias := range sizeHeaderAliases {
			if normalized == alias && mapping.Size == -1 {
				isHeader = true
				mapping.Size = i
			}
		}
		for _, alias := range countHeaderAliases {
			if normalized == alias && mapping.Count == -1 {
				isHeader = true
				mapping.Count = i
			}
		}
	}

	if !isHeader {
		return xlsxColumnMapping{Size: 0, Count: 1}, false
	}
	return mapping, true
}

// ParseXLSX reads the first sheet of an Excel workbook and returns the
// item sizes it lists, expanded by each row's count column when present.
// A row whose count column is blank or absent contributes exactly one
// item.
func ParseXLSX(path string) ([]uint32, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("parse xlsx instance: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("parse xlsx instance: %w: workbook has no sheets", ErrMalformedInstance)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("parse xlsx instance: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("parse xlsx instance: %w: sheet %q is empty", ErrMalformedInstance, sheets[0])
	}

	mapping, hasHeader := detectXLSXColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		if mapping.Size == -1 {
			return nil, fmt.Errorf("parse xlsx instance: %w: no size column found in header", ErrMalformedInstance)
		}
	}

	var sizes []uint32
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isBlankRow(row) {
			continue
		}

		sizeStr := cellAt(row, mapping.Size)
		if sizeStr == "" {
			return nil, fmt.Errorf("parse xlsx instance row %d: %w: missing size value", i+1, ErrMalformedInstance)
		}
		size, err := strconv.ParseUint(sizeStr, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("parse xlsx instance row %d: %w: invalid size %q", i+1, ErrMalformedInstance, sizeStr)
		}

		count := 1
		if countStr := cellAt(row, mapping.Count); countStr != "" {
			count, err = strconv.Atoi(countStr)
			if err != nil {
				return nil, fmt.Errorf("parse xlsx instance row %d: %w: invalid count %q", i+1, ErrMalformedInstance, countStr)
			}
		}

		for j := 0; j < count; j++ {
			sizes = append(sizes, uint32(size))
		}
	}

	return sizes, nil
}

// ParseXLSXItemCounts is ParseXLSX followed by a frequency count: the
// expanded sizes are sorted descending and grouped into one (size, count)
// pair per distinct size, for callers that want the compressed form directly.
func ParseXLSXItemCounts(path string) ([]*model.ItemCount, error) {
	sizes, err := ParseXLSX(path)
	if err != nil {
		return nil, err
	}
	return model.FrequencyCount(sortDescending(sizes)), nil
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func sortDescending(sizes []uint32) []uint32 {
	sorted := make([]uint32, len(sizes))
	copy(sorted, sizes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] > sorted[j] })
	return sorted
}
