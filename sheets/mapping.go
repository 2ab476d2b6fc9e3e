package sheets

import (
	"strconv"
	"strings"
)

// Target types recognized in the mapping table.
const (
	TargetShape     = "shape"
	TargetTableCell = "table_cell"
)

// MappingRow is one row of the mapping table: it binds a spreadsheet range to
// a named target in the deck and a display format. Rows are immutable once
// parsed.
type MappingRow struct {
	ID         string
	SheetRange string
	SlideIndex int
	TargetType string
	ObjectName string
	Row        int // 1-based table row, 0 when unset
	Col        int // 1-based table column, 0 when unset
	Format     string
	Prefix     string
	Suffix     string
	Notes      string
}

// HasCell reports whether both table coordinates are present.
func (m MappingRow) HasCell() bool {
	return m.Row != 0 && m.Col != 0
}

// Fixed column layout of the mapping sheet. The header row is excluded by the
// loaders before rows reach RowFromCells.
const (
	colID = iota
	colSheetRange
	colSlideIndex
	colTargetType
	colObjectName
	colRow
	colCol
	colFormat
	colPrefix
	colSuffix
	colNotes
)

// RowFromCells builds a MappingRow from a raw spreadsheet row. Missing or
// malformed cells degrade to column defaults; out-of-range access never
// faults.
func RowFromCells(cells []any) MappingRow {
	slideIndex := cellInt(cells, colSlideIndex, 1)
	if slideIndex == 0 {
		slideIndex = 1
	}
	return MappingRow{
		ID:         cellString(cells, colID, ""),
		SheetRange: cellString(cells, colSheetRange, ""),
		SlideIndex: slideIndex,
		TargetType: strings.ToLower(cellString(cells, colTargetType, TargetShape)),
		ObjectName: cellString(cells, colObjectName, ""),
		Row:        cellInt(cells, colRow, 0),
		Col:        cellInt(cells, colCol, 0),
		Format:     cellString(cells, colFormat, "text"),
		Prefix:     cellString(cells, colPrefix, ""),
		Suffix:     cellString(cells, colSuffix, ""),
		Notes:      cellString(cells, colNotes, ""),
	}
}

// RowsFromCells converts a block of raw rows into mapping rows, skipping rows
// that are entirely empty and rows whose sheet-range column is blank (comment
// or spacer rows).
func RowsFromCells(rows [][]any) []MappingRow {
	var mappings []MappingRow
	for _, cells := range rows {
		if allBlank(cells) {
			continue
		}
		if cellString(cells, colSheetRange, "") == "" {
			continue
		}
		mappings = append(mappings, RowFromCells(cells))
	}
	return mappings
}

func allBlank(cells []any) bool {
	for _, c := range cells {
		if cellText(c) != "" {
			return false
		}
	}
	return true
}

// cellText renders a cell value as text. Numeric cells keep their shortest
// decimal form so "3" round-trips as "3", not "3.000000".
func cellText(c any) string {
	switch v := c.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// cellString returns the cell's text form, or def when the cell is missing or
// nil. A present-but-empty cell stays empty; defaults cover absence only.
func cellString(cells []any, index int, def string) string {
	if index >= len(cells) || cells[index] == nil {
		return def
	}
	return cellText(cells[index])
}

// cellInt parses an integer column, tolerating float-typed cells and numeric
// strings such as "3.0". Blank or unparsable cells yield def.
func cellInt(cells []any, index int, def int) int {
	if index >= len(cells) || cells[index] == nil {
		return def
	}
	switch v := cells[index].(type) {
	case int:
		return v
	case float64:
		return int(v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return def
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return def
		}
		return int(f)
	default:
		return def
	}
}
