package sheets

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// WorkbookConfig points the workbook source at a local .xlsx file.
type WorkbookConfig struct {
	FilePath     string `yaml:"file_path"`
	MappingSheet string `yaml:"mapping_sheet"`
}

// WorkbookSource serves mappings and values from a local Excel workbook,
// using the same sheet layout as the hosted spreadsheet: a mapping tab with a
// header row, and value cells addressed by "Sheet!A1" ranges.
type WorkbookSource struct {
	file         *excelize.File
	mappingSheet string
}

// OpenWorkbook opens the workbook file. Callers own Close.
func OpenWorkbook(cfg WorkbookConfig) (*WorkbookSource, error) {
	f, err := excelize.OpenFile(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", cfg.FilePath, err)
	}
	mappingSheet := cfg.MappingSheet
	if mappingSheet == "" {
		mappingSheet = "KeynoteMap"
	}
	return &WorkbookSource{file: f, mappingSheet: mappingSheet}, nil
}

// Close releases the underlying workbook.
func (w *WorkbookSource) Close() error {
	return w.file.Close()
}

// ReadMapping reads the mapping tab, skipping the header row.
func (w *WorkbookSource) ReadMapping() ([]MappingRow, error) {
	rows, err := w.file.GetRows(w.mappingSheet)
	if err != nil {
		return nil, fmt.Errorf("read mapping sheet %s: %w", w.mappingSheet, err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	raw := make([][]any, 0, len(rows)-1)
	for _, r := range rows[1:] {
		cells := make([]any, len(r))
		for i, c := range r {
			cells[i] = c
		}
		raw = append(raw, cells)
	}
	return RowsFromCells(raw), nil
}

// BatchGetValues resolves each "Sheet!Cell" range against the workbook. A
// range that cannot be resolved (unknown sheet, malformed cell reference)
// maps to nil rather than failing the batch; only opening the workbook is
// fatal.
func (w *WorkbookSource) BatchGetValues(ranges []string) (map[string]any, error) {
	values := make(map[string]any, len(ranges))
	for _, r := range ranges {
		sheet, cell, err := splitRange(r, w.file.GetSheetList())
		if err != nil {
			values[r] = nil
			continue
		}
		v, err := w.file.GetCellValue(sheet, cell)
		if err != nil || v == "" {
			values[r] = nil
			continue
		}
		values[r] = v
	}
	return values, nil
}

// splitRange splits "Sheet!B12" (quotes around the sheet name allowed) into
// its parts. A bare cell reference falls back to the workbook's first sheet.
func splitRange(r string, sheetList []string) (sheet, cell string, err error) {
	if i := strings.LastIndex(r, "!"); i >= 0 {
		sheet = strings.Trim(r[:i], "'")
		cell = r[i+1:]
	} else {
		if len(sheetList) == 0 {
			return "", "", fmt.Errorf("workbook has no sheets")
		}
		sheet = sheetList[0]
		cell = r
	}
	if sheet == "" || cell == "" {
		return "", "", fmt.Errorf("malformed range %q", r)
	}
	return sheet, cell, nil
}
