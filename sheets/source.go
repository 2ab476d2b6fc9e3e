// Package sheets supplies the mapping table and raw cell values that drive a
// deck update. The mapping model is parsed here; the actual data can come
// from Google Sheets, a local workbook file, or an in-memory mock.
package sheets

import "fmt"

// Source is the value-source contract the orchestrator consumes: one read of
// the mapping table and one batch fetch of cell values per run.
type Source interface {
	// ReadMapping returns the ordered mapping rows, header excluded,
	// comment/blank rows already filtered out.
	ReadMapping() ([]MappingRow, error)
	// BatchGetValues fetches the given ranges in a single call. Ranges that
	// resolve to nothing map to nil.
	BatchGetValues(ranges []string) (map[string]any, error)
}

// GetSingleValue fetches one range through a Source's batch call.
func GetSingleValue(src Source, rangeName string) (any, error) {
	values, err := src.BatchGetValues([]string{rangeName})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rangeName, err)
	}
	return values[rangeName], nil
}

// MockSource serves canned mappings and values for tests and offline runs.
type MockSource struct {
	Mappings []MappingRow
	Values   map[string]any

	// Fetched records every range passed to BatchGetValues, in call order.
	Fetched []string
}

func (m *MockSource) ReadMapping() ([]MappingRow, error) {
	return m.Mappings, nil
}

func (m *MockSource) BatchGetValues(ranges []string) (map[string]any, error) {
	result := make(map[string]any, len(ranges))
	for _, r := range ranges {
		m.Fetched = append(m.Fetched, r)
		result[r] = m.Values[r]
	}
	return result, nil
}
