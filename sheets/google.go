package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// GoogleConfig holds the connection parameters for a Google Sheets source.
type GoogleConfig struct {
	CredentialsFile string `yaml:"credentials_file"`
	SpreadsheetID   string `yaml:"spreadsheet_id"`
	MappingSheet    string `yaml:"mapping_sheet"`
}

// GoogleSource reads the mapping tab and cell values from a Google
// spreadsheet through the Sheets v4 API, read-only scope.
type GoogleSource struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	mappingSheet  string
}

// NewGoogleSource builds the API client. Credential handling is delegated to
// the Google client library; only the service-account/credentials file path
// is ours to pass through.
func NewGoogleSource(ctx context.Context, cfg GoogleConfig) (*GoogleSource, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("google source: spreadsheet_id is required")
	}
	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(sheetsapi.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	mappingSheet := cfg.MappingSheet
	if mappingSheet == "" {
		mappingSheet = "KeynoteMap"
	}
	return &GoogleSource{svc: svc, spreadsheetID: cfg.SpreadsheetID, mappingSheet: mappingSheet}, nil
}

// ReadMapping pulls the mapping tab, skipping the header row (A2:K).
func (g *GoogleSource) ReadMapping() ([]MappingRow, error) {
	rangeName := fmt.Sprintf("'%s'!A2:K", g.mappingSheet)
	resp, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, rangeName).Do()
	if err != nil {
		return nil, fmt.Errorf("read mapping sheet %s: %w", g.mappingSheet, err)
	}
	rows := make([][]any, len(resp.Values))
	for i, r := range resp.Values {
		rows[i] = r
	}
	return RowsFromCells(rows), nil
}

// BatchGetValues fetches all ranges in one API call. Each range maps to its
// first cell value; empty ranges map to nil.
func (g *GoogleSource) BatchGetValues(ranges []string) (map[string]any, error) {
	if len(ranges) == 0 {
		return map[string]any{}, nil
	}
	resp, err := g.svc.Spreadsheets.Values.BatchGet(g.spreadsheetID).Ranges(ranges...).Do()
	if err != nil {
		return nil, fmt.Errorf("batch get %d ranges: %w", len(ranges), err)
	}
	values := make(map[string]any, len(ranges))
	for i, vr := range resp.ValueRanges {
		if i >= len(ranges) {
			break
		}
		key := ranges[i]
		values[key] = nil
		if len(vr.Values) > 0 && len(vr.Values[0]) > 0 {
			values[key] = vr.Values[0][0]
		}
	}
	return values, nil
}
