package main

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"decksync/config"
	"decksync/deck"
	"decksync/format"
	"decksync/sheets"
)

// UpdateService drives one update run: read the mapping table, batch-fetch
// the referenced values, format each value and apply it to its deck target,
// then persist the deck. Rows fail individually; only source-level faults
// abort the run.
type UpdateService struct {
	cfg     *config.Config
	source  sheets.Source
	bridge  *deck.Bridge
	dryRun  bool
	output  string // save path; empty means overwrite the opened deck
	verbose bool
}

// NewUpdateService wires an update run.
func NewUpdateService(cfg *config.Config, source sheets.Source, bridge *deck.Bridge) *UpdateService {
	return &UpdateService{
		cfg:    cfg,
		source: source,
		bridge: bridge,
		dryRun: cfg.DryRun,
	}
}

// SetDryRun overrides the config's dry-run flag (CLI flag wins).
func (s *UpdateService) SetDryRun(dryRun bool) { s.dryRun = dryRun }

// SetOutput redirects the saved deck to a different path.
func (s *UpdateService) SetOutput(path string) { s.output = path }

// SetVerbose enables per-row debug logging.
func (s *UpdateService) SetVerbose(v bool) { s.verbose = v }

// RunReport aggregates the outcome of one run.
type RunReport struct {
	RunID     string
	DryRun    bool
	StartedAt time.Time
	Succeeded int
	Failed    int
	Errors    []string
}

// Run executes the update. The returned error is non-nil only for
// batch-fatal faults (mapping read, value fetch); per-row failures are
// reported through the RunReport.
func (s *UpdateService) Run() (*RunReport, error) {
	report := &RunReport{
		RunID:     uuid.New().String(),
		DryRun:    s.dryRun,
		StartedAt: time.Now(),
	}

	mappings, err := s.source.ReadMapping()
	if err != nil {
		return nil, fmt.Errorf("read mappings: %w", err)
	}
	if len(mappings) == 0 {
		log.Printf("no mappings found; nothing to do")
		return report, nil
	}
	log.Printf("found %d mappings to process", len(mappings))

	ranges := fetchKeys(mappings)
	if len(ranges) == 0 {
		log.Printf("no valid sheet ranges found in mappings")
		return report, nil
	}

	values, err := s.source.BatchGetValues(ranges)
	if err != nil {
		return nil, fmt.Errorf("fetch values: %w", err)
	}
	log.Printf("fetched %d values", len(values))

	for _, m := range mappings {
		raw := values[m.SheetRange]
		msg, err := s.processMapping(m, raw)
		if err != nil {
			report.Failed++
			report.Errors = append(report.Errors, fmt.Sprintf("mapping %q: %v", m.ID, err))
			log.Printf("failed to update %q: %v", m.ID, err)
			continue
		}
		report.Succeeded++
		if s.verbose {
			log.Printf("updated %q: %s", m.ID, msg)
		}
	}

	if !s.dryRun && report.Succeeded > 0 {
		if err := s.bridge.Save(s.output); err != nil {
			report.Failed++
			report.Errors = append(report.Errors, fmt.Sprintf("save deck: %v", err))
			log.Printf("failed to save deck: %v", err)
		}
	}

	return report, nil
}

// fetchKeys returns the deduplicated, sorted set of non-empty sheet ranges.
// A range shared by several mappings is fetched once.
func fetchKeys(mappings []sheets.MappingRow) []string {
	seen := make(map[string]struct{})
	var keys []string
	for _, m := range mappings {
		if m.SheetRange == "" {
			continue
		}
		if _, ok := seen[m.SheetRange]; ok {
			continue
		}
		seen[m.SheetRange] = struct{}{}
		keys = append(keys, m.SheetRange)
	}
	sort.Strings(keys)
	return keys
}

// processMapping formats one value and dispatches it to the mapping's
// target. In dry-run mode it validates the row and reports the would-be
// change without touching the deck.
func (s *UpdateService) processMapping(m sheets.MappingRow, raw any) (string, error) {
	formatted := format.Value(raw, m.Format, m.Prefix, m.Suffix, s.cfg.Defaults.EmptyValue)
	if s.verbose {
		log.Printf("mapping %q: %v -> %q", m.ID, raw, formatted)
	}

	switch m.TargetType {
	case sheets.TargetShape:
		if s.dryRun {
			log.Printf("[dry run] would update shape %q on slide %d to %q", m.ObjectName, m.SlideIndex, formatted)
			return "dry run - no changes made", nil
		}
		return s.bridge.UpdateShapeText(m.SlideIndex, m.ObjectName, formatted)
	case sheets.TargetTableCell:
		if !m.HasCell() {
			return "", fmt.Errorf("table cell mapping is missing row or col index")
		}
		if s.dryRun {
			log.Printf("[dry run] would update table %q cell (%d,%d) on slide %d to %q",
				m.ObjectName, m.Row, m.Col, m.SlideIndex, formatted)
			return "dry run - no changes made", nil
		}
		return s.bridge.UpdateTableCell(m.SlideIndex, m.ObjectName, m.Row, m.Col, formatted)
	default:
		return "", fmt.Errorf("unknown target type %q", m.TargetType)
	}
}
