// decksync updates a slide-deck document with values fetched from a
// spreadsheet, driven by a declarative mapping table.
//
// Usage:
//
//	decksync [-config config.yaml] [-dry-run] [-verbose] [-deck PATH] [-output PATH]
//	decksync -list-shapes SLIDE | -list-tables SLIDE
//	decksync -make-sample PATH.json
//	decksync -history N
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"decksync/config"
	"decksync/database"
	"decksync/deck"
	"decksync/export"
	"decksync/sheets"
)

func main() {
	var (
		cfgPath    string
		dryRun     bool
		verbose    bool
		deckPath   string
		outputPath string
		listShapes int
		listTables int
		makeSample string
		exportPPTX string
		historyN   int
	)

	flag.StringVar(&cfgPath, "config", "config.yaml", "path to configuration file")
	flag.BoolVar(&dryRun, "dry-run", false, "show what would be updated without making changes")
	flag.BoolVar(&verbose, "verbose", false, "enable verbose logging")
	flag.StringVar(&deckPath, "deck", "", "path to deck document (overrides config)")
	flag.StringVar(&outputPath, "output", "", "output path for the updated deck (default: overwrite)")
	flag.IntVar(&listShapes, "list-shapes", 0, "list named shapes on the given slide and exit")
	flag.IntVar(&listTables, "list-tables", 0, "list tables on the given slide and exit")
	flag.StringVar(&makeSample, "make-sample", "", "write the sample investor deck to the given .json path and exit")
	flag.StringVar(&exportPPTX, "export-pptx", "", "render the deck to the given .pptx path and exit")
	flag.IntVar(&historyN, "history", 0, "print the N most recent runs and exit")
	flag.Parse()

	log.SetFlags(log.LstdFlags)

	if makeSample != "" {
		if err := writeSample(makeSample); err != nil {
			log.Printf("make sample: %v", err)
			os.Exit(1)
		}
		return
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("failed to load configuration: %v", err)
		os.Exit(1)
	}

	if deckPath == "" {
		deckPath = cfg.Deck.FilePath
	}
	if deckPath == "" {
		log.Printf("no deck file specified; use -deck or set deck.file_path in config")
		os.Exit(1)
	}

	if historyN > 0 {
		if err := printHistory(cfg, historyN); err != nil {
			log.Printf("history: %v", err)
			os.Exit(1)
		}
		return
	}

	bridge := deck.NewBridge(deckPath)
	if err := bridge.Open(); err != nil {
		log.Printf("failed to open deck: %v", err)
		os.Exit(1)
	}
	log.Printf("opened deck: %s (%d slides)", deckPath, bridge.SlideCount())

	if exportPPTX != "" {
		data, err := export.NewPPTService().RenderDeck(bridge.Document())
		if err != nil {
			log.Printf("render pptx: %v", err)
			os.Exit(1)
		}
		if err := os.WriteFile(exportPPTX, data, 0o644); err != nil {
			log.Printf("write pptx: %v", err)
			os.Exit(1)
		}
		log.Printf("rendered deck to %s", exportPPTX)
		return
	}

	if listShapes > 0 || listTables > 0 {
		if listShapes > 0 {
			fmt.Printf("\nShapes on slide %d:\n", listShapes)
			for _, s := range bridge.ListShapes(listShapes) {
				tags := ""
				if s.HasText {
					tags += " [text]"
				}
				if s.HasTable {
					tags += " [table " + s.TableSize + "]"
				}
				fmt.Printf("  - %s (%s)%s\n", s.Name, s.Kind, tags)
				if s.TextPreview != "" {
					fmt.Printf("      Text: %s\n", s.TextPreview)
				}
			}
		}
		if listTables > 0 {
			fmt.Printf("\nTables on slide %d:\n", listTables)
			for _, t := range bridge.ListTables(listTables) {
				fmt.Printf("  - %s (%d rows x %d cols)\n", t.Name, t.Rows, t.Cols)
			}
		}
		return
	}

	source, cleanup, err := buildSource(cfg)
	if err != nil {
		log.Printf("failed to initialize value source: %v", err)
		os.Exit(1)
	}
	defer cleanup()

	service := NewUpdateService(cfg, source, bridge)
	if dryRun {
		service.SetDryRun(true)
	}
	service.SetOutput(outputPath)
	service.SetVerbose(verbose)

	if service.dryRun {
		log.Printf("running in DRY RUN mode - no changes will be made")
	}

	report, err := service.Run()
	if err != nil {
		log.Printf("update run aborted: %v", err)
		os.Exit(1)
	}

	recordHistory(cfg, report)
	printSummary(report)

	if report.Failed > 0 {
		os.Exit(1)
	}
}

// buildSource constructs the configured value source. The cleanup func is
// always safe to call.
func buildSource(cfg *config.Config) (sheets.Source, func(), error) {
	switch cfg.Source {
	case config.SourceWorkbook:
		src, err := sheets.OpenWorkbook(cfg.Workbook)
		if err != nil {
			return nil, func() {}, err
		}
		return src, func() { src.Close() }, nil
	case config.SourceMock:
		return &sheets.MockSource{}, func() {}, nil
	case config.SourceGoogle:
		src, err := sheets.NewGoogleSource(context.Background(), cfg.Google)
		if err != nil {
			return nil, func() {}, err
		}
		return src, func() {}, nil
	default:
		return nil, func() {}, fmt.Errorf("unknown source %q", cfg.Source)
	}
}

func writeSample(path string) error {
	doc := export.BuildSampleDeck()
	if err := deck.Save(doc, path); err != nil {
		return err
	}
	log.Printf("wrote sample deck to %s", path)

	pptxPath := strings.TrimSuffix(path, ".json") + ".pptx"
	data, err := export.NewPPTService().RenderDeck(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(pptxPath, data, 0o644); err != nil {
		return err
	}
	log.Printf("rendered sample deck to %s", pptxPath)
	return nil
}

func recordHistory(cfg *config.Config, report *RunReport) {
	if !cfg.History.Enabled {
		return
	}
	store, err := database.OpenHistory(cfg.History.Path)
	if err != nil {
		log.Printf("history disabled: %v", err)
		return
	}
	defer store.Close()
	err = store.RecordRun(database.RunRecord{
		ID:        report.RunID,
		StartedAt: report.StartedAt,
		DryRun:    report.DryRun,
		Succeeded: report.Succeeded,
		Failed:    report.Failed,
		Errors:    report.Errors,
	})
	if err != nil {
		log.Printf("failed to record run: %v", err)
	}
}

func printHistory(cfg *config.Config, n int) error {
	if !cfg.History.Enabled {
		return fmt.Errorf("history is not enabled in config")
	}
	store, err := database.OpenHistory(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()
	records, err := store.RecentRuns(n)
	if err != nil {
		return err
	}
	for _, rec := range records {
		mode := ""
		if rec.DryRun {
			mode = " (dry run)"
		}
		fmt.Printf("%s  %s%s  ok=%d failed=%d\n",
			rec.StartedAt.Format("2006-01-02 15:04:05"), rec.ID, mode, rec.Succeeded, rec.Failed)
		for _, e := range rec.Errors {
			fmt.Printf("    - %s\n", e)
		}
	}
	return nil
}

func printSummary(report *RunReport) {
	mode := ""
	if report.DryRun {
		mode = " (DRY RUN)"
	}
	fmt.Println()
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("Update Complete%s\n", mode)
	fmt.Printf("  Successful: %d\n", report.Succeeded)
	fmt.Printf("  Failed: %d\n", report.Failed)
	fmt.Println(strings.Repeat("=", 50))
	if len(report.Errors) > 0 {
		fmt.Println("\nErrors:")
		for _, e := range report.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}
}
