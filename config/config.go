// Package config loads the decksync YAML configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"decksync/sheets"
)

// Value-source kinds selectable via the "source" key.
const (
	SourceGoogle   = "google"
	SourceWorkbook = "workbook"
	SourceMock     = "mock"
)

// DeckConfig locates the deck document to update.
type DeckConfig struct {
	FilePath string `yaml:"file_path"`
}

// Defaults are display defaults applied during formatting.
type Defaults struct {
	EmptyValue string `yaml:"empty_value"` // shown when a fetched value is blank
	ErrorValue string `yaml:"error_value"` // shown in reports for failed rows
}

// History configures the optional run-history store.
type History struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Config is the full configuration surface.
type Config struct {
	Source   string                `yaml:"source"`
	Google   sheets.GoogleConfig   `yaml:"google"`
	Workbook sheets.WorkbookConfig `yaml:"workbook"`
	Deck     DeckConfig            `yaml:"deck"`
	Defaults Defaults              `yaml:"defaults"`
	DryRun   bool                  `yaml:"dry_run"`
	History  History               `yaml:"history"`
}

// Load reads and parses the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Source == "" {
		cfg.Source = SourceGoogle
	}
	if cfg.History.Enabled && cfg.History.Path == "" {
		cfg.History.Path = "decksync_history.db"
	}
	return &cfg, nil
}
