package deck

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Load reads a deck document from a JSON file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck %s: %w", path, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse deck %s: %w", path, err)
	}
	return &doc, nil
}

// Save writes the deck document to path as indented JSON. The write goes
// through a temp file in the same directory and a rename, so a failed save
// never truncates the existing document.
func Save(doc *Document, path string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode deck: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".deck-*.json")
	if err != nil {
		return fmt.Errorf("save deck %s: %w", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("save deck %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("save deck %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("save deck %s: %w", path, err)
	}
	return nil
}
