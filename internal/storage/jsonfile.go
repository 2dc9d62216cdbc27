package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/miskatonicsociety/keeperbot/internal/character"
)

// JSONFile persists the full record mapping as a single indented JSON
// object keyed by user id.
type JSONFile struct {
	path string
}

// NewJSONFile creates a JSON file backend at the given path. The file
// is created on first save.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

// Load reads the mapping. A missing file yields an empty mapping, not
// an error.
func (f *JSONFile) Load() (map[string]*character.Record, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]*character.Record), nil
		}
		return nil, fmt.Errorf("failed to read character data: %w", err)
	}

	records := make(map[string]*character.Record)
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse character data: %w", err)
	}
	return records, nil
}

// Save writes the full mapping back, creating the containing directory
// if needed.
func (f *JSONFile) Save(records map[string]*character.Record) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode character data: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write character data: %w", err)
	}
	return nil
}

// Close is a no-op for the file backend.
func (f *JSONFile) Close() error {
	return nil
}
