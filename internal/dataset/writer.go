package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Write persists the dataset as compact JSON. The file is written next to
// its final location and renamed into place, so a reader never observes a
// half-written artifact.
func Write(path string, d *Dataset) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshalling dataset: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("finalizing %s: %w", path, err)
	}
	return nil
}

// Read loads a previously written artifact.
func Read(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	var d Dataset
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing dataset %s: %w", path, err)
	}
	return &d, nil
}
