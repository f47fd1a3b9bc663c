package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadRaw reads raw scraped records from a JSON file.
func LoadRaw(path string) ([]RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrCorpusNotFound, path)
		}
		return nil, fmt.Errorf("reading corpus file: %w", err)
	}

	var raws []RawRecord
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("parsing corpus file %s: %w", path, err)
	}
	if len(raws) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyCorpus, path)
	}
	return raws, nil
}

// ProcessedPath derives the processed corpus path from the raw path
// (use_cases.json -> use_cases_processed.json).
func ProcessedPath(rawPath string) string {
	ext := filepath.Ext(rawPath)
	return strings.TrimSuffix(rawPath, ext) + "_processed" + ext
}

// Load returns the processed corpus. When a processed file exists next to
// the raw file it is loaded directly; otherwise the raw file is processed
// and the result persisted for subsequent runs.
func Load(rawPath string) ([]Record, error) {
	processedPath := ProcessedPath(rawPath)

	if data, err := os.ReadFile(processedPath); err == nil {
		var records []Record
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parsing processed corpus %s: %w", processedPath, err)
		}
		if len(records) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrEmptyCorpus, processedPath)
		}
		return records, nil
	}

	raws, err := LoadRaw(rawPath)
	if err != nil {
		return nil, err
	}

	records, _ := Process(raws)
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: all records dropped during processing", ErrEmptyCorpus)
	}

	if err := SaveProcessed(processedPath, records); err != nil {
		return nil, err
	}
	return records, nil
}

// SaveProcessed writes the processed corpus as indented JSON, creating
// parent directories as needed.
func SaveProcessed(path string, records []Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating corpus directory: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding processed corpus: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing processed corpus %s: %w", path, err)
	}
	return nil
}
