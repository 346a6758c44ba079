// Package eval measures extraction accuracy against a labeled set of score
// sheet images.
package eval

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// Record is one labeled score sheet: the image on disk plus the figures a
// human read off it.
type Record struct {
	ID                   string `json:"id" parquet:"id"`
	ImagePath            string `json:"image_path" parquet:"image_path"`
	ExpectedBubbleDigits int    `json:"expected_bubble_digits" parquet:"expected_bubble_digits"`
	ExpectedWrittenTotal int    `json:"expected_written_total" parquet:"expected_written_total"`
	ExpectedRowCount     int    `json:"expected_row_count" parquet:"expected_row_count"`
	ExpectedValid        bool   `json:"expected_valid" parquet:"expected_valid"`
}

// Loader reads a labeled dataset from JSONL or Parquet.
type Loader struct {
	datasetPath string
}

// NewLoader creates a loader for the given dataset file.
func NewLoader(datasetPath string) *Loader {
	return &Loader{datasetPath: datasetPath}
}

// Load reads all records, detecting the format from the file extension.
func (l *Loader) Load() ([]Record, error) {
	ext := strings.ToLower(filepath.Ext(l.datasetPath))

	switch ext {
	case ".parquet":
		return l.loadParquet()
	case ".jsonl", ".json":
		return l.loadJSONL()
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: .parquet, .jsonl)", ext)
	}
}

func (l *Loader) loadJSONL() ([]Record, error) {
	file, err := os.Open(l.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer file.Close()

	var records []Record
	scanner := bufio.NewScanner(file)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var record Record
		if err := json.Unmarshal(line, &record); err != nil {
			return nil, fmt.Errorf("failed to parse JSON at line %d: %w", lineNum, err)
		}
		records = append(records, record)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}
	return records, nil
}

func (l *Loader) loadParquet() ([]Record, error) {
	rows, err := parquet.ReadFile[Record](l.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet dataset: %w", err)
	}
	return rows, nil
}
