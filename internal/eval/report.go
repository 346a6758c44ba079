package eval

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ReportConfig records how an evaluation was run.
type ReportConfig struct {
	Provider    string `yaml:"provider"`
	Model       string `yaml:"model"`
	DatasetPath string `yaml:"datasetpath"`
	Timestamp   string `yaml:"timestamp"`
}

// Report is the complete evaluation output written to disk.
type Report struct {
	Config  ReportConfig `yaml:"config"`
	Summary SummaryStats `yaml:"summary"`
	Results []ItemResult `yaml:"results"`
}

// SaveReport writes the evaluation report as YAML under outputDir and
// returns the file path.
func SaveReport(provider, model, datasetPath, outputDir string, results []ItemResult, summary SummaryStats) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	report := Report{
		Config: ReportConfig{
			Provider:    provider,
			Model:       model,
			DatasetPath: datasetPath,
			Timestamp:   timestamp,
		},
		Summary: summary,
		Results: results,
	}

	data, err := yaml.Marshal(&report)
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	path := filepath.Join(outputDir, fmt.Sprintf("eval_%s.yaml", timestamp))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}
