package cmd

import (
	"fmt"
	"os"

	"github.com/22331a1268-rgb/read-sum-magic/internal/eval"
	"github.com/22331a1268-rgb/read-sum-magic/internal/extraction"
	"github.com/spf13/cobra"
)

func newEvalCmd() *cobra.Command {
	var datasetPath string
	var provider string
	var model string
	var outputDir string

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate extraction accuracy against a labeled dataset",
		Long: `Runs the extraction pipeline over a labeled dataset of score sheet
images (JSONL or Parquet) and reports how often the extracted totals, row
counts, and validity verdicts match the labels. Results are written as a
YAML report.`,
		Example: `  read-sum-magic eval --dataset sheets.jsonl --provider openai
  read-sum-magic eval --dataset sheets.parquet --output evals/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if datasetPath == "" {
				return fmt.Errorf("--dataset is required")
			}

			service, err := extraction.NewService(provider, model)
			if err != nil {
				return err
			}
			if err := service.Ready(); err != nil {
				return fmt.Errorf("provider not configured: %w", err)
			}

			records, err := eval.NewLoader(datasetPath).Load()
			if err != nil {
				return fmt.Errorf("failed to load dataset: %w", err)
			}

			runner := &eval.Runner{Service: service}
			results, summary := runner.Run(cmd.Context(), records)

			reportPath, err := eval.SaveReport(resolvedProvider(provider), model, datasetPath, outputDir, results, summary)
			if err != nil {
				return err
			}

			fmt.Printf("Items:            %d\n", summary.Items)
			fmt.Printf("Failures:         %d\n", summary.Failures)
			fmt.Printf("Bubble accuracy:  %.1f%%\n", summary.BubbleAccuracy*100)
			fmt.Printf("Row accuracy:     %.1f%%\n", summary.RowAccuracy*100)
			fmt.Printf("Valid accuracy:   %.1f%%\n", summary.ValidAccuracy*100)
			fmt.Printf("\nReport saved to: %s\n", reportPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&datasetPath, "dataset", "d", "", "Path to the labeled dataset (.jsonl or .parquet)")
	cmd.Flags().StringVar(&provider, "provider", "", "Vision provider: openai, ollama, or gemini (default from EXTRACTION_PROVIDER)")
	cmd.Flags().StringVar(&model, "model", "", "Model name (default per provider)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "evals", "Directory for the YAML report")

	return cmd
}

func resolvedProvider(provider string) string {
	if provider != "" {
		return provider
	}
	if env := os.Getenv("EXTRACTION_PROVIDER"); env != "" {
		return env
	}
	return "openai"
}
