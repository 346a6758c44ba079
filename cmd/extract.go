package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/22331a1268-rgb/read-sum-magic/internal/batch"
	"github.com/22331a1268-rgb/read-sum-magic/internal/client"
	"github.com/22331a1268-rgb/read-sum-magic/internal/encoding"
	"github.com/22331a1268-rgb/read-sum-magic/internal/extraction"
	"github.com/22331a1268-rgb/read-sum-magic/internal/models"
	"github.com/22331a1268-rgb/read-sum-magic/internal/scoresheet"
	"github.com/spf13/cobra"
)

func newExtractCmd() *cobra.Command {
	var provider string
	var model string
	var serverURL string
	var outputPath string

	cmd := &cobra.Command{
		Use:   "extract [image files]",
		Short: "Extract one or more score sheet images",
		Long: `Runs the batch extraction pipeline over local image files.

Images are processed strictly sequentially; a failure on one image is
logged and skipped without aborting the rest of the batch.`,
		Example: `  # Extract directly against the configured provider
  read-sum-magic extract sheet1.jpg sheet2.png

  # Extract through a running server
  read-sum-magic extract --server http://localhost:8888 sheet1.jpg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			extract, err := buildExtractFunc(provider, model, serverURL)
			if err != nil {
				return err
			}

			items := make([]models.ImageItem, 0, len(args))
			for _, path := range args {
				dataURL, err := encoding.EncodeFile(path)
				if err != nil {
					slog.Error("Skipping unreadable image", "path", path, "err", err)
					continue
				}
				name := filepath.Base(path)
				items = append(items, models.ImageItem{
					ID:       models.NewImageID(name),
					Name:     name,
					DataURL:  dataURL,
					ByteSize: encoding.DecodedSize(encoding.Payload(dataURL)),
				})
			}

			runner := &batch.Runner{
				Extract: extract,
				Progress: func(state models.ProcessingState) {
					slog.Info("Progress", "stage", state.Stage, "current", state.Current, "total", state.Total)
				},
				PaceDelay: 300 * time.Millisecond,
			}

			results, summary, err := runner.Run(cmd.Context(), items)
			if errors.Is(err, batch.ErrNoImages) {
				slog.Warn("No readable images to process")
				return nil
			}
			if err != nil {
				return err
			}

			for _, result := range results {
				status := "INVALID"
				if result.Totals.IsValid {
					status = "VALID"
				}
				fmt.Printf("%s: %s (calculated=%d written=%d bubble=%d rows=%d)\n",
					result.ImageName, status,
					result.Totals.Calculated, result.Totals.Written, result.Totals.BubbleDigits,
					len(result.Rows))
			}
			fmt.Printf("\n%d valid / %d extracted / %d attempted\n", summary.Valid, summary.Succeeded, summary.Attempted)

			if outputPath != "" {
				data, err := json.MarshalIndent(results, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode results: %w", err)
				}
				if err := os.WriteFile(outputPath, data, 0644); err != nil {
					return fmt.Errorf("failed to write results: %w", err)
				}
				slog.Info("Results written", "path", outputPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "Vision provider: openai, ollama, or gemini (default from EXTRACTION_PROVIDER)")
	cmd.Flags().StringVar(&model, "model", "", "Model name (default per provider)")
	cmd.Flags().StringVar(&serverURL, "server", "", "Extract through a running server instead of calling the provider directly")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write results as JSON to this file")

	return cmd
}

// buildExtractFunc picks the HTTP client path when a server URL is given and
// the in-process pipeline otherwise.
func buildExtractFunc(provider, model, serverURL string) (batch.ExtractFunc, error) {
	if serverURL != "" {
		c := client.New(serverURL)
		return c.Extract, nil
	}

	service, err := extraction.NewService(provider, model)
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context, dataURL string) (models.ExtractionResult, error) {
		parsed, err := service.Extract(ctx, dataURL)
		if err != nil {
			return models.ExtractionResult{}, err
		}
		return scoresheet.ParseResult(parsed)
	}, nil
}
