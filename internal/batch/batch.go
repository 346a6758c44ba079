// Package batch drives a sequential extraction run over a set of images.
// One image's full round trip completes before the next begins; a failed
// image never aborts the batch.
package batch

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/22331a1268-rgb/read-sum-magic/internal/models"
)

// ErrNoImages is returned when Run is called with an empty image list. The
// caller surfaces it as a user-facing warning; no extraction is attempted.
var ErrNoImages = errors.New("no images selected")

// ExtractFunc processes one encoded image. Implementations are the HTTP
// client or an in-process extraction pipeline.
type ExtractFunc func(ctx context.Context, imageDataURL string) (models.ExtractionResult, error)

// ProgressFunc receives one state update per processed item plus the trailing
// stage transitions. Updates are strictly monotonic in Current.
type ProgressFunc func(state models.ProcessingState)

// Summary is the outcome of one batch run.
type Summary struct {
	Valid     int
	Succeeded int
	Attempted int
}

// Runner holds the collaborators for a batch run.
type Runner struct {
	Extract  ExtractFunc
	Progress ProgressFunc
	// PaceDelay spaces the trailing validating/complete stage updates. It
	// exists only for UI pacing and has no semantic meaning.
	PaceDelay time.Duration
}

// Run processes the images in order. Per item: update progress, extract, and
// on failure log and continue. Results keep processing order; failed images
// are simply absent, so the result list can be shorter than the input.
func (r *Runner) Run(ctx context.Context, items []models.ImageItem) ([]models.ExtractionResult, Summary, error) {
	if len(items) == 0 {
		return nil, Summary{}, ErrNoImages
	}

	results := make([]models.ExtractionResult, 0, len(items))
	failed := 0

	for i, item := range items {
		stage := models.StageExtracting
		if i == 0 {
			stage = models.StageScanning
		}
		r.report(models.ProcessingState{
			Stage:   stage,
			Current: i + 1,
			Total:   len(items),
			Busy:    true,
		})

		result, err := r.Extract(ctx, item.DataURL)
		if err != nil {
			failed++
			slog.Error("Image extraction failed", "image_id", item.ID, "name", item.Name, "err", err)
			continue
		}

		result.ImageID = item.ID
		result.ImageName = item.Name
		results = append(results, result)
	}

	r.report(models.ProcessingState{Stage: models.StageValidating, Current: len(items), Total: len(items), Busy: true})
	r.pace(ctx)
	r.report(models.ProcessingState{Stage: models.StageComplete, Current: len(items), Total: len(items), Busy: true})
	r.pace(ctx)
	r.report(models.ProcessingState{Stage: models.StageComplete, Current: len(items), Total: len(items), Busy: false})

	summary := Summary{
		Succeeded: len(results),
		Attempted: len(items),
	}
	for _, result := range results {
		if result.Totals.IsValid {
			summary.Valid++
		}
	}

	slog.Info("Batch extraction finished",
		"valid", summary.Valid,
		"succeeded", summary.Succeeded,
		"attempted", summary.Attempted,
		"failed", failed,
	)
	return results, summary, nil
}

func (r *Runner) report(state models.ProcessingState) {
	if r.Progress != nil {
		r.Progress(state)
	}
}

func (r *Runner) pace(ctx context.Context) {
	if r.PaceDelay <= 0 {
		return
	}
	select {
	case <-time.After(r.PaceDelay):
	case <-ctx.Done():
	}
}
