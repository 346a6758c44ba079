package eval

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/22331a1268-rgb/read-sum-magic/internal/encoding"
	"github.com/22331a1268-rgb/read-sum-magic/internal/extraction"
	"github.com/22331a1268-rgb/read-sum-magic/internal/scoresheet"
)

// ItemResult is the outcome of evaluating one labeled record.
type ItemResult struct {
	ID            string `yaml:"id"`
	ImagePath     string `yaml:"imagepath"`
	Error         string `yaml:"error,omitempty"`
	Calculated    int    `yaml:"calculated"`
	BubbleDigits  int    `yaml:"bubbledigits"`
	WrittenTotal  int    `yaml:"writtentotal"`
	RowCount      int    `yaml:"rowcount"`
	IsValid       bool   `yaml:"isvalid"`
	BubbleMatch   bool   `yaml:"bubblematch"`
	WrittenMatch  bool   `yaml:"writtenmatch"`
	RowCountMatch bool   `yaml:"rowcountmatch"`
	ValidityMatch bool   `yaml:"validitymatch"`
	ElapsedMillis int64  `yaml:"elapsedmillis"`
}

// SummaryStats aggregates the per-item outcomes.
type SummaryStats struct {
	Items          int     `yaml:"items"`
	Failures       int     `yaml:"failures"`
	BubbleAccuracy float64 `yaml:"bubbleaccuracy"`
	RowAccuracy    float64 `yaml:"rowaccuracy"`
	ValidAccuracy  float64 `yaml:"validaccuracy"`
}

// Runner evaluates the extraction pipeline over a labeled dataset,
// sequentially, the same way the batch path processes user images.
type Runner struct {
	Service *extraction.Service
}

// Run evaluates every record and returns per-item results plus aggregates.
func (r *Runner) Run(ctx context.Context, records []Record) ([]ItemResult, SummaryStats) {
	results := make([]ItemResult, 0, len(records))

	for i, record := range records {
		slog.Info("Evaluating item", "id", record.ID, "progress", fmt.Sprintf("%d/%d", i+1, len(records)))
		results = append(results, r.evalItem(ctx, record))
	}

	return results, summarize(results)
}

func (r *Runner) evalItem(ctx context.Context, record Record) ItemResult {
	item := ItemResult{
		ID:        record.ID,
		ImagePath: record.ImagePath,
	}
	if item.ID == "" {
		item.ID = filepath.Base(record.ImagePath)
	}

	start := time.Now()
	defer func() {
		item.ElapsedMillis = time.Since(start).Milliseconds()
	}()

	dataURL, err := encoding.EncodeFile(record.ImagePath)
	if err != nil {
		item.Error = err.Error()
		return item
	}

	parsed, err := r.Service.Extract(ctx, dataURL)
	if err != nil {
		item.Error = err.Error()
		return item
	}

	result, err := scoresheet.ParseResult(parsed)
	if err != nil {
		item.Error = err.Error()
		return item
	}

	item.Calculated = result.Totals.Calculated
	item.BubbleDigits = result.Totals.BubbleDigits
	item.WrittenTotal = result.Totals.Written
	item.RowCount = len(result.Rows)
	item.IsValid = result.Totals.IsValid
	item.BubbleMatch = result.Totals.BubbleDigits == record.ExpectedBubbleDigits
	item.WrittenMatch = result.Totals.Written == record.ExpectedWrittenTotal
	item.RowCountMatch = len(result.Rows) == record.ExpectedRowCount
	item.ValidityMatch = result.Totals.IsValid == record.ExpectedValid
	return item
}

func summarize(results []ItemResult) SummaryStats {
	stats := SummaryStats{Items: len(results)}
	if len(results) == 0 {
		return stats
	}

	bubble, rows, valid := 0, 0, 0
	for _, item := range results {
		if item.Error != "" {
			stats.Failures++
			continue
		}
		if item.BubbleMatch {
			bubble++
		}
		if item.RowCountMatch {
			rows++
		}
		if item.ValidityMatch {
			valid++
		}
	}

	scored := len(results) - stats.Failures
	if scored > 0 {
		stats.BubbleAccuracy = float64(bubble) / float64(scored)
		stats.RowAccuracy = float64(rows) / float64(scored)
		stats.ValidAccuracy = float64(valid) / float64(scored)
	}
	return stats
}
