package scoresheet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/22331a1268-rgb/read-sum-magic/internal/models"
)

// RawResult mirrors the extraction endpoint's success body before
// normalization. The model decides the cell types, so everything arrives as
// loosely typed values.
type RawResult struct {
	HeaderInfo   models.HeaderInfo `json:"headerInfo"`
	TableData    []map[string]any  `json:"tableData"`
	WrittenTotal any               `json:"writtenTotal"`
	BubbleDigits any               `json:"bubbleDigits"`
	Error        string            `json:"error"`
}

// ParseResult decodes a success body from the extraction endpoint and
// normalizes it: every table cell becomes a display string, the two reported
// totals become integers (0 when unparseable), and the validation rule runs
// over the rows. Row order is preserved as parsed.
func ParseResult(body []byte) (models.ExtractionResult, error) {
	var raw RawResult
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return models.ExtractionResult{}, fmt.Errorf("failed to decode extraction response: %w", err)
	}
	if raw.Error != "" {
		return models.ExtractionResult{}, fmt.Errorf("extraction failed: %s", raw.Error)
	}
	return Normalize(raw), nil
}

// Normalize converts a raw result into the uniform display shape.
func Normalize(raw RawResult) models.ExtractionResult {
	rows := make([]models.TableRow, 0, len(raw.TableData))
	for _, cells := range raw.TableData {
		rows = append(rows, models.TableRow{
			QNo:   CellString(cells["qNo"]),
			A:     CellString(cells["a"]),
			B:     CellString(cells["b"]),
			C:     CellString(cells["c"]),
			Total: CellString(cells["total"]),
		})
	}

	written := coerceInt(raw.WrittenTotal)
	bubble := coerceInt(raw.BubbleDigits)

	return models.ExtractionResult{
		HeaderInfo: raw.HeaderInfo,
		Rows:       rows,
		Totals:     Validate(rows, written, bubble),
	}
}

// CellString coerces one table cell to a display string. Missing values and
// nulls become the empty string.
func CellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func coerceInt(v any) int {
	return ParseScore(CellString(v))
}
