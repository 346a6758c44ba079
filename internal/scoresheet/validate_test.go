package scoresheet

import (
	"testing"

	"github.com/22331a1268-rgb/read-sum-magic/internal/models"
)

func TestParseScore(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{name: "plain integer", input: "5", expected: 5},
		{name: "whitespace", input: " 12 ", expected: 12},
		{name: "empty string", input: "", expected: 0},
		{name: "dash", input: "-", expected: 0},
		{name: "non numeric", input: "abc", expected: 0},
		{name: "negative", input: "-3", expected: -3},
		{name: "fractional truncates", input: "7.5", expected: 7},
		{name: "zero", input: "0", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseScore(tt.input); got != tt.expected {
				t.Errorf("ParseScore(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSumRowTotals(t *testing.T) {
	rows := []models.TableRow{
		{QNo: "1", Total: "5"},
		{QNo: "2", Total: "-"},
		{QNo: "3", Total: "7"},
	}

	if got := SumRowTotals(rows); got != 12 {
		t.Errorf("Expected sum 12, got %d", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name         string
		rows         []models.TableRow
		written      int
		bubbleDigits int
		wantCalc     int
		wantValid    bool
	}{
		{
			name:         "matching bubble digits",
			rows:         []models.TableRow{{Total: "5"}, {Total: "7"}},
			written:      12,
			bubbleDigits: 12,
			wantCalc:     12,
			wantValid:    true,
		},
		{
			name:         "written disagrees but bubble matches",
			rows:         []models.TableRow{{Total: "5"}, {Total: "7"}},
			written:      10,
			bubbleDigits: 12,
			wantCalc:     12,
			wantValid:    true,
		},
		{
			name:         "written agrees but bubble does not",
			rows:         []models.TableRow{{Total: "5"}, {Total: "7"}},
			written:      12,
			bubbleDigits: 13,
			wantCalc:     12,
			wantValid:    false,
		},
		{
			name:         "unparseable totals count as zero",
			rows:         []models.TableRow{{Total: "5"}, {Total: "-"}, {Total: "7"}},
			written:      0,
			bubbleDigits: 12,
			wantCalc:     12,
			wantValid:    true,
		},
		{
			name:         "empty table",
			rows:         nil,
			written:      0,
			bubbleDigits: 0,
			wantCalc:     0,
			wantValid:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.rows, tt.written, tt.bubbleDigits)
			if got.Calculated != tt.wantCalc {
				t.Errorf("Calculated = %d, want %d", got.Calculated, tt.wantCalc)
			}
			if got.IsValid != tt.wantValid {
				t.Errorf("IsValid = %v, want %v", got.IsValid, tt.wantValid)
			}
			if got.Written != tt.written {
				t.Errorf("Written = %d, want %d", got.Written, tt.written)
			}
			if got.BubbleDigits != tt.bubbleDigits {
				t.Errorf("BubbleDigits = %d, want %d", got.BubbleDigits, tt.bubbleDigits)
			}
		})
	}
}

func TestValidateIdempotent(t *testing.T) {
	rows := []models.TableRow{{Total: "3"}, {Total: "4"}, {Total: "x"}}

	first := Validate(rows, 7, 7)
	second := Validate(rows, 7, 7)

	if first != second {
		t.Errorf("Expected identical summaries, got %+v and %+v", first, second)
	}
}
