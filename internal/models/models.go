package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Stage labels the progress of a batch extraction. The labels are purely
// presentational: "scanning" vs "extracting" is chosen by list position, not
// by what the service is actually doing.
type Stage string

const (
	StageScanning   Stage = "scanning"
	StageExtracting Stage = "extracting"
	StageValidating Stage = "validating"
	StageComplete   Stage = "complete"
)

// ImageItem is an in-memory handle to one user-supplied image.
type ImageItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	DataURL  string `json:"data_url"`
	ByteSize int    `json:"byte_size"`
}

// NewImageID builds an identifier unique within a session from the source
// filename, the current time, and a random suffix.
func NewImageID(filename string) string {
	return fmt.Sprintf("%s_%d_%s", filename, time.Now().UnixMilli(), uuid.New().String()[:8])
}

// TableRow is one parsed row of a marks grid. All values are display strings;
// the model may return numbers, blanks, or handwriting-ambiguous text, so
// cells are coerced to strings for uniform display and to integers only when
// summing.
type TableRow struct {
	QNo   string `json:"qNo"`
	A     string `json:"a"`
	B     string `json:"b"`
	C     string `json:"c"`
	Total string `json:"total"`
}

// TotalsSummary holds the three figures compared by the validation rule.
// Written is carried for display only and never participates in IsValid.
type TotalsSummary struct {
	Calculated   int  `json:"calculated"`
	Written      int  `json:"written"`
	BubbleDigits int  `json:"bubbleDigits"`
	IsValid      bool `json:"isValid"`
}

// ExtractionResult is the output for one processed image. Immutable once
// created; held in processing order, independent of the source image list.
type ExtractionResult struct {
	ImageID    string        `json:"image_id"`
	ImageName  string        `json:"image_name"`
	HeaderInfo HeaderInfo    `json:"headerInfo"`
	Rows       []TableRow    `json:"tableData"`
	Totals     TotalsSummary `json:"totals"`
}

// ProcessingState is the transient per-batch progress snapshot. Owned by the
// batch runner; read-only everywhere else.
type ProcessingState struct {
	Stage   Stage `json:"stage"`
	Current int   `json:"current"`
	Total   int   `json:"total"`
	Busy    bool  `json:"busy"`
}
