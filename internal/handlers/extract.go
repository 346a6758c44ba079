package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/22331a1268-rgb/read-sum-magic/internal/encoding"
	"github.com/22331a1268-rgb/read-sum-magic/internal/extraction"
	"github.com/22331a1268-rgb/read-sum-magic/internal/providers"
	"google.golang.org/api/googleapi"
)

const maxImageBytes = 10 * 1024 * 1024

// Subtype list is case-sensitive; anything else is rejected before the
// payload is looked at.
var dataURLPattern = regexp.MustCompile(`^data:image/(jpeg|jpg|png|webp|gif|bmp);base64,`)

// HandleExtract implements POST /api/extract: validate the data URL, forward
// the extraction prompt plus image to the configured vision model, and return
// the model's JSON reply verbatim.
func (h *Handler) HandleExtract(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		writeCORS(w)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("Panic in extract handler", "panic", rec)
			h.writeError(w, fmt.Sprintf("%v", rec), http.StatusInternalServerError)
		}
	}()

	var request struct {
		ImageBase64 string `json:"imageBase64"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if request.ImageBase64 == "" {
		h.writeError(w, "No image provided", http.StatusBadRequest)
		return
	}

	if !dataURLPattern.MatchString(request.ImageBase64) {
		h.writeError(w, "Unsupported image format. Supported formats: jpeg, jpg, png, webp, gif, bmp", http.StatusBadRequest)
		return
	}

	if encoding.DecodedSize(encoding.Payload(request.ImageBase64)) > maxImageBytes {
		h.writeError(w, "Image too large. Maximum size is 10MB.", http.StatusBadRequest)
		return
	}

	if err := h.service.Ready(); err != nil {
		slog.Error("Extraction provider not configured", "err", err)
		h.writeError(w, "API key not configured", http.StatusInternalServerError)
		return
	}

	parsed, err := h.service.Extract(r.Context(), request.ImageBase64)
	if err != nil {
		h.writeExtractionError(w, err)
		return
	}

	writeCORS(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(parsed); err != nil {
		slog.Error("Unable to write extraction response", "err", err)
	}
}

// writeExtractionError maps provider and parse failures onto the endpoint's
// status contract. Upstream detail is logged server-side only, never exposed.
func (h *Handler) writeExtractionError(w http.ResponseWriter, err error) {
	var parseErr *extraction.ParseError
	if errors.As(err, &parseErr) {
		slog.Error("Failed to parse model reply", "err", parseErr.Err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":      "Failed to parse extracted data",
			"rawContent": parseErr.Raw,
		})
		return
	}

	switch upstreamStatus(err) {
	case http.StatusTooManyRequests:
		h.writeError(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
	case http.StatusPaymentRequired:
		h.writeError(w, "AI credits exhausted. Please add credits.", http.StatusPaymentRequired)
	default:
		slog.Error("Extraction failed", "err", err)
		h.writeError(w, "Failed to process document", http.StatusInternalServerError)
	}
}

func upstreamStatus(err error) int {
	var statusErr *providers.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}
