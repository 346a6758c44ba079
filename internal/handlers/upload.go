package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/22331a1268-rgb/read-sum-magic/internal/encoding"
	"github.com/22331a1268-rgb/read-sum-magic/internal/models"
	"github.com/22331a1268-rgb/read-sum-magic/internal/scoresheet"
)

// HandleUpload accepts a multipart image upload, runs it through the
// extraction pipeline, and stores the normalized result so the UI can fetch
// it from /api/results.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		writeCORS(w)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	file, header, err := r.FormFile("files")
	if err != nil {
		file, header, err = r.FormFile("file")
		if err != nil {
			h.writeError(w, "Failed to read file: "+err.Error(), http.StatusBadRequest)
			return
		}
	}
	defer file.Close()

	fileData, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		h.writeError(w, "Failed to read file contents: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if len(fileData) > maxImageBytes {
		h.writeError(w, "Image too large. Maximum size is 10MB.", http.StatusBadRequest)
		return
	}

	if err := h.service.Ready(); err != nil {
		slog.Error("Extraction provider not configured", "err", err)
		h.writeError(w, "API key not configured", http.StatusInternalServerError)
		return
	}

	dataURL := encoding.DataURL(fileData, header.Filename)
	parsed, err := h.service.Extract(r.Context(), dataURL)
	if err != nil {
		h.writeExtractionError(w, err)
		return
	}

	result, err := scoresheet.ParseResult(parsed)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	result.ImageID = models.NewImageID(header.Filename)
	result.ImageName = header.Filename
	h.resultStore.Add(result)

	slog.Info("Processed uploaded image",
		"image_id", result.ImageID,
		"rows", len(result.Rows),
		"valid", result.Totals.IsValid,
	)
	h.writeJSON(w, http.StatusOK, result)
}
