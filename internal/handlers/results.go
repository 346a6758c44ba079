package handlers

import (
	"net/http"
	"strings"
)

// HandleResults serves the result list for the current server session.
func (h *Handler) HandleResults(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodOptions:
		writeCORS(w)
		w.WriteHeader(http.StatusNoContent)
	case http.MethodGet:
		h.writeJSON(w, http.StatusOK, h.resultStore.List())
	case http.MethodDelete:
		h.resultStore.Clear()
		w.WriteHeader(http.StatusNoContent)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleResultDetail serves one stored result by image id.
func (h *Handler) HandleResultDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	imageID := strings.TrimPrefix(r.URL.Path, "/api/results/")
	result, exists := h.resultStore.Get(imageID)
	if !exists {
		h.writeError(w, "Result not found", http.StatusNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}
