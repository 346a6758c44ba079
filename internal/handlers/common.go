package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/22331a1268-rgb/read-sum-magic/internal/extraction"
	"github.com/22331a1268-rgb/read-sum-magic/internal/storage"
)

type Handler struct {
	resultStore *storage.ResultStore
	service     *extraction.Service
}

func New(service *extraction.Service) *Handler {
	return &Handler{
		resultStore: storage.New(),
		service:     service,
	}
}

// writeCORS sets the permissive cross-origin headers carried by every
// response. The endpoint is publicly invocable; the only credential involved
// is the server-held upstream API key.
func writeCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	writeCORS(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
	}
}

// writeError responds with the {"error": message} body shape every failure
// shares, regardless of status class.
func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message, "status", code)
	h.writeJSON(w, code, map[string]string{"error": message})
}
