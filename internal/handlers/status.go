package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/besuhoff/predator-arena-go/internal/server"
)

// StatusSource publishes the latest arena status
type StatusSource interface {
	Status() server.Status
}

// StatusHandler serves operator endpoints
type StatusHandler struct {
	source StatusSource
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(source StatusSource) *StatusHandler {
	return &StatusHandler{source: source}
}

// HandleStatus writes the latest arena status as JSON
func (h *StatusHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.source.Status())
}

// HandleHealth reports liveness
func (h *StatusHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
