package api

import (
	"net/http"
	"time"
)

// healthResponse is the body of GET /health.
type healthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Version     string    `json:"version"`
	LastRebuild string    `json:"last_rebuild,omitempty"`
}

// health reports liveness and the id of the data set being served. A store
// that has never been rebuilt is still healthy.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:    "healthy",
		Timestamp: h.now().UTC(),
		Version:   h.version,
	}
	if info, err := h.store.LastRebuild(); err == nil {
		resp.LastRebuild = info.RebuildID
	}
	h.writeJSON(w, http.StatusOK, resp)
}
