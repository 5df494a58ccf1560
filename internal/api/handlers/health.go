package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"stickr/internal/platform/store"
)

type HealthHandler struct {
	store *store.BatchStore
}

func NewHealthHandler(batchStore *store.BatchStore) *HealthHandler {
	return &HealthHandler{store: batchStore}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	response := struct {
		Status      string `json:"status"`
		Timestamp   int64  `json:"timestamp"`
		LiveBatches int    `json:"live_batches"`
	}{
		Status:      "healthy",
		Timestamp:   time.Now().Unix(),
		LiveBatches: h.store.Len(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
