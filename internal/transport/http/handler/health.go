package handler

import "net/http"

// HealthHandler exposes a liveness probe.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

func (h *HealthHandler) Ping(w http.ResponseWriter, _ *http.Request) {
	writeData(w, http.StatusOK, map[string]string{"ping": "pong"})
}
