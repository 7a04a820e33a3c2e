package http

import (
	"net/http"
	"time"
)

// Health handles GET /health. It reports liveness and the current time.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
