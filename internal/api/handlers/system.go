package handlers

import (
	"net/http"

	"SIPCompare/internal/api/response"
)

// Health handles GET /api/system/health.
func Health(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
