package handler

import (
	"encoding/json"
	"net/http"

	"github.com/enroll-dev/enroll/internal/logger"
	"github.com/enroll-dev/enroll/internal/service"
)

type Handler struct {
	auth service.AuthService
}

func New(auth service.AuthService) *Handler {
	return &Handler{auth: auth}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}
