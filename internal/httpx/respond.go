package httpx

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Envelope is the response shape shared by every endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func WriteJSON(w http.ResponseWriter, logger *zap.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

func Success(w http.ResponseWriter, logger *zap.Logger, data any) {
	WriteJSON(w, logger, http.StatusOK, Envelope{Success: true, Data: data})
}

func SuccessMessage(w http.ResponseWriter, logger *zap.Logger, data any, message string) {
	WriteJSON(w, logger, http.StatusOK, Envelope{Success: true, Data: data, Message: message})
}

func Error(w http.ResponseWriter, logger *zap.Logger, status int, message string) {
	WriteJSON(w, logger, status, Envelope{Success: false, Error: message})
}
