package utils

import (
	"encoding/json"
	"net/http"

	"github.com/username/propledger/backend/src/logger"
)

// SendJSONError writes {"error": message} with the given status code.
func SendJSONError(w http.ResponseWriter, message string, statusCode int) {
	SendJSONErrorWithDetails(w, message, nil, statusCode)
}

// SendJSONErrorWithDetails writes {"error": message, "details": details}; details is omitted when nil.
func SendJSONErrorWithDetails(w http.ResponseWriter, message string, details any, statusCode int) {
	body := map[string]any{"error": message}
	if details != nil {
		body["details"] = details
	}
	logger.L.Warn("Sending JSON error to client", "message", message, "statusCode", statusCode)
	SendJSON(w, body, statusCode)
}

// SendJSON encodes v as the response body.
func SendJSON(w http.ResponseWriter, v any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.L.Error("Error encoding JSON response", "error", err)
	}
}
