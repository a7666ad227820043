package api

import (
	"encoding/json"
	"log"
	"net/http"
)

// errorResponse is the structured error body returned by the API.
type errorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// respondJSON sends a JSON response with the given status code.
// If data is nil, only the status code is sent.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("failed to encode JSON response: %v", err)
		}
	}
}

// respondError sends a structured error response with the given status code.
func respondError(w http.ResponseWriter, status int, message string, details interface{}) {
	respondJSON(w, status, errorResponse{Error: message, Details: details})
}
