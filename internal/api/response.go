package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// APIResponse is the JSON envelope every endpoint returns.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// WriteSuccessResponse writes a successful JSON response.
func WriteSuccessResponse(w http.ResponseWriter, message string, data interface{}) {
	writeJSONResponse(w, http.StatusOK, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// WriteErrorResponse writes an error JSON response.
func WriteErrorResponse(w http.ResponseWriter, statusCode int, message string, err error) {
	response := APIResponse{
		Success: false,
		Message: message,
	}
	if err != nil {
		response.Error = err.Error()
	}
	writeJSONResponse(w, statusCode, response)
}

func writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().
			Err(err).
			Int("status_code", statusCode).
			Msg("Failed to encode JSON response")
	}
}
