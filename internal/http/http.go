package http

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

// WriteJSON encodes a value as the JSON response body
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error: failed to encode response: %v", err)
	}
}

// ErrorResponse sends a JSON error response
func ErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	log.Printf("Error: %s (status %d)", message, statusCode)
	WriteJSON(w, statusCode, map[string]string{"error": message})
}

// DecodeJSON decodes a request body into v, rejecting unknown fields
// so typos in payloads fail loudly
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
