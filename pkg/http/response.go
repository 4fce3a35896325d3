// Package http provides the versioned JSON response envelope shared by
// every API endpoint.
package http

import (
	"encoding/json"
	"net/http"
)

// Version is echoed in every response body.
const Version = "1.0.0"

// Envelope is the wire shape of every response: exactly one of Data,
// Message or Error is set, with Pagination riding along on listing pages.
type Envelope struct {
	Version    string `json:"version"`
	Data       any    `json:"data,omitempty"`
	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`
	Pagination any    `json:"pagination,omitempty"`
}

func write(w http.ResponseWriter, statusCode int, env Envelope) {
	env.Version = Version
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	// Encoding failures past this point cannot reach the client anyway.
	_ = json.NewEncoder(w).Encode(env)
}

// WriteData writes a success envelope carrying data.
func WriteData(w http.ResponseWriter, statusCode int, data any) {
	write(w, statusCode, Envelope{Data: data})
}

// WritePage writes a success envelope carrying data plus a pagination block.
func WritePage(w http.ResponseWriter, statusCode int, data any, pagination any) {
	write(w, statusCode, Envelope{Data: data, Pagination: pagination})
}

// WriteMessage writes a success envelope carrying only a confirmation
// message.
func WriteMessage(w http.ResponseWriter, statusCode int, message string) {
	write(w, statusCode, Envelope{Message: message})
}

// WriteError writes an error envelope.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	write(w, statusCode, Envelope{Error: message})
}
