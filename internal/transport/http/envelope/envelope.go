// Package envelope defines the JSON response envelopes every endpoint uses,
// shared between handlers and middleware so the shape cannot drift.
package envelope

import (
	"encoding/json"
	"net/http"
)

// Success wraps every 2xx response body.
type Success struct {
	Status bool        `json:"status"`
	Data   interface{} `json:"data"`
}

// Error wraps every non-2xx response body.
type Error struct {
	Status       bool   `json:"status"`
	ErrorCode    int    `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

// WriteJSON writes v as the JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteData writes a success envelope around data.
func WriteData(w http.ResponseWriter, status int, data interface{}) {
	WriteJSON(w, status, Success{Status: true, Data: data})
}

// WriteError writes an error envelope; the errorCode mirrors the HTTP status.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, Error{Status: false, ErrorCode: status, ErrorMessage: msg})
}
