// Package apijson holds the small helpers shared by the JSON API
// handlers: response encoding and the error envelope.
package apijson

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the JSON envelope for request failures. Details carries
// per-item problems (e.g., one line per offending roster entry).
type ErrorBody struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// Write encodes v as the JSON response body with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes the standard error envelope.
func Error(w http.ResponseWriter, status int, msg string, details ...string) {
	Write(w, status, ErrorBody{Error: msg, Details: details})
}

// Decode parses the request body into dst, limiting the body size.
// Returns false (after writing a 400) when the body is not valid JSON.
func Decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(dst); err != nil {
		Error(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
