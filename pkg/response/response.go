// Package response writes the JSON bodies used across the API: entities are
// encoded as-is, failures as {"error": ...}, confirmations as {"message": ...}.
// A status code is always set explicitly; stack traces never reach the client.
package response

import (
	"encoding/json"
	"net/http"
)

type errorBody struct {
	Error string `json:"error"`
}

type messageBody struct {
	Message string `json:"message"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// OK writes a 200 with v.
func OK(w http.ResponseWriter, v interface{}) {
	JSON(w, http.StatusOK, v)
}

// Message writes a 200 {"message": msg} confirmation.
func Message(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusOK, messageBody{Message: msg})
}

// Error writes {"error": msg} with the given status code.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, errorBody{Error: msg})
}

// Unauthorized writes a 401.
func Unauthorized(w http.ResponseWriter, msg string) {
	Error(w, http.StatusUnauthorized, msg)
}

// Forbidden writes a 403.
func Forbidden(w http.ResponseWriter, msg string) {
	Error(w, http.StatusForbidden, msg)
}

// NotFound writes a 404.
func NotFound(w http.ResponseWriter, msg string) {
	Error(w, http.StatusNotFound, msg)
}

// Internal writes a generic 500. The underlying error is logged by the
// caller, never echoed to the client.
func Internal(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "Internal server error")
}
