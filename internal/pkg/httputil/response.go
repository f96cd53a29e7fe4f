package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/apperr"
)

// Response is the standard envelope for every API response.
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// OK writes a 200 success envelope with the given data.
func OK(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, Response{Status: "success", Data: data})
}

// Created writes a 201 success envelope.
func Created(w http.ResponseWriter, message string, data interface{}) {
	JSON(w, http.StatusCreated, Response{Status: "success", Message: message, Data: data})
}

// Success writes a 200 success envelope with a message.
func Success(w http.ResponseWriter, message string, data interface{}) {
	JSON(w, http.StatusOK, Response{Status: "success", Message: message, Data: data})
}

// Fail writes a 4xx envelope. Use for client errors.
func Fail(w http.ResponseWriter, status int, message string, errors interface{}) {
	JSON(w, status, Response{Status: "fail", Message: message, Errors: errors})
}

// Error writes a 5xx envelope with a generic message. Internals are never
// leaked to the client.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Response{Status: "error", Message: message})
}

// FromAppError translates an application error into the envelope, choosing
// "fail" for operational (4xx) errors and "error" otherwise.
func FromAppError(w http.ResponseWriter, err error) {
	e := apperr.From(err)
	status := e.HTTPStatus()
	if e.Operational() {
		Fail(w, status, e.Message, e.Fields)
		return
	}
	Error(w, status, e.Message)
}

// Decode reads JSON from the request body into dst. Returns false and
// writes a 400 envelope if parsing fails.
func Decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		Fail(w, http.StatusBadRequest, "Invalid JSON payload", nil)
		return false
	}
	return true
}
