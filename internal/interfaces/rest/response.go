package rest

import (
	"encoding/json"
	"net/http"

	"github.com/femiolade/student-report-gateway/internal/validation"
)

// The response bodies below are the fixed external contract of the gateway;
// their shapes must not drift.

type clientError struct {
	Error   string                 `json:"error"`
	Details []validation.Violation `json:"details,omitempty"`
}

type serverError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type duplicateNotice struct {
	Message string `json:"message"`
}

// WriteJSON writes v as the JSON response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteInvalidJSON reports a body that could not be parsed as JSON.
func WriteInvalidJSON(w http.ResponseWriter) {
	WriteJSON(w, http.StatusBadRequest, clientError{Error: "Invalid JSON input"})
}

// WriteValidationError reports every schema violation found in the body.
func WriteValidationError(w http.ResponseWriter, details []validation.Violation) {
	WriteJSON(w, http.StatusBadRequest, clientError{
		Error:   "Invalid input",
		Details: details,
	})
}

// WriteDuplicate reports that a request with the same idempotency key was
// already handled. Duplicates are a benign outcome, not an error.
func WriteDuplicate(w http.ResponseWriter) {
	WriteJSON(w, http.StatusOK, duplicateNotice{Message: "Request already processed"})
}

// WriteInternalError reports an unexpected failure, carrying the underlying
// message for diagnosability.
func WriteInternalError(w http.ResponseWriter, err error) {
	WriteJSON(w, http.StatusInternalServerError, serverError{
		Error:   "Internal server error",
		Message: err.Error(),
	})
}
