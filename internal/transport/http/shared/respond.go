// Package shared holds the response helpers every handler uses at the
// boundary.
package shared

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "github.com/tanchhohang/airlines-api/pkg/domain-errors"
)

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error            string            `json:"error"`
	ErrorDescription string            `json:"error_description,omitempty"`
	Fields           map[string]string `json:"fields,omitempty"`
}

// WriteJSON writes a JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteError maps a coded error to its HTTP status. Upstream failure kinds
// all surface as an opaque 500; the real code stays in the logs.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status := dErrors.ToHTTPStatus(code)

	body := ErrorResponse{Error: string(code)}
	if status < http.StatusInternalServerError {
		var de *dErrors.Error
		if errors.As(err, &de) {
			body.ErrorDescription = de.Message
		}
	} else {
		body.Error = string(dErrors.CodeInternal)
		body.ErrorDescription = "internal error"
	}
	WriteJSON(w, status, body)
}

// WriteValidationError reports per-field failures as a structured 400.
func WriteValidationError(w http.ResponseWriter, fields map[string]string) {
	WriteJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:            string(dErrors.CodeValidation),
		ErrorDescription: "request validation failed",
		Fields:           fields,
	})
}
