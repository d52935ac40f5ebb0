package idsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gatehouselabs/gatehouse/pkg/httpx"
)

// Error codes shared between the service and its clients.
const (
	ErrorCodeInvalidRequest   = "invalid_request"
	ErrorCodeInvalidGrant     = "invalid_grant"
	ErrorCodeInvalidToken     = "invalid_token"
	ErrorCodeInsufficientRole = "insufficient_role"
	ErrorCodeValidation       = "validation_error"
	ErrorCodeNotFound         = "not_found"
	ErrorCodeServerError      = "server_error"
)

// APIError is the service's standard error shape. It implements the error
// interface and is used both by handlers (to write responses) and by the
// SDK client (to surface failures).
type APIError struct {
	StatusCode  int    `json:"-"`
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes the error as a JSON response.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	httpx.WriteJSON(w, e.StatusCode, e)
}

var (
	// ErrInvalidRequest covers malformed bodies and missing parameters.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrInvalidGrant is the single rejection for login and refresh.
	// Deliberately unspecific.
	ErrInvalidGrant = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidGrant,
		Description: "invalid credentials",
	}

	// ErrInvalidToken is returned when a bearer token is missing or fails
	// verification.
	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "the access token is missing, invalid, or expired",
	}

	// ErrInsufficientRole is returned when the token lacks a required role.
	ErrInsufficientRole = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeInsufficientRole,
		Description: "the token does not carry a required role",
	}

	// ErrNotFound is returned when the addressed resource does not exist.
	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "resource not found",
	}

	// ErrServerError is the catch-all for internal failures.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// ValidationError carries the register endpoint's problem list.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Problems, "; ")
}

// WriteValidationError writes the problem list as a 400 response.
func WriteValidationError(w http.ResponseWriter, problems []string) {
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusBadRequest, ValidationErrorResponse{
		Error:    ErrorCodeValidation,
		Problems: problems,
	})
}

// decodeError turns a non-2xx response body into an error. Validation
// responses become *ValidationError; everything else becomes *APIError.
func decodeError(statusCode int, body []byte) error {
	var validation ValidationErrorResponse
	if err := json.Unmarshal(body, &validation); err == nil && validation.Error == ErrorCodeValidation {
		return &ValidationError{Problems: validation.Problems}
	}

	var resp ErrorResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.Error != "" {
		return &APIError{
			StatusCode:  statusCode,
			Code:        resp.Error,
			Description: resp.ErrorDescription,
		}
	}

	return &APIError{
		StatusCode:  statusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("unexpected response status %d", statusCode),
	}
}
