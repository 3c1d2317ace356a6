// Package errs defines the error types the API returns to its clients.
//
// Every failure that reaches the HTTP layer is turned into an HTTPError so
// the React client always receives the same JSON shape:
//
//	{ "code": "BAD_REQUEST", "message": "...", "status": 400, "override": false, "errors": [...] }
//
// Field-level errors are used for the contact form and for request binding.
package errs

import "strings"

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "nombre", "error": "is required" }
type FieldError struct {
	// Field is the wire name of the offending field (e.g. "objet").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// HTTPError is the error type serialized back to API clients.
//
// Fields:
//   - Code: machine-friendly error code (e.g. "NOT_FOUND").
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Override: whether the client may show Message verbatim to the user.
//   - Errors: per-field validation errors.
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors"`
}

// Error returns the client-facing message.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError.
//
// It only compares the type, not Code or Status, so errors.Is(err, &HTTPError{})
// answers "did this already get translated for the client?".
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// MakeUpperCaseWithUnderscores converts a status text into an error code.
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
