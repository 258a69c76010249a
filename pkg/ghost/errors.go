package ghost

import (
	"errors"
	"fmt"
)

// Static errors that can be wrapped with context.
var (
	ErrConfigRequired     = errors.New("config is required")
	ErrSiteURLRequired    = errors.New("site URL is required")
	ErrNoCredentials      = errors.New("either an admin key or a content key is required")
	ErrInvalidAdminKey    = errors.New("admin key must be of the form id:secret with a hex secret")
	ErrUnsupportedVersion = errors.New("unsupported API version")
	ErrResourceMismatch   = errors.New("result sets belong to different resources")
	ErrStaleResult        = errors.New("result refers to a deleted record")
	ErrAdminKeyRequired   = errors.New("admin key required")
	ErrContentKeyRequired = errors.New("content key required")
	ErrNoMoreItems        = errors.New("no more items")
	ErrEmptyResponse      = errors.New("response contained no records")
)

// ErrorDetail is a single entry of the Ghost error envelope.
type ErrorDetail struct {
	Message string `json:"message"`
	Context string `json:"context"`
	Type    string `json:"type"`
	Help    string `json:"help,omitempty"`
	Code    string `json:"code,omitempty"`
	ID      string `json:"id,omitempty"`
}

// APIError represents a non-2xx response from the Ghost API, carrying the
// HTTP status and the server-provided error details.
type APIError struct {
	StatusCode int
	Type       string
	Message    string
	Errors     []ErrorDetail
}

func (e *APIError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("%s: %s (status: %d)", e.Type, e.Message, e.StatusCode)
	}

	return fmt.Sprintf("%s (status: %d)", e.Message, e.StatusCode)
}

// NotFoundError is an APIError for a record that does not exist server-side.
type NotFoundError struct {
	*APIError
}

func (e *NotFoundError) Unwrap() error { return e.APIError }

// ValidationError is an APIError for a payload the Ghost API rejected as
// malformed or incomplete.
type ValidationError struct {
	*APIError
}

func (e *ValidationError) Unwrap() error { return e.APIError }

// AuthenticationError is returned when the API rejected the credential a
// second time, after exactly one silent re-sign-and-retry.
type AuthenticationError struct {
	Attempts int
	Last     *APIError
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication rejected after %d attempts", e.Attempts)
}

func (e *AuthenticationError) Unwrap() error {
	if e.Last == nil {
		return nil
	}

	return e.Last
}

// TransportError wraps a network-level failure (timeout, connection refused)
// as distinct from an API-level error.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// CapabilityError is raised before any network I/O when an operation is not
// permitted for a resource/client combination.
type CapabilityError struct {
	Resource string
	Op       Operation
	Reason   string
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("operation %q not permitted on resource %q: %s", e.Op, e.Resource, e.Reason)
}

// IsNotFound reports whether err represents a missing record.
func IsNotFound(err error) bool {
	var nf *NotFoundError

	return errors.As(err, &nf)
}

// IsValidation reports whether err represents a rejected payload.
func IsValidation(err error) bool {
	var ve *ValidationError

	return errors.As(err, &ve)
}

// IsAuthentication reports whether err represents a twice-rejected credential.
func IsAuthentication(err error) bool {
	var ae *AuthenticationError

	return errors.As(err, &ae)
}

// IsCapability reports whether err was raised before network I/O because the
// operation is not permitted.
func IsCapability(err error) bool {
	var ce *CapabilityError

	return errors.As(err, &ce)
}

// IsTransport reports whether err is a network-level failure.
func IsTransport(err error) bool {
	var te *TransportError

	return errors.As(err, &te)
}

// AsAPIError extracts the underlying APIError, if any.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}

	return nil, false
}
