// Package errors provides the closed error taxonomy for the client SDK.
// Every failure path, local validation included, produces exactly one
// *Error carrying a kind discriminant, a machine-readable code, the
// originating HTTP status and a retryable flag.
package errors

import "fmt"

// Kind discriminates the fixed set of error variants.
type Kind int

const (
	// KindConnection marks network-level failures with no HTTP response.
	KindConnection Kind = iota
	KindAuthentication
	KindNotFound
	KindRateLimit
	KindServer
	KindBadRequest
	KindInvalidMode
	KindInvalidTag
	KindInvalidMetadata
	KindMaxCreditsExceeded
	KindInsufficientCredits
	KindAttachmentLimitExceeded
	KindAttachmentTooLarge
	KindPayloadTooLarge
	KindIdempotencyConflict
	KindInvalidSchema
	KindAPI
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "Connection"
	case KindAuthentication:
		return "Authentication"
	case KindNotFound:
		return "NotFound"
	case KindRateLimit:
		return "RateLimit"
	case KindServer:
		return "Server"
	case KindBadRequest:
		return "BadRequest"
	case KindInvalidMode:
		return "InvalidMode"
	case KindInvalidTag:
		return "InvalidTag"
	case KindInvalidMetadata:
		return "InvalidMetadata"
	case KindMaxCreditsExceeded:
		return "MaxCreditsExceeded"
	case KindInsufficientCredits:
		return "InsufficientCredits"
	case KindAttachmentLimitExceeded:
		return "AttachmentLimitExceeded"
	case KindAttachmentTooLarge:
		return "AttachmentTooLarge"
	case KindPayloadTooLarge:
		return "PayloadTooLarge"
	case KindIdempotencyConflict:
		return "IdempotencyConflict"
	case KindInvalidSchema:
		return "InvalidSchema"
	case KindAPI:
		return "API"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Error is the single error type produced by the SDK.
type Error struct {
	Kind      Kind
	Code      string // machine-readable wire code, e.g. "invalid_mode"
	Message   string
	Status    int    // HTTP status; 0 for local validation and connection errors
	Retryable bool   // whether the transport may retry the request
	Body      string // raw response body for debugging, empty for local errors

	Underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("codevf: [%s] HTTP %d: %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("codevf: [%s] %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *Error) Unwrap() error { return e.Underlying }

// NewValidation creates a local validation error. Validation failures
// never reach the wire and are never retried.
func NewValidation(kind Kind, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Code:    defaultCode(kind),
		Message: fmt.Sprintf(format, args...),
	}
}

// NewConnection creates an error for network-level failures. No HTTP
// response was received, so these are always retryable.
func NewConnection(operation string, err error) *Error {
	return &Error{
		Kind:       KindConnection,
		Code:       "connection_error",
		Message:    fmt.Sprintf("%s: %v", operation, err),
		Retryable:  true,
		Underlying: err,
	}
}

// AsError extracts a taxonomy error from err, if it is one.
func AsError(err error) (*Error, bool) {
	e, ok := err.(*Error)
	return e, ok
}

// IsRetryable reports whether the transport may retry after err.
func IsRetryable(err error) bool {
	if e, ok := AsError(err); ok {
		return e.Retryable
	}
	return false
}

// IsKind reports whether err is a taxonomy error of the given kind.
func IsKind(err error, kind Kind) bool {
	e, ok := AsError(err)
	return ok && e.Kind == kind
}
