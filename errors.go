package codevf

import (
	cverr "github.com/codevf/codevf-go/internal/errors"
)

// Error is the single typed error produced by the SDK. Every failure
// path — local validation, classified HTTP responses and connection
// failures — yields exactly one *Error carrying kind, code, message,
// HTTP status and retryable flag.
type Error = cverr.Error

// ErrorKind discriminates the closed set of error variants.
type ErrorKind = cverr.Kind

// Error kinds, re-exported so callers import only the codevf package.
const (
	KindConnection              = cverr.KindConnection
	KindAuthentication          = cverr.KindAuthentication
	KindNotFound                = cverr.KindNotFound
	KindRateLimit               = cverr.KindRateLimit
	KindServer                  = cverr.KindServer
	KindBadRequest              = cverr.KindBadRequest
	KindInvalidMode             = cverr.KindInvalidMode
	KindInvalidTag              = cverr.KindInvalidTag
	KindInvalidMetadata         = cverr.KindInvalidMetadata
	KindMaxCreditsExceeded      = cverr.KindMaxCreditsExceeded
	KindInsufficientCredits     = cverr.KindInsufficientCredits
	KindAttachmentLimitExceeded = cverr.KindAttachmentLimitExceeded
	KindAttachmentTooLarge      = cverr.KindAttachmentTooLarge
	KindPayloadTooLarge         = cverr.KindPayloadTooLarge
	KindIdempotencyConflict     = cverr.KindIdempotencyConflict
	KindInvalidSchema           = cverr.KindInvalidSchema
	KindAPI                     = cverr.KindAPI
)

// AsError extracts the SDK error from err, if it is one.
func AsError(err error) (*Error, bool) { return cverr.AsError(err) }

// IsRetryable reports whether err is a failure the transport considers
// retryable (it will already have exhausted its attempt budget by the
// time the caller sees it).
func IsRetryable(err error) bool { return cverr.IsRetryable(err) }

// IsKind reports whether err is an SDK error of the given kind.
func IsKind(err error, kind ErrorKind) bool { return cverr.IsKind(err, kind) }

// IsNotFound reports whether err is a 404 for the requested resource.
func IsNotFound(err error) bool { return cverr.IsKind(err, cverr.KindNotFound) }
