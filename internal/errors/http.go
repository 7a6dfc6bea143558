package errors

import (
	"encoding/json"
	"fmt"
)

// Wire error codes the server emits inside the error envelope.
var codeKinds = map[string]Kind{
	"invalid_mode":              KindInvalidMode,
	"invalid_tag":               KindInvalidTag,
	"invalid_metadata":          KindInvalidMetadata,
	"max_credits_exceeded":      KindMaxCreditsExceeded,
	"attachment_limit_exceeded": KindAttachmentLimitExceeded,
	"attachment_too_large":      KindAttachmentTooLarge,
	"idempotency_conflict":      KindIdempotencyConflict,
	"insufficient_credits":      KindInsufficientCredits,
	"invalid_schema":            KindInvalidSchema,
	"token_expired":             KindAuthentication,
	"rate_limit_exceeded":       KindRateLimit,
}

// defaultCode supplies the wire code for errors raised locally or for
// responses whose envelope omitted one.
func defaultCode(kind Kind) string {
	switch kind {
	case KindInvalidMode:
		return "invalid_mode"
	case KindInvalidTag:
		return "invalid_tag"
	case KindInvalidMetadata:
		return "invalid_metadata"
	case KindMaxCreditsExceeded:
		return "max_credits_exceeded"
	case KindAttachmentLimitExceeded:
		return "attachment_limit_exceeded"
	case KindAttachmentTooLarge:
		return "attachment_too_large"
	case KindIdempotencyConflict:
		return "idempotency_conflict"
	case KindInsufficientCredits:
		return "insufficient_credits"
	case KindInvalidSchema:
		return "invalid_schema"
	case KindAuthentication:
		return "authentication_error"
	case KindRateLimit:
		return "rate_limit_exceeded"
	case KindNotFound:
		return "not_found"
	case KindServer:
		return "server_error"
	case KindPayloadTooLarge:
		return "payload_too_large"
	case KindBadRequest:
		return "bad_request"
	case KindConnection:
		return "connection_error"
	default:
		return "api_error"
	}
}

// errEnvelope matches the documented error body
// {"error": {"code", "message", "status", "retryable"}}. The error field
// is kept raw because legacy responses put a plain string there.
type errEnvelope struct {
	Error   json.RawMessage `json:"error"`
	Status  int             `json:"status"`
	Message string          `json:"message"`
}

type errDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Status    int    `json:"status"`
	Retryable *bool  `json:"retryable"`
}

// FromResponse maps a non-2xx HTTP response to a taxonomy error.
// Bodies that do not match the documented schema fall back to the legacy
// {"error": "...", "status": ...} shape, and failing that to the raw
// status code.
func FromResponse(statusCode int, body []byte) *Error {
	message := fmt.Sprintf("API request failed with status %d", statusCode)
	code := ""
	status := statusCode
	var wireRetryable *bool

	var env errEnvelope
	if err := json.Unmarshal(body, &env); err == nil {
		switch {
		case len(env.Error) > 0:
			var detail errDetail
			if err := json.Unmarshal(env.Error, &detail); err == nil {
				code = detail.Code
				if detail.Message != "" {
					message = detail.Message
				}
				if detail.Status > 0 {
					status = detail.Status
				}
				wireRetryable = detail.Retryable
			} else {
				// Legacy shape: error is a plain string.
				var legacy string
				if err := json.Unmarshal(env.Error, &legacy); err == nil && legacy != "" {
					message = legacy
					if env.Status > 0 {
						status = env.Status
					}
				}
			}
		case env.Message != "":
			message = env.Message
		}
	}

	kind := resolveKind(status, code)
	retryable := retryableStatus(status)
	if wireRetryable != nil {
		retryable = *wireRetryable
	}
	if code == "" {
		code = defaultCode(kind)
	}

	return &Error{
		Kind:      kind,
		Code:      code,
		Message:   message,
		Status:    status,
		Retryable: retryable,
		Body:      string(body),
	}
}

// resolveKind maps an HTTP status and optional wire code to a kind.
// The status decides the coarse class; the code refines 400 and 402
// variants into their dedicated kinds.
func resolveKind(status int, code string) Kind {
	switch {
	case status == 401 || status == 403:
		return KindAuthentication
	case status == 404:
		return KindNotFound
	case status == 429:
		return KindRateLimit
	case status == 413:
		if k, ok := codeKinds[code]; ok {
			return k
		}
		return KindPayloadTooLarge
	case status >= 500 && status < 600:
		return KindServer
	}

	if k, ok := codeKinds[code]; ok {
		return k
	}
	switch status {
	case 402:
		return KindInsufficientCredits
	case 409:
		return KindIdempotencyConflict
	case 400:
		return KindBadRequest
	}
	return KindAPI
}

// retryableStatus implements the retry policy default: only 429, 500 and
// 503 are retried. An explicit retryable flag in the error envelope
// overrides this.
func retryableStatus(status int) bool {
	switch status {
	case 429, 500, 503:
		return true
	}
	return false
}
