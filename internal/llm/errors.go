// Package llm provides the completion gateway used by the interview
// controller, backed by Google Gemini.
package llm

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

// ErrorKind classifies a gateway failure so callers can decide how to
// respond: bad credentials are not retryable, rate limits and transport
// failures are.
type ErrorKind string

// Gateway failure kinds.
const (
	KindAuth      ErrorKind = "auth"
	KindRateLimit ErrorKind = "rate_limit"
	KindTransport ErrorKind = "transport"
)

// GatewayError wraps a completion failure with its classification. The
// turn that triggered it remains retryable; no transcript state is lost.
type GatewayError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *GatewayError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("gateway error (%s): %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("gateway error (%s): %s", e.Kind, e.Message)
}

func (e *GatewayError) Unwrap() error {
	return e.Cause
}

// classify maps a provider error onto the gateway taxonomy. Anything that
// is not an auth or rate-limit rejection counts as transport, including
// timeouts and cancellations.
func classify(err error) *GatewayError {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &GatewayError{Kind: KindAuth, Message: "completion request rejected", Cause: err}
		case http.StatusTooManyRequests:
			return &GatewayError{Kind: KindRateLimit, Message: "completion request rate limited", Cause: err}
		}
	}
	return &GatewayError{Kind: KindTransport, Message: "completion request failed", Cause: err}
}
