package api

import (
	"encoding/json"
	"fmt"
)

// ErrorKind distinguishes server-reported application errors, whose
// message is safe to show verbatim, from transport-level failures, for
// which the caller must show a generic fallback.
type ErrorKind int

const (
	// KindGeneric covers network failures, timeouts, malformed responses
	// and error responses without a structured message.
	KindGeneric ErrorKind = iota

	// KindApplication covers errors the server rejected with a known,
	// user-presentable reason.
	KindApplication
)

// APIError is the single error shape every failed API call resolves to.
// It is constructed only inside this package.
type APIError struct {
	Kind    ErrorKind
	Message string // server message, set only when Kind is KindApplication
	Status  int    // HTTP status when a response was received, 0 otherwise
	cause   error
}

func (e *APIError) Error() string {
	if e.Kind == KindApplication {
		return e.Message
	}
	if e.cause != nil {
		return fmt.Sprintf("request failed: %v", e.cause)
	}
	if e.Status != 0 {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return "request failed"
}

func (e *APIError) Unwrap() error { return e.cause }

// UserMessage returns the text safe to present to the user: the server
// message verbatim for application errors, the fallback otherwise.
func (e *APIError) UserMessage(fallback string) string {
	if e.Kind == KindApplication && e.Message != "" {
		return e.Message
	}
	return fallback
}

// messageBody is the structured error envelope the server uses.
type messageBody struct {
	Message string `json:"message"`
}

// translateResponse turns a non-2xx response into an APIError. A JSON
// body carrying a message field makes it an application error; anything
// else is generic.
func translateResponse(status int, body []byte) *APIError {
	var payload messageBody
	if len(body) > 0 && json.Unmarshal(body, &payload) == nil && payload.Message != "" {
		return &APIError{Kind: KindApplication, Message: payload.Message, Status: status}
	}
	return &APIError{Kind: KindGeneric, Status: status}
}

// translateTransport turns a failure that produced no usable response
// (connection refused, timeout, body read error) into a generic APIError.
func translateTransport(err error) *APIError {
	return &APIError{Kind: KindGeneric, cause: err}
}
