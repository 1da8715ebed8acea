// Package api implements the HTTP client for the training service.
//
// All requests go out through one RESTClient bound to a single base URL.
// Every failed exchange, no matter the cause, is normalized into an
// *APIError before it leaves this package: callers branch on the error
// kind, never on transport details. The client also owns the bearer
// tokens, attaching and refreshing them transparently.
package api
