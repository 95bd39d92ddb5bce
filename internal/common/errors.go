// Package common defines shared constants and sentinel errors used across
// the gateway layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// ErrValidation marks a malformed or incomplete inbound request.
	ErrValidation = errors.New("validation error")

	// ErrNetwork marks a transport failure towards an external dependency,
	// including an expired deadline.
	ErrNetwork = errors.New("network error")

	// ErrProtocol marks an unexpected status code or an unparseable response
	// from the tokenization engine.
	ErrProtocol = errors.New("protocol error")

	// ErrStorage marks a persistence failure.
	ErrStorage = errors.New("storage error")
)
