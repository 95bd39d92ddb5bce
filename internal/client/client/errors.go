package client

import "errors"

var (
	ErrUnavailable    = errors.New("gateway unavailable")
	ErrRejected       = errors.New("request rejected")
	ErrNotFound       = errors.New("not found")
	ErrUpstream       = errors.New("tokenization failed")
	ErrServer         = errors.New("gateway error")
	ErrUnknownService = errors.New("unknown service")
)
