package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound            = errors.New("not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrBadRequest          = errors.New("bad request")
	ErrInvalidVerification = errors.New("invalid confirmation token or code")
	ErrInvalidToken        = errors.New("invalid token")
	ErrConfiguration       = errors.New("configuration error")
)
