package auth

import "errors"

var (
	// ErrInvalidToken represents a missing, malformed or expired token.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrMissingSubject signals a token without an actor identity.
	ErrMissingSubject = errors.New("token has no subject")
)
