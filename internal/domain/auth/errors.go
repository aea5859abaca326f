package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or missing token")
	ErrTokenExpired       = errors.New("token expired")
	ErrOAuthStateMismatch = errors.New("oauth state mismatch")
	ErrEmailNotVerified   = errors.New("google account email not verified")
)
