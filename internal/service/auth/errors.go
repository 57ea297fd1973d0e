package auth

import "errors"

// Token validation results. Callers map every one of them to 401; only
// ErrExpiredToken gets its own client message.
var (
	ErrMissingToken     = errors.New("auth: no access token")
	ErrInvalidToken     = errors.New("auth: access token is malformed or has a bad signature")
	ErrExpiredToken     = errors.New("auth: access token expired")
	ErrTokenNotYetValid = errors.New("auth: access token used before its nbf time")
)

// ErrInvalidCredentials is returned by PasswordVerifier when a password
// does not match its stored hash.
var ErrInvalidCredentials = errors.New("auth: password does not match")
