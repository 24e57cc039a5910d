package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrRefreshTokenRevoked = errors.New("refresh token has been revoked")
	ErrUserNotFound        = errors.New("user not found")
	ErrGoogleNotConfigured = errors.New("google login is not configured")
	ErrInvalidOAuthState   = errors.New("invalid oauth state")
	ErrEmailNotVerified    = errors.New("google account email is not verified")
	ErrTooManyAttempts     = errors.New("too many login attempts, try again later")
)
