package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid username/email or password")
	ErrAccountInactive     = errors.New("account is inactive")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrTokenExpired        = errors.New("token has expired")
	ErrRefreshTokenRevoked = errors.New("refresh token has been revoked")
	ErrUserNotFound        = errors.New("user not found")
	ErrGoogleNotConfigured = errors.New("google sign-in is not configured")
	ErrGoogleAccountLinked = errors.New("email is linked to a different google account")
	ErrInvalidOAuthState   = errors.New("invalid oauth state")
)
