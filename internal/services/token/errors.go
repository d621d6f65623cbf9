package token

import "errors"

var (
	// ErrInvalidToken covers not-found, expired and revoked refresh tokens.
	// Callers present a uniform "re-authenticate" response for it.
	ErrInvalidToken = errors.New("invalid or expired refresh token")

	// ErrReuseDetected means an already-rotated token was presented again.
	// The whole token family has been revoked by the time this is returned;
	// the client must be forced through a full login.
	ErrReuseDetected = errors.New("token reuse detected")

	// ErrNotFound is returned by Store implementations when no record
	// matches a lookup.
	ErrNotFound = errors.New("refresh token not found")
)

// IsCredentialError reports whether err should be answered with 401 rather
// than 500.
func IsCredentialError(err error) bool {
	return errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrReuseDetected)
}
