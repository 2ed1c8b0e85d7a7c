package domain

import "errors"

// Authentication errors. The token errors form the taxonomy the renewal
// pipeline branches on: only ErrTokenExpired triggers the renewal
// subprotocol, every other kind degrades the request to anonymous.
var (
	// ErrTokenExpired means the token was well-formed and correctly signed
	// but its expiry has passed.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenMalformed covers every structural or signature failure that is
	// not plain expiry. Never recoverable via renewal.
	ErrTokenMalformed = errors.New("token malformed")

	// ErrTokenNotFound means no renewal record exists for the subject; the
	// session is revoked, expired server-side, or never existed.
	ErrTokenNotFound = errors.New("refresh token not found")

	// ErrTokenMismatch means the presented refresh token differs from the
	// stored record. The session was superseded by a newer login; treated as
	// a security signal.
	ErrTokenMismatch = errors.New("refresh token mismatch")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
)

// Forum errors.
var (
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrForbidden       = errors.New("access forbidden")
	ErrSelfFollow      = errors.New("cannot follow yourself")
	ErrAlreadyFollowed = errors.New("already following")
	ErrFollowNotFound  = errors.New("follow relation not found")
)
