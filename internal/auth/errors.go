package auth

import "errors"

// Verification failures, in the order the verifier checks them. All of
// them mean the credential is rejected; the gate decides how each maps
// to an HTTP response.
var (
	ErrTokenMissing  = errors.New("missing auth token")
	ErrTokenRevoked  = errors.New("token has been revoked")
	ErrBadSignature  = errors.New("token signature invalid")
	ErrTokenExpired  = errors.New("token expired")
	ErrAdminNotFound = errors.New("admin not found")
)

// ErrStoreUnavailable marks failures talking to the durable store. It is
// not an authentication failure: the credential may well be valid, the
// request just cannot be decided. Surfaced as a server error, never a 401.
var ErrStoreUnavailable = errors.New("auth store unavailable")
