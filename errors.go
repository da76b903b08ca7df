package zeppelin

import "errors"

// Sentinel errors returned by the core encrypt/decrypt operations. Callers
// should compare against these with errors.Is; internal call sites wrap
// them with github.com/pkg/errors for additional context.
var (
	// ErrInvalidParams is returned when a CryptSettings value or a
	// serialized params document fails validation.
	ErrInvalidParams = errors.New("zeppelin: invalid cost parameters")

	// ErrResourceLimit is returned when CryptSettings.SCost exceeds the
	// configured memory ceiling.
	ErrResourceLimit = errors.New("zeppelin: cost parameters exceed resource limit")

	// ErrAuthenticationFailed is returned when the recovered MAC tag does
	// not match the expected tag, which indicates either the wrong
	// password or corrupted ciphertext.
	ErrAuthenticationFailed = errors.New("zeppelin: authentication failed")

	// ErrMalformed is returned when a params document or wrapped salt is
	// not shaped the way this package expects.
	ErrMalformed = errors.New("zeppelin: malformed input")

	// ErrCancelled is returned when the caller's context is cancelled
	// mid-operation.
	ErrCancelled = errors.New("zeppelin: operation cancelled")
)
