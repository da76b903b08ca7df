// Package mac computes the keyed authentication tag used by the
// MAC-then-encrypt construction: a domain-separated SHA3-512 over the
// plaintext, keyed by the salt and the password.
package mac

import (
	"crypto/subtle"

	"golang.org/x/crypto/sha3"
)

// Size is the fixed length, in bytes, of a MAC tag.
const Size = 64

const domain = "mac"

// Key derives the MAC key from a salt and password: H(domain || salt ||
// H(password)). Folding H(password) in rather than password directly keeps
// the password's length and exact bytes out of the key-derivation hash's
// input.
func Key(salt, password []byte) [Size]byte {
	var passwordDigest [Size]byte

	ph := sha3.New512()
	_, _ = ph.Write(password)
	ph.Sum(passwordDigest[:0])

	kh := sha3.New512()
	_, _ = kh.Write([]byte(domain))
	_, _ = kh.Write(salt)
	_, _ = kh.Write(passwordDigest[:])

	var key [Size]byte
	kh.Sum(key[:0])

	return key
}

// Hasher accumulates a running tag over plaintext bytes as they stream by,
// so STREAMIO never has to buffer the whole plaintext to compute a tag.
type Hasher struct {
	h sha3State
}

type sha3State interface {
	Write(p []byte) (int, error)
	Sum(b []byte) []byte
}

// NewHasher starts a fresh running tag keyed by key.
func NewHasher(key [Size]byte) *Hasher {
	h := sha3.New512()
	_, _ = h.Write(key[:])

	return &Hasher{h: h}
}

// Write absorbs more plaintext bytes into the running tag.
func (m *Hasher) Write(p []byte) (int, error) {
	return m.h.Write(p)
}

// Sum finalizes the running tag.
func (m *Hasher) Sum() [Size]byte {
	var out [Size]byte
	m.h.Sum(out[:0])

	return out
}

// Equal compares two tags in constant time.
func Equal(a, b [Size]byte) bool {
	return subtle.ConstantTimeCompare(a[:], b[:]) == 1
}
