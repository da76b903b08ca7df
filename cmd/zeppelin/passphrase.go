package main

import "golang.org/x/crypto/argon2"

// Argon2id parameters matching the reference implementation's pre-stretch:
// a conservative, widely-used memory/time tradeoff for turning a typed
// passphrase into a uniformly-distributed 64-byte blob before it ever
// reaches the core's own (much more expensive) Balloon stage.
const (
	argonTime    = 20
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 64
)

// pepper is a fixed, publicly-known Argon2 salt. It buys nothing against an
// attacker who knows it, which every attacker does; its only purpose is to
// make hardenPassphrase a distinct, non-reusable Argon2id instance rather
// than a bare unsalted hash. The real per-encryption salt is drawn inside
// zeppelin.Encrypt itself and protects the Balloon stage that follows this
// one.
var pepper = []byte("zeppelin-core/cli/passphrase/v1")

// hardenPassphrase stretches a human-typed passphrase through Argon2id,
// producing the password blob actually passed to zeppelin.Encrypt and
// zeppelin.Decrypt. This is deliberately a CLI-layer concern, not part of
// the core library: the core's Encrypt and Decrypt take raw password bytes
// with no pre-stretch.
func hardenPassphrase(passphrase []byte) []byte {
	return argon2.IDKey(passphrase, pepper, argonTime, argonMemory, argonThreads, argonKeyLen)
}
