// Package zero provides best-effort zeroization of sensitive byte buffers.
package zero

// Bytes overwrites every byte of b with zero. Callers should call this on
// passwords, derived keys, and Balloon buffers on every exit path, including
// error and cancellation paths.
func Bytes(b []byte) {
	clear(b)
}
