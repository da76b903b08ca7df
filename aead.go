// Package zeppelin provides authenticated, memory-hard, all-or-nothing
// encryption of byte streams under a password, built from a Balloon-style
// memory-hard keystream generator driven by SHA3-512.
package zeppelin

import (
	"bytes"
	"context"
	"crypto/rand"
	"io"

	"github.com/pkg/errors"

	"github.com/lostinentropy/zeppelin-core/internal/balloon"
	"github.com/lostinentropy/zeppelin-core/internal/mac"
	"github.com/lostinentropy/zeppelin-core/internal/stream"
	"github.com/lostinentropy/zeppelin-core/internal/streamio"
	"github.com/lostinentropy/zeppelin-core/internal/zero"
)

// SaltSize is the fixed length, in bytes, of a salt and of a wrapped salt.
const SaltSize = 64

// TagSize is the fixed length, in bytes, of the MAC tag embedded at the
// front of every ciphertext body.
const TagSize = mac.Size

// Encrypt reads all of source, computes a MAC over it, and writes
// TagSize+len(plaintext) bytes of ciphertext to sink: the MAC tag followed
// by the encrypted plaintext, both XORed against a Balloon-derived
// keystream. It returns the wrapped salt and the serialized params
// document the caller must persist alongside the ciphertext; both are
// required to decrypt.
//
// source must support a single rewind (Seek back to its start); Encrypt
// performs exactly one MAC pass followed by one encryption pass. Encrypt
// takes ownership of password and zeroizes it before returning. A cancelled
// ctx aborts the encryption pass at the next block boundary and ErrCancelled
// is returned; the MAC pass above is short enough that it is not checked.
func Encrypt(ctx context.Context, password []byte, source io.ReadSeeker, sink io.Writer, params CryptSettings, prog Progress) (wrappedSalt [SaltSize]byte, paramsDoc []byte, err error) {
	defer zero.Bytes(password)

	if err := params.Validate(); err != nil {
		return wrappedSalt, nil, err
	}

	paramsDoc, err = params.MarshalDocument()
	if err != nil {
		return wrappedSalt, nil, err
	}

	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return wrappedSalt, nil, errors.Wrap(err, "zeppelin: drawing salt")
	}
	defer zero.Bytes(salt)

	macKey := mac.Key(salt, password)
	defer zero.Bytes(macKey[:])

	tag, err := macOverSource(macKey, source)
	if err != nil {
		return wrappedSalt, nil, errors.Wrap(err, "zeppelin: computing mac")
	}

	if err := streamio.Rewind(source); err != nil {
		return wrappedSalt, nil, errors.Wrap(err, "zeppelin: rewinding source")
	}

	xof, err := balloon.New(password, salt, params.balloonParams())
	if err != nil {
		return wrappedSalt, nil, err
	}
	defer xof.Drop()

	plainSize, err := streamio.Size(source)
	if err != nil {
		plainSize = -1
	}

	var saltArr [SaltSize]byte
	copy(saltArr[:], salt)

	folder := streamio.NewSaltFolder(saltArr)
	bodySize := int64(-1)
	if plainSize >= 0 {
		bodySize = int64(TagSize) + plainSize
	}

	progressSink := streamio.NewProgressWriter(sink, bodySize, prog)
	dst := io.MultiWriter(progressSink, folder)

	body := io.MultiReader(bytes.NewReader(tag[:]), source)

	if _, err := stream.XOR(ctx, dst, body, xof); err != nil {
		if ctx.Err() != nil {
			return wrappedSalt, nil, ErrCancelled
		}

		return wrappedSalt, nil, errors.Wrap(err, "zeppelin: encrypting")
	}

	return folder.Sum(), paramsDoc, nil
}

// Decrypt recovers the salt from wrappedSalt and the ciphertext body in
// source, verifies its MAC, and writes the plaintext to sink. It returns
// ErrAuthenticationFailed if the password is wrong or the ciphertext was
// corrupted; per the all-or-nothing design, this can only be determined
// after reading every byte of source, and whatever plaintext was already
// written to sink before the mismatch is detected is not undone -- callers
// MUST discard sink's contents on any non-nil error.
//
// source must support a single rewind; Decrypt performs exactly one pass to
// recover the salt followed by one decryption pass. Decrypt takes ownership
// of password and zeroizes it before returning. A cancelled ctx aborts the
// decryption pass at the next block boundary and ErrCancelled is returned;
// the salt-recovery pass above is not checked.
func Decrypt(ctx context.Context, password []byte, wrappedSalt [SaltSize]byte, paramsDoc []byte, source io.ReadSeeker, sink io.Writer, prog Progress) error {
	defer zero.Bytes(password)

	params, err := ParseDocument(paramsDoc)
	if err != nil {
		return err
	}

	folder := streamio.NewSaltFolder(wrappedSalt)
	if _, err := io.Copy(folder, source); err != nil {
		return errors.Wrap(err, "zeppelin: recovering salt")
	}

	recoveredSalt := folder.Sum()
	defer zero.Bytes(recoveredSalt[:])

	if err := streamio.Rewind(source); err != nil {
		return errors.Wrap(err, "zeppelin: rewinding source")
	}

	xof, err := balloon.New(password, recoveredSalt[:], params.balloonParams())
	if err != nil {
		return err
	}
	defer xof.Drop()

	macKey := mac.Key(recoveredSalt[:], password)
	defer zero.Bytes(macKey[:])
	hasher := mac.NewHasher(macKey)

	split := &tagSplitWriter{need: TagSize, rest: hasher, out: sink}

	bodySize, err := streamio.Size(source)
	if err != nil {
		bodySize = -1
	}

	progressDst := streamio.NewProgressWriter(split, bodySize, prog)

	if _, err := stream.XOR(ctx, progressDst, source, xof); err != nil {
		if ctx.Err() != nil {
			return ErrCancelled
		}

		return errors.Wrap(err, "zeppelin: decrypting")
	}

	if !mac.Equal(hasher.Sum(), split.tag) {
		return ErrAuthenticationFailed
	}

	return nil
}

// tagSplitWriter peels the first TagSize bytes off a written stream into
// tag, forwarding the rest to both a MAC hasher and the real sink.
type tagSplitWriter struct {
	need int
	tag  [TagSize]byte
	done int
	rest io.Writer
	out  io.Writer
}

func (w *tagSplitWriter) Write(p []byte) (int, error) {
	total := len(p)

	if w.need > 0 {
		take := w.need
		if take > len(p) {
			take = len(p)
		}

		copy(w.tag[w.done:], p[:take])
		w.done += take
		w.need -= take
		p = p[take:]
	}

	if len(p) > 0 {
		if _, err := w.rest.Write(p); err != nil {
			return 0, err
		}

		if _, err := w.out.Write(p); err != nil {
			return 0, err
		}
	}

	return total, nil
}

func macOverSource(key [mac.Size]byte, source io.Reader) ([mac.Size]byte, error) {
	h := mac.NewHasher(key)
	if _, err := io.Copy(h, source); err != nil {
		return [mac.Size]byte{}, err
	}

	return h.Sum(), nil
}
