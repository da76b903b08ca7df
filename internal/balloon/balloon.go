// Package balloon implements a Balloon-style memory-hard extendable output
// function (XOF) driven by SHA3-512. Given a password, a salt, and a set of
// cost parameters, it produces an effectively infinite, deterministic stream
// of pseudo-random bytes that is expensive to compute in both time and
// memory, making brute-force search over low-entropy passwords costly.
package balloon

import (
	"encoding/binary"
	"errors"
	"hash"

	"golang.org/x/crypto/sha3"
)

// deps is the number of pseudo-randomly chosen dependent blocks mixed into
// each block during every sweep of the mixing phase.
const deps = 3

// BlockSize is the width, in bytes, of one internal Balloon block and of one
// unit of squeezed output.
const BlockSize = 64

// ErrInvalidParams is returned when the cost parameters are out of range.
var ErrInvalidParams = errors.New("balloon: invalid cost parameters")

// Params bundles the cost parameters that drive Init. SCost is the number of
// 64-byte blocks in the working buffer; TCost is the number of mixing sweeps
// performed over that buffer; StepDelta is the number of primitive
// applications spent per squeezed block.
type Params struct {
	SCost     uint32
	TCost     uint32
	StepDelta uint32
}

// Validate reports whether p's fields are all within the accepted range.
func (p Params) Validate() error {
	if p.SCost < 1 || p.TCost < 1 || p.StepDelta < 1 {
		return ErrInvalidParams
	}

	return nil
}

// XOF is a Balloon-hardened extendable output function. It implements
// io.Reader: each Read call squeezes that many bytes from the internal
// state, advancing it irreversibly. An XOF is not safe for concurrent use.
type XOF struct {
	buf  [][BlockSize]byte
	salt []byte
	step uint32
	ctr  uint64
	pos  uint32
	h    *sha3Wrapper
}

// New initializes a Balloon XOF from a password, a salt, and cost
// parameters. It performs the full seed-and-mix setup eagerly; Read calls
// only pay for the output phase.
func New(password, salt []byte, params Params) (*XOF, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	x := &XOF{
		buf:  make([][BlockSize]byte, params.SCost),
		salt: append([]byte(nil), salt...),
		step: params.StepDelta,
		h:    newSHA3Wrapper(),
	}

	x.seed(password, salt)
	x.mix(params.TCost, params.SCost)

	return x, nil
}

func (x *XOF) nextCtr() uint64 {
	c := x.ctr
	x.ctr++

	return c
}

// hashBlock computes H(ctr || parts...) into dst, where ctr is drawn fresh
// from the monotonic counter.
func (x *XOF) hashBlock(dst *[BlockSize]byte, parts ...[]byte) {
	x.h.reset()
	x.h.writeCtr(x.nextCtr())

	for _, p := range parts {
		x.h.write(p)
	}

	x.h.sum(dst)
}

func (x *XOF) seed(password, salt []byte) {
	x.hashBlock(&x.buf[0], password, salt)

	for i := 1; i < len(x.buf); i++ {
		x.hashBlock(&x.buf[i], x.buf[i-1][:])
	}
}

func (x *XOF) mix(tCost uint32, sCost uint32) {
	var idxBuf [4 + 4 + 4]byte

	for t := uint32(0); t < tCost; t++ {
		for i := uint32(0); i < sCost; i++ {
			prevIdx := (i - 1 + sCost) % sCost
			x.hashBlock(&x.buf[i], x.buf[prevIdx][:], x.buf[i][:])

			for k := uint32(0); k < deps; k++ {
				binary.LittleEndian.PutUint32(idxBuf[0:4], t)
				binary.LittleEndian.PutUint32(idxBuf[4:8], i)
				binary.LittleEndian.PutUint32(idxBuf[8:12], k)

				var idxOut [BlockSize]byte
				x.hashBlock(&idxOut, idxBuf[:], x.salt)

				other := binary.LittleEndian.Uint32(idxOut[:4]) % sCost
				x.hashBlock(&x.buf[i], x.buf[i][:], x.buf[other][:])
			}
		}
	}
}

// Read squeezes len(p) bytes of keystream, mutating the internal state as it
// goes. It always fills p completely and never returns an error.
func (x *XOF) Read(p []byte) (int, error) {
	n := 0

	for n < len(p) {
		block := x.squeezeOne()
		n += copy(p[n:], block[:])
	}

	return n, nil
}

// squeezeOne produces the next 64-byte output block, folding it back into
// the buffer so the transform never runs in reverse.
func (x *XOF) squeezeOne() [BlockSize]byte {
	sCost := uint32(len(x.buf))

	var out [BlockSize]byte
	copy(out[:], x.buf[x.pos][:])

	for d := uint32(0); d < x.step; d++ {
		dep := (x.pos + d) % sCost
		x.hashBlock(&out, out[:], x.buf[dep][:])
	}

	x.buf[x.pos] = out
	x.pos = (x.pos + 1) % sCost

	return out
}

// Drop zeroizes the internal buffer and salt copy. The XOF must not be used
// afterward.
func (x *XOF) Drop() {
	for i := range x.buf {
		for j := range x.buf[i] {
			x.buf[i][j] = 0
		}
	}

	for i := range x.salt {
		x.salt[i] = 0
	}

	x.ctr = 0
}

// sha3Wrapper reuses a single hash.Hash across many small hashBlock calls
// rather than allocating a fresh one per call.
type sha3Wrapper struct {
	h hash.Hash
}

func newSHA3Wrapper() *sha3Wrapper {
	return &sha3Wrapper{h: sha3.New512()}
}

func (w *sha3Wrapper) reset() {
	w.h.Reset()
}

func (w *sha3Wrapper) write(p []byte) {
	_, _ = w.h.Write(p)
}

func (w *sha3Wrapper) writeCtr(ctr uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], ctr)
	_, _ = w.h.Write(b[:])
}

func (w *sha3Wrapper) sum(dst *[BlockSize]byte) {
	s := w.h.Sum(nil)
	copy(dst[:], s)
}

var _ interface {
	Read([]byte) (int, error)
} = &XOF{}
