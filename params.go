package zeppelin

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/lostinentropy/zeppelin-core/internal/balloon"
)

// CurrentVersion is the algorithm-variant tag written by Encrypt and the
// only version DefaultSettings will ever produce. Decrypt rejects any
// params document whose version it doesn't recognize.
const CurrentVersion = 1

// MaxSCost bounds CryptSettings.SCost to keep a maliciously large params
// document from making Decrypt allocate an unbounded amount of memory. One
// block is 64 bytes, so this caps the Balloon working buffer at 4 GiB.
const MaxSCost = 1 << 26

// CryptSettings are the cost parameters that drive the Balloon XOF. See
// DefaultSettings for recommended production values and
// TestingSettings for fast, insecure values suitable only for tests.
type CryptSettings struct {
	SCost     uint32 `json:"s_cost"`
	TCost     uint32 `json:"t_cost"`
	StepDelta uint32 `json:"step_delta"`
	Version   uint32 `json:"version"`
}

// DefaultSettings returns production-grade cost parameters targeting
// 30 MB (about 28.6 MiB) of working memory.
func DefaultSettings() CryptSettings {
	return CryptSettings{
		SCost:     468750,
		TCost:     2,
		StepDelta: 3,
		Version:   CurrentVersion,
	}
}

// TestingSettings returns cost parameters cheap enough for unit tests. They
// MUST NOT be used to protect real data.
func TestingSettings() CryptSettings {
	return CryptSettings{
		SCost:     16,
		TCost:     2,
		StepDelta: 3,
		Version:   CurrentVersion,
	}
}

// Validate reports whether s is internally consistent and within this
// package's resource limits.
func (s CryptSettings) Validate() error {
	if s.SCost < 1 || s.TCost < 1 || s.StepDelta < 1 {
		return errors.Wrap(ErrInvalidParams, "s_cost, t_cost, and step_delta must all be at least 1")
	}

	if s.Version != CurrentVersion {
		return errors.Wrapf(ErrInvalidParams, "unrecognized version %d", s.Version)
	}

	if s.SCost > MaxSCost {
		return errors.Wrapf(ErrResourceLimit, "s_cost %d exceeds limit of %d", s.SCost, MaxSCost)
	}

	return nil
}

func (s CryptSettings) balloonParams() balloon.Params {
	return balloon.Params{SCost: s.SCost, TCost: s.TCost, StepDelta: s.StepDelta}
}

// MarshalDocument serializes s to the canonical params document: a JSON
// object with exactly the keys s_cost, t_cost, step_delta, and version.
func (s CryptSettings) MarshalDocument() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	return json.Marshal(s)
}

// ParseDocument parses a params document produced by MarshalDocument,
// rejecting any document with missing, extra, or wrongly typed fields, or
// an unrecognized version.
func ParseDocument(doc []byte) (CryptSettings, error) {
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.DisallowUnknownFields()

	var raw struct {
		SCost     *uint32 `json:"s_cost"`
		TCost     *uint32 `json:"t_cost"`
		StepDelta *uint32 `json:"step_delta"`
		Version   *uint32 `json:"version"`
	}

	if err := dec.Decode(&raw); err != nil {
		return CryptSettings{}, errors.Wrap(ErrMalformed, err.Error())
	}

	if raw.SCost == nil || raw.TCost == nil || raw.StepDelta == nil || raw.Version == nil {
		return CryptSettings{}, errors.Wrap(ErrMalformed, "params document is missing a required field")
	}

	s := CryptSettings{
		SCost:     *raw.SCost,
		TCost:     *raw.TCost,
		StepDelta: *raw.StepDelta,
		Version:   *raw.Version,
	}

	if err := s.Validate(); err != nil {
		return CryptSettings{}, err
	}

	return s, nil
}
