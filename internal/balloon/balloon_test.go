package balloon

import (
	"bytes"
	"testing"

	"github.com/codahale/gubbins/assert"
)

func TestCounterGrowth(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name             string
		sCost, tCost, sd uint32
	}{
		{"small", 4, 1, 1},
		{"more-time", 4, 3, 1},
		{"more-space", 9, 1, 1},
		{"more-deps-output", 4, 2, 5},
	}

	for _, c := range cases {
		c := c

		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			x, err := New([]byte("password"), []byte("saltsaltsaltsaltsaltsaltsaltsaltsaltsaltsaltsaltsaltsaltsaltsalt"), Params{
				SCost: c.sCost, TCost: c.tCost, StepDelta: c.sd,
			})
			if err != nil {
				t.Fatal(err)
			}

			want := uint64(c.sCost) * (1 + 7*uint64(c.tCost))
			assert.Equal(t, "counter after init", want, x.ctr)
		})
	}
}

func TestDeterministic(t *testing.T) {
	t.Parallel()

	params := Params{SCost: 8, TCost: 2, StepDelta: 2}
	salt := bytes.Repeat([]byte{0x42}, 64)

	x1, err := New([]byte("hunter2"), salt, params)
	if err != nil {
		t.Fatal(err)
	}

	x2, err := New([]byte("hunter2"), salt, params)
	if err != nil {
		t.Fatal(err)
	}

	out1 := make([]byte, 256)
	out2 := make([]byte, 256)

	if _, err := x1.Read(out1); err != nil {
		t.Fatal(err)
	}

	if _, err := x2.Read(out2); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "keystream", out1, out2)
}

func TestSaltChangesOutput(t *testing.T) {
	t.Parallel()

	params := Params{SCost: 8, TCost: 2, StepDelta: 2}

	x1, err := New([]byte("hunter2"), bytes.Repeat([]byte{0x01}, 64), params)
	if err != nil {
		t.Fatal(err)
	}

	x2, err := New([]byte("hunter2"), bytes.Repeat([]byte{0x02}, 64), params)
	if err != nil {
		t.Fatal(err)
	}

	out1 := make([]byte, 64)
	out2 := make([]byte, 64)

	_, _ = x1.Read(out1)
	_, _ = x2.Read(out2)

	if bytes.Equal(out1, out2) {
		t.Fatal("different salts produced identical keystreams")
	}
}

func TestInvalidParams(t *testing.T) {
	t.Parallel()

	cases := []Params{
		{SCost: 0, TCost: 1, StepDelta: 1},
		{SCost: 1, TCost: 0, StepDelta: 1},
		{SCost: 1, TCost: 1, StepDelta: 0},
	}

	for _, c := range cases {
		if _, err := New([]byte("x"), bytes.Repeat([]byte{0}, 64), c); err != ErrInvalidParams {
			t.Fatalf("New(%+v) = %v, want ErrInvalidParams", c, err)
		}
	}
}

func TestDrop(t *testing.T) {
	t.Parallel()

	x, err := New([]byte("hunter2"), bytes.Repeat([]byte{0x03}, 64), Params{SCost: 4, TCost: 1, StepDelta: 1})
	if err != nil {
		t.Fatal(err)
	}

	x.Drop()

	for i := range x.buf {
		if x.buf[i] != ([BlockSize]byte{}) {
			t.Fatal("Drop left a non-zero block")
		}
	}
}
