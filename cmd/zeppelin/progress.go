package main

import (
	"fmt"
	"os"
)

const barWidth = 30

// barProgress renders a simple percentage bar to stderr, redrawn in place
// with a carriage return. Total of -1 (size unknown) falls back to a plain
// byte counter.
type barProgress struct {
	label string
}

func (b *barProgress) Update(done, total int64) {
	if total <= 0 {
		fmt.Fprintf(os.Stderr, "\r%s: %d bytes", b.label, done)
		return
	}

	filled := int(float64(barWidth) * float64(done) / float64(total))
	if filled > barWidth {
		filled = barWidth
	}

	bar := make([]byte, barWidth)
	for i := range bar {
		if i < filled {
			bar[i] = '#'
		} else {
			bar[i] = '-'
		}
	}

	pct := 100 * float64(done) / float64(total)
	fmt.Fprintf(os.Stderr, "\r%s: [%s] %5.1f%%", b.label, bar, pct)
}
