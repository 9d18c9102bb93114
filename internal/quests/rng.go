package quests

import "strings"

// rng is a mulberry32 generator. Quest selection must be reproducible
// across devices from the date alone, so the constants and update order are
// load-bearing: any 32-bit-faithful mulberry32 produces the same stream for
// the same seed.
type rng struct {
	state uint32
}

func newRNG(seed uint32) *rng {
	return &rng{state: seed}
}

// next returns the next float in [0, 1).
func (r *rng) next() float64 {
	r.state += 0x6D2B79F5
	z := r.state
	z = (z ^ (z >> 15)) * (z | 1)
	z ^= z + (z^(z>>7))*(z|61)
	return float64(z^(z>>14)) / 4294967296.0
}

// dateSeed turns a YYYY-MM-DD date into the generator seed by stripping
// separators and reading the digits as an integer: "2026-02-12" → 20260212.
func dateSeed(date string) uint32 {
	digits := strings.NewReplacer("-", "", "/", "", ".", "").Replace(date)
	var n uint32
	for _, c := range digits {
		if c < '0' || c > '9' {
			continue
		}
		n = n*10 + uint32(c-'0')
	}
	return n
}

// shuffle is a Fisher-Yates driven by the seeded generator.
func shuffle[T any](items []T, r *rng) {
	for i := len(items) - 1; i > 0; i-- {
		j := int(r.next() * float64(i+1))
		items[i], items[j] = items[j], items[i]
	}
}
