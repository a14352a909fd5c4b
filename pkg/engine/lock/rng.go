package lock

import (
	"math/rand/v2"
)

// RNG is the random source a lock draws sequences, sweetspots and wire
// layouts from. *rand.Rand satisfies it.
type RNG interface {
	IntN(n int) int
	Float64() float64
}

// NewSeededRNG returns a replayable RNG: the same seed yields the same lock.
func NewSeededRNG(seed uint64) RNG {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// DefaultRNG returns an RNG seeded from the runtime's entropy source.
func DefaultRNG() RNG {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// RangeFloat returns a uniform value in [lo, hi).
func RangeFloat(rng RNG, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// Shuffle permutes s in place (Fisher-Yates).
func Shuffle[T any](rng RNG, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
