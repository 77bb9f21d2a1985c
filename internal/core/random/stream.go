// Package random provides the seeded entropy source every spell generation
// run draws from, and the percentile tables used for weighted choices.
package random

import "math/rand/v2"

// Source is the draw surface selections consume. Stream is the production
// implementation; tests substitute scripted sources to force outcomes.
type Source interface {
	// Uniform returns a float in [low, high).
	Uniform(low, high float64) float64
	// Gaussian returns a normally distributed float with the given mean and
	// standard deviation.
	Gaussian(mu, sigma float64) float64
	// IntRange returns an integer in [low, high], inclusive on both ends.
	IntRange(low, high int) int
}

// Stream is a deterministic pseudo-random source seeded from an arbitrary
// value. Two streams built from equal seeds return identical results for the
// same sequence of calls.
//
// A Stream is owned by exactly one generation run and is not safe for
// concurrent use.
type Stream struct {
	rng *rand.Rand
	pos uint64
}

// NewStream creates a Stream seeded from seed. Any value is accepted; see
// HashSeed for how values are reduced to integers.
func NewStream(seed any) *Stream {
	key := seedKey(seed)
	// #nosec G404
	return &Stream{rng: rand.New(rand.NewPCG(seedWord(key, "a"), seedWord(key, "b")))}
}

// Uniform returns low + (high-low)*u for u drawn uniformly from [0, 1).
func (s *Stream) Uniform(low, high float64) float64 {
	s.pos++
	return low + (high-low)*s.rng.Float64()
}

// Gaussian returns mu + sigma*n for n drawn from the standard normal
// distribution.
func (s *Stream) Gaussian(mu, sigma float64) float64 {
	s.pos++
	return mu + sigma*s.rng.NormFloat64()
}

// IntRange returns an integer in [low, high]. When high <= low it returns low
// without consuming a draw.
func (s *Stream) IntRange(low, high int) int {
	if high <= low {
		return low
	}
	s.pos++
	return low + s.rng.IntN(high-low+1)
}

// Position reports how many draws the stream has served.
func (s *Stream) Position() uint64 {
	return s.pos
}

var _ Source = (*Stream)(nil)
