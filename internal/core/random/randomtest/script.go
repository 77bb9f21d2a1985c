// Package randomtest provides scripted random sources for tests that need to
// force specific draws.
package randomtest

import (
	"fmt"

	"github.com/Steffo99/royalspells/internal/core/random"
)

// Script is a random.Source that replays queued values in call order. Each
// method consumes from its own queue; running out of values panics so a test
// notices when the code under test draws more than expected.
type Script struct {
	Ints   []int
	Floats []float64

	intCalls   [][2]int
	floatCalls []string
}

// IntRange returns the next queued integer, ignoring the bounds. The bounds
// are recorded for assertions.
func (s *Script) IntRange(low, high int) int {
	if len(s.Ints) == 0 {
		panic(fmt.Sprintf("script exhausted: IntRange(%d, %d)", low, high))
	}
	s.intCalls = append(s.intCalls, [2]int{low, high})
	v := s.Ints[0]
	s.Ints = s.Ints[1:]
	return v
}

// Uniform returns the next queued float.
func (s *Script) Uniform(low, high float64) float64 {
	s.floatCalls = append(s.floatCalls, fmt.Sprintf("uniform(%g,%g)", low, high))
	return s.nextFloat()
}

// Gaussian returns the next queued float.
func (s *Script) Gaussian(mu, sigma float64) float64 {
	s.floatCalls = append(s.floatCalls, fmt.Sprintf("gaussian(%g,%g)", mu, sigma))
	return s.nextFloat()
}

// IntCalls returns the bounds of every IntRange call so far.
func (s *Script) IntCalls() [][2]int {
	return s.intCalls
}

// FloatCalls describes every Uniform and Gaussian call so far.
func (s *Script) FloatCalls() []string {
	return s.floatCalls
}

// Remaining reports how many queued values were not consumed.
func (s *Script) Remaining() int {
	return len(s.Ints) + len(s.Floats)
}

func (s *Script) nextFloat() float64 {
	if len(s.Floats) == 0 {
		panic("script exhausted: float draw")
	}
	v := s.Floats[0]
	s.Floats = s.Floats[1:]
	return v
}

var _ random.Source = (*Script)(nil)
