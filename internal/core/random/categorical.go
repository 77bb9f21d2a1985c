package random

import "fmt"

// Percentile bounds for every categorical roll.
const (
	PercentileMin = 1
	PercentileMax = 100
)

// Bracket maps every roll up to and including Upper to Value.
type Bracket[T any] struct {
	Upper int
	Value T
}

// Categorical is a cumulative percentile table. Brackets are evaluated in
// ascending order and the first bracket whose Upper bound is >= the roll wins.
type Categorical[T any] struct {
	brackets []Bracket[T]
}

// MustCategorical builds a table from brackets. Bounds must be strictly
// increasing and the last bound must be PercentileMax; anything else is a
// programming error and panics.
func MustCategorical[T any](brackets ...Bracket[T]) Categorical[T] {
	if len(brackets) == 0 {
		panic("categorical table requires at least one bracket")
	}
	prev := PercentileMin - 1
	for _, b := range brackets {
		if b.Upper <= prev {
			panic(fmt.Sprintf("categorical bracket %d is not above %d", b.Upper, prev))
		}
		prev = b.Upper
	}
	if prev != PercentileMax {
		panic(fmt.Sprintf("categorical table ends at %d, want %d", prev, PercentileMax))
	}
	return Categorical[T]{brackets: brackets}
}

// Select draws one percentile roll from src and returns its outcome.
func (c Categorical[T]) Select(src Source) T {
	return c.Lookup(src.IntRange(PercentileMin, PercentileMax))
}

// Lookup returns the outcome for an already drawn roll. Rolls above the last
// bracket resolve to the last outcome.
func (c Categorical[T]) Lookup(roll int) T {
	for _, b := range c.brackets {
		if roll <= b.Upper {
			return b.Value
		}
	}
	return c.brackets[len(c.brackets)-1].Value
}
