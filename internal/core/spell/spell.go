// Package spell generates spells: ordered lists of effects drawn from a single
// seeded stream, so that a seed and an effect count always reproduce the same
// spell.
package spell

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Steffo99/royalspells/internal/core/random"
	apperrors "github.com/Steffo99/royalspells/internal/platform/errors"
)

// ErrInvalidEffectCount indicates a negative effect count.
var ErrInvalidEffectCount = errors.New("effect count must not be negative")

// Spell is a generated spell. It is fully built by Generate or GenerateFrom
// and has no mutation API.
type Spell struct {
	seed    any
	stream  *random.Stream
	effects []Effect
	cost    int
	draws   uint64
}

// Option customizes generation.
type Option func(*options)

type options struct {
	cost  CostFunc
	buffs BuffFunc
}

// WithCost replaces DefaultCost. A nil fn keeps the default.
func WithCost(fn CostFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.cost = fn
		}
	}
}

// WithBuffs installs a hook that attaches buffs to each effect. Without it
// effects carry no buffs and no extra draws are made.
func WithBuffs(fn BuffFunc) Option {
	return func(o *options) {
		o.buffs = fn
	}
}

// Generate builds a spell of effectCount effects from a stream seeded with
// seed. The spell owns that stream. The result depends only on seed,
// effectCount and the buff hook.
//
// Example:
//
//	s, err := spell.Generate("abc", 5)
//	for _, e := range s.Effects() {
//	    if dmg, ok := e.Damage(); ok {
//	        fmt.Println(e.Target(), dmg)
//	    }
//	}
func Generate(seed any, effectCount int, opts ...Option) (Spell, error) {
	stream := random.NewStream(seed)
	s, err := build(stream, effectCount, opts)
	if err != nil {
		return Spell{}, err
	}
	s.seed = seed
	s.stream = stream
	return s, nil
}

// GenerateFrom builds a spell from a caller-owned source. The spell records no
// seed; reproducing it is up to whoever owns src.
func GenerateFrom(src random.Source, effectCount int, opts ...Option) (Spell, error) {
	if src == nil {
		return Spell{}, fmt.Errorf("random source is required")
	}
	return build(src, effectCount, opts)
}

type positioner interface {
	Position() uint64
}

func build(src random.Source, effectCount int, opts []Option) (Spell, error) {
	if effectCount < 0 {
		return Spell{}, apperrors.WrapWithMetadata(
			apperrors.CodeSpellInvalidEffectCount,
			fmt.Sprintf("effect count %d must not be negative", effectCount),
			map[string]string{"effect_count": strconv.Itoa(effectCount)},
			ErrInvalidEffectCount,
		)
	}

	cfg := options{cost: DefaultCost}
	for _, opt := range opts {
		opt(&cfg)
	}

	var start uint64
	pos, tracked := src.(positioner)
	if tracked {
		start = pos.Position()
	}

	effects := make([]Effect, 0, effectCount)
	for i := 0; i < effectCount; i++ {
		effects = append(effects, SelectEffect(src, cfg.buffs))
	}

	s := Spell{
		effects: effects,
		cost:    cfg.cost(append([]Effect(nil), effects...)),
	}
	if tracked {
		s.draws = pos.Position() - start
	}
	return s, nil
}

// Seed returns the seed the spell was generated from, or nil when it was
// generated from a borrowed source.
func (s Spell) Seed() any { return s.seed }

// OwnsStream reports whether the spell was generated from its own seeded
// stream.
func (s Spell) OwnsStream() bool { return s.stream != nil }

// Effects returns a copy of the spell's effects in generation order.
func (s Spell) Effects() []Effect {
	return append([]Effect(nil), s.effects...)
}

// EffectCount returns the number of effects.
func (s Spell) EffectCount() int { return len(s.effects) }

// Cost returns the spell's cost as computed by its CostFunc.
func (s Spell) Cost() int { return s.cost }

// Draws reports how many draws generation consumed. It is zero when the
// source does not track its position.
func (s Spell) Draws() uint64 { return s.draws }
