package spell

import (
	"errors"

	"github.com/Steffo99/royalspells/internal/core/formula"
	"github.com/Steffo99/royalspells/internal/core/random"
	apperrors "github.com/Steffo99/royalspells/internal/platform/errors"
)

// Buff is an auxiliary modifier attached to an effect. Buffs are produced by
// callers through a BuffFunc; the generator treats them as opaque.
type Buff interface {
	Name() string
}

// BuffFunc produces the buffs for an effect once its target, damage and
// healing have been drawn. It may draw from src.
type BuffFunc func(src random.Source, target Target) []Buff

// ErrConflictingEffect indicates an effect was given both damage and healing.
var ErrConflictingEffect = errors.New("effect cannot both damage and heal")

// Effect is a single consequence of a spell. It carries at most one of damage
// or healing.
type Effect struct {
	target  Target
	damage  *formula.Formula
	healing *formula.Formula
	buffs   []Buff
}

// NewEffect assembles an effect from already chosen parts. Passing both damage
// and healing is rejected.
func NewEffect(target Target, damage, healing *formula.Formula, buffs []Buff) (Effect, error) {
	if damage != nil && healing != nil {
		return Effect{}, apperrors.Wrap(apperrors.CodeSpellConflictingEffect, "effect cannot both damage and heal", ErrConflictingEffect)
	}
	e := Effect{target: target, buffs: append([]Buff(nil), buffs...)}
	if damage != nil {
		d := *damage
		e.damage = &d
	}
	if healing != nil {
		h := *healing
		e.healing = &h
	}
	return e, nil
}

// Target returns the effect's target.
func (e Effect) Target() Target { return e.target }

// Damage returns the damage formula, if the effect deals damage.
func (e Effect) Damage() (formula.Formula, bool) {
	if e.damage == nil {
		return formula.Formula{}, false
	}
	return *e.damage, true
}

// Healing returns the healing formula, if the effect heals.
func (e Effect) Healing() (formula.Formula, bool) {
	if e.healing == nil {
		return formula.Formula{}, false
	}
	return *e.healing, true
}

// Buffs returns a copy of the effect's buffs.
func (e Effect) Buffs() []Buff {
	return append([]Buff(nil), e.buffs...)
}

type effectKind uint8

const (
	effectNeither effectKind = iota
	effectDamaging
	effectHealing
)

// 70% damaging, 20% healing, 10% neither.
var effectKindTable = random.MustCategorical(
	random.Bracket[effectKind]{Upper: 70, Value: effectDamaging},
	random.Bracket[effectKind]{Upper: 90, Value: effectHealing},
	random.Bracket[effectKind]{Upper: 100, Value: effectNeither},
)

// Only 20% of healing effects actually carry a formula.
var healingGate = random.MustCategorical(
	random.Bracket[bool]{Upper: 20, Value: true},
	random.Bracket[bool]{Upper: 100, Value: false},
)

// SelectEffect draws one effect from src: the target, then the effect kind,
// then the kind's formula. buffs may be nil.
func SelectEffect(src random.Source, buffs BuffFunc) Effect {
	effect, _ := selectEffect(src, buffs)
	return effect
}

func selectEffect(src random.Source, buffs BuffFunc) (Effect, effectKind) {
	effect := Effect{target: SelectTarget(src)}

	kind := effectKindTable.Select(src)
	switch kind {
	case effectDamaging:
		damage := formula.Select(src)
		effect.damage = &damage
	case effectHealing:
		if healingGate.Select(src) {
			healing := formula.Select(src)
			effect.healing = &healing
		}
	}

	if buffs != nil {
		effect.buffs = append([]Buff(nil), buffs(src, effect.target)...)
	}
	return effect, kind
}
