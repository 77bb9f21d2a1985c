package spell

import (
	"fmt"

	"github.com/Steffo99/royalspells/internal/core/encoding"
	"github.com/Steffo99/royalspells/internal/core/formula"
)

// Snapshot is the JSON form of a spell shared by every transport.
type Snapshot struct {
	Seed        string           `json:"seed,omitempty"`
	EffectCount int              `json:"effect_count"`
	Cost        int              `json:"cost"`
	Effects     []EffectSnapshot `json:"effects"`
}

// EffectSnapshot is the JSON form of an effect.
type EffectSnapshot struct {
	Target  string            `json:"target"`
	Damage  *formula.Snapshot `json:"damage,omitempty"`
	Healing *formula.Snapshot `json:"healing,omitempty"`
	Buffs   []string          `json:"buffs"`
}

// Snapshot returns the JSON form of s.
func (s Spell) Snapshot() Snapshot {
	snap := Snapshot{
		EffectCount: len(s.effects),
		Cost:        s.cost,
		Effects:     make([]EffectSnapshot, 0, len(s.effects)),
	}
	if s.seed != nil {
		snap.Seed = fmt.Sprint(s.seed)
	}
	for _, e := range s.effects {
		snap.Effects = append(snap.Effects, e.Snapshot())
	}
	return snap
}

// Snapshot returns the JSON form of e.
func (e Effect) Snapshot() EffectSnapshot {
	snap := EffectSnapshot{
		Target: e.target.String(),
		Buffs:  make([]string, 0, len(e.buffs)),
	}
	if e.damage != nil {
		d := e.damage.Snapshot()
		snap.Damage = &d
	}
	if e.healing != nil {
		h := e.healing.Snapshot()
		snap.Healing = &h
	}
	for _, b := range e.buffs {
		snap.Buffs = append(snap.Buffs, b.Name())
	}
	return snap
}

// Fingerprint identifies the spell's content: its effects and cost. Spells
// with equal fingerprints are interchangeable even if their seeds differ.
func (s Spell) Fingerprint() (string, error) {
	snap := s.Snapshot()
	snap.Seed = ""
	return encoding.ContentHash(snap)
}
