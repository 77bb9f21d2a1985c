package domain

import (
	"time"

	spellbookv1 "github.com/Steffo99/royalspells/api/spellbook/v1"
	"github.com/Steffo99/royalspells/internal/core/formula"
	"github.com/Steffo99/royalspells/internal/core/spell"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// FormulaResult describes a damage or healing formula. Only the parameters
// of Kind are set.
type FormulaResult struct {
	Kind  string   `json:"kind" jsonschema:"formula kind: fixed, uniform or gaussian"`
	Value *int     `json:"value,omitempty" jsonschema:"fixed value"`
	Min   *float64 `json:"min,omitempty" jsonschema:"uniform lower bound"`
	Max   *float64 `json:"max,omitempty" jsonschema:"uniform upper bound"`
	Mu    *float64 `json:"mu,omitempty" jsonschema:"gaussian mean"`
	Sigma *float64 `json:"sigma,omitempty" jsonschema:"gaussian standard deviation"`
}

// EffectResult describes one spell effect.
type EffectResult struct {
	Target  string         `json:"target" jsonschema:"who the effect applies to"`
	Damage  *FormulaResult `json:"damage,omitempty" jsonschema:"damage formula, if any"`
	Healing *FormulaResult `json:"healing,omitempty" jsonschema:"healing formula, if any"`
	Buffs   []string       `json:"buffs" jsonschema:"buff names"`
}

// SpellResult describes a generated spell.
type SpellResult struct {
	Seed        string         `json:"seed" jsonschema:"seed that reproduces the spell"`
	EffectCount int            `json:"effect_count" jsonschema:"number of effects"`
	Cost        int            `json:"cost" jsonschema:"casting cost"`
	Fingerprint string         `json:"fingerprint,omitempty" jsonschema:"content hash of the effects and cost"`
	Effects     []EffectResult `json:"effects" jsonschema:"effects in generation order"`
}

// SpellRecordResult describes a saved spell.
type SpellRecordResult struct {
	ID            string `json:"id" jsonschema:"spell record identifier"`
	Name          string `json:"name,omitempty" jsonschema:"display name"`
	Seed          string `json:"seed" jsonschema:"seed that reproduces the spell"`
	EffectCount   int    `json:"effect_count" jsonschema:"number of effects"`
	Cost          int    `json:"cost" jsonschema:"casting cost"`
	PrimaryTarget string `json:"primary_target,omitempty" jsonschema:"target of the first effect"`
	Fingerprint   string `json:"fingerprint" jsonschema:"content hash of the effects and cost"`
	CreatedAt     string `json:"created_at,omitempty" jsonschema:"RFC3339 creation time"`
}

func formulaResultFromSnapshot(snap *formula.Snapshot) *FormulaResult {
	if snap == nil {
		return nil
	}
	return &FormulaResult{
		Kind:  snap.Kind,
		Value: snap.Value,
		Min:   snap.Min,
		Max:   snap.Max,
		Mu:    snap.Mu,
		Sigma: snap.Sigma,
	}
}

func spellResultFromSnapshot(snap *spell.Snapshot, fingerprint string) SpellResult {
	if snap == nil {
		return SpellResult{Effects: []EffectResult{}}
	}
	result := SpellResult{
		Seed:        snap.Seed,
		EffectCount: snap.EffectCount,
		Cost:        snap.Cost,
		Fingerprint: fingerprint,
		Effects:     make([]EffectResult, 0, len(snap.Effects)),
	}
	for _, effect := range snap.Effects {
		buffs := effect.Buffs
		if buffs == nil {
			buffs = []string{}
		}
		result.Effects = append(result.Effects, EffectResult{
			Target:  effect.Target,
			Damage:  formulaResultFromSnapshot(effect.Damage),
			Healing: formulaResultFromSnapshot(effect.Healing),
			Buffs:   buffs,
		})
	}
	return result
}

func spellRecordResultFromProto(record *spellbookv1.SpellRecord) SpellRecordResult {
	if record == nil {
		return SpellRecordResult{}
	}
	return SpellRecordResult{
		ID:            record.Id,
		Name:          record.Name,
		Seed:          record.Seed,
		EffectCount:   int(record.EffectCount),
		Cost:          int(record.Cost),
		PrimaryTarget: record.PrimaryTarget,
		Fingerprint:   record.Fingerprint,
		CreatedAt:     formatTimestamp(record.CreatedAt),
	}
}

func formatTimestamp(value *timestamppb.Timestamp) string {
	if value == nil {
		return ""
	}
	return value.AsTime().UTC().Format(time.RFC3339)
}
