// Package integrity seals generated spells into storage records and checks
// that stored records still regenerate to the content they were saved with.
package integrity

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Steffo99/royalspells/internal/core/encoding"
	"github.com/Steffo99/royalspells/internal/core/spell"
	apperrors "github.com/Steffo99/royalspells/internal/platform/errors"
	"github.com/Steffo99/royalspells/internal/services/spellbook/storage"
)

// ErrFingerprintMismatch indicates a stored spell no longer regenerates to the
// content recorded when it was saved.
var ErrFingerprintMismatch = errors.New("spell fingerprint mismatch")

// ErrNotReproducible indicates a spell that carries no string seed and so
// cannot be regenerated from a record.
var ErrNotReproducible = errors.New("spell is not reproducible from a seed")

// Seal builds a storage record for s. Only spells generated from a string seed
// can be sealed, since the record's recipe must regenerate them.
func Seal(id, name string, s spell.Spell, createdAt time.Time) (storage.SpellRecord, error) {
	seed, ok := s.Seed().(string)
	if !ok || !s.OwnsStream() {
		return storage.SpellRecord{}, ErrNotReproducible
	}
	snapshot, err := encoding.CanonicalJSON(s.Snapshot())
	if err != nil {
		return storage.SpellRecord{}, fmt.Errorf("encode snapshot: %w", err)
	}
	fingerprint, err := s.Fingerprint()
	if err != nil {
		return storage.SpellRecord{}, fmt.Errorf("fingerprint spell: %w", err)
	}
	return storage.SpellRecord{
		ID:            id,
		Name:          name,
		Seed:          seed,
		EffectCount:   s.EffectCount(),
		Cost:          s.Cost(),
		PrimaryTarget: PrimaryTarget(s),
		Fingerprint:   fingerprint,
		Snapshot:      snapshot,
		CreatedAt:     createdAt.UTC(),
	}, nil
}

// PrimaryTarget is the target of a spell's first effect, or "" for a spell
// without effects.
func PrimaryTarget(s spell.Spell) string {
	effects := s.Effects()
	if len(effects) == 0 {
		return ""
	}
	return effects[0].Target().String()
}

// Regenerate rebuilds the spell described by record's recipe.
func Regenerate(record storage.SpellRecord) (spell.Spell, error) {
	return spell.Generate(record.Seed, record.EffectCount)
}

// Verify regenerates record and compares fingerprints. On success it returns
// the regenerated spell.
func Verify(record storage.SpellRecord) (spell.Spell, error) {
	s, err := Regenerate(record)
	if err != nil {
		return spell.Spell{}, fmt.Errorf("regenerate spell %s: %w", record.ID, err)
	}
	fingerprint, err := s.Fingerprint()
	if err != nil {
		return spell.Spell{}, fmt.Errorf("fingerprint spell %s: %w", record.ID, err)
	}
	if fingerprint != record.Fingerprint {
		return spell.Spell{}, apperrors.WrapWithMetadata(
			apperrors.CodeFingerprintMismatch,
			fmt.Sprintf("spell %s no longer regenerates to its stored content", record.ID),
			map[string]string{
				"id":           record.ID,
				"seed":         record.Seed,
				"effect_count": strconv.Itoa(record.EffectCount),
				"stored":       record.Fingerprint,
				"regenerated":  fingerprint,
			},
			ErrFingerprintMismatch,
		)
	}
	return s, nil
}
