// Package storage defines persistence contracts for saved spells.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates a requested spell record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a spell record with the same ID already exists.
	ErrAlreadyExists = errors.New("record already exists")
)

// SpellRecord stores one saved spell. Seed and EffectCount are the recipe and
// are authoritative; Snapshot is the canonical JSON rendering cached at save
// time and Fingerprint its content hash.
type SpellRecord struct {
	ID            string
	Name          string
	Seed          string
	EffectCount   int
	Cost          int
	PrimaryTarget string
	Fingerprint   string
	Snapshot      []byte
	CreatedAt     time.Time
}

// SpellPage stores one page of spell records.
type SpellPage struct {
	Spells        []SpellRecord
	NextPageToken string
}

// SpellStore persists spell records.
type SpellStore interface {
	PutSpell(ctx context.Context, record SpellRecord) error
	GetSpell(ctx context.Context, id string) (SpellRecord, error)
	// ListSpells returns records oldest first. An empty target lists every
	// record; otherwise only records whose primary target matches.
	ListSpells(ctx context.Context, pageSize int, pageToken string, target string) (SpellPage, error)
}
