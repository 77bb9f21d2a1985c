// Package sqlite provides a SQLite-backed spellbook storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Steffo99/royalspells/internal/platform/grpc/pagination"
	sqlitemigrate "github.com/Steffo99/royalspells/internal/platform/storage/sqlitemigrate"
	"github.com/Steffo99/royalspells/internal/services/spellbook/storage"
	"github.com/Steffo99/royalspells/internal/services/spellbook/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

const spellColumns = `id, name, seed, effect_count, cost, primary_target, fingerprint, snapshot_json, created_at`

// Store persists spell records in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite spellbook store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlitemigrate.ApplyMigrations(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutSpell inserts one spell record.
func (s *Store) PutSpell(ctx context.Context, record storage.SpellRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	id := strings.TrimSpace(record.ID)
	if id == "" {
		return fmt.Errorf("spell id is required")
	}
	if record.EffectCount < 0 {
		return fmt.Errorf("effect count must not be negative")
	}
	if strings.TrimSpace(record.Fingerprint) == "" {
		return fmt.Errorf("fingerprint is required")
	}
	if len(record.Snapshot) == 0 {
		return fmt.Errorf("snapshot is required")
	}
	createdAt := record.CreatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO spells (`+spellColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		strings.TrimSpace(record.Name),
		record.Seed,
		record.EffectCount,
		record.Cost,
		record.PrimaryTarget,
		record.Fingerprint,
		record.Snapshot,
		toMillis(createdAt),
	)
	if err != nil {
		if isSpellUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("put spell: %w", err)
	}
	return nil
}

// GetSpell returns one spell record by ID.
func (s *Store) GetSpell(ctx context.Context, id string) (storage.SpellRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.SpellRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.SpellRecord{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.SpellRecord{}, fmt.Errorf("spell id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+spellColumns+` FROM spells WHERE id = ?`, id)
	record, err := scanSpell(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.SpellRecord{}, storage.ErrNotFound
		}
		return storage.SpellRecord{}, fmt.Errorf("get spell: %w", err)
	}
	return record, nil
}

// ListSpells returns one page of spell records ordered by creation time, then
// ID.
func (s *Store) ListSpells(ctx context.Context, pageSize int, pageToken string, target string) (storage.SpellPage, error) {
	if err := ctx.Err(); err != nil {
		return storage.SpellPage{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.SpellPage{}, fmt.Errorf("storage is not configured")
	}
	if pageSize <= 0 {
		return storage.SpellPage{}, fmt.Errorf("page size must be greater than zero")
	}
	cursor, hasCursor, err := pagination.DecodeCursor(pageToken)
	if err != nil {
		return storage.SpellPage{}, fmt.Errorf("list spells: %w", err)
	}

	var (
		where []string
		args  []any
	)
	if target = strings.TrimSpace(target); target != "" {
		where = append(where, "primary_target = ?")
		args = append(args, target)
	}
	if hasCursor {
		where = append(where, "(created_at > ? OR (created_at = ? AND id > ?))")
		args = append(args, cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}
	query := `SELECT ` + spellColumns + ` FROM spells`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at ASC, id ASC LIMIT ?`
	args = append(args, pageSize+1)

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return storage.SpellPage{}, fmt.Errorf("list spells: %w", err)
	}
	defer rows.Close()

	page := storage.SpellPage{
		Spells: make([]storage.SpellRecord, 0, pageSize),
	}
	for rows.Next() {
		record, err := scanSpell(rows)
		if err != nil {
			return storage.SpellPage{}, fmt.Errorf("list spells: %w", err)
		}
		page.Spells = append(page.Spells, record)
	}
	if err := rows.Err(); err != nil {
		return storage.SpellPage{}, fmt.Errorf("list spells: %w", err)
	}
	if len(page.Spells) > pageSize {
		last := page.Spells[pageSize-1]
		page.NextPageToken = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: toMillis(last.CreatedAt),
			ID:        last.ID,
		})
		page.Spells = page.Spells[:pageSize]
	}
	return page, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSpell(row rowScanner) (storage.SpellRecord, error) {
	var record storage.SpellRecord
	var createdAt int64
	if err := row.Scan(
		&record.ID,
		&record.Name,
		&record.Seed,
		&record.EffectCount,
		&record.Cost,
		&record.PrimaryTarget,
		&record.Fingerprint,
		&record.Snapshot,
		&createdAt,
	); err != nil {
		return storage.SpellRecord{}, err
	}
	record.CreatedAt = fromMillis(createdAt)
	return record, nil
}

func isSpellUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed") &&
		strings.Contains(message, "spells.id")
}

var _ storage.SpellStore = (*Store)(nil)
