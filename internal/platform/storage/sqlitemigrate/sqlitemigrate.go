// Package sqlitemigrate applies embedded SQL migrations to a SQLite database.
package sqlitemigrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
)

const (
	migrationTable = "schema_migrations"
	upMarker       = "-- +migrate Up"
	downMarker     = "-- +migrate Down"
)

// Migration is one embedded migration file.
type Migration struct {
	// Name is the key recorded once the migration is applied. It includes
	// the migration root when one is given.
	Name string
	// Up is the SQL run to apply the migration.
	Up string
}

// Load reads the *.sql files under root in lexical order.
func Load(migrationFS fs.FS, root string) ([]Migration, error) {
	readRoot := strings.TrimSpace(root)
	if readRoot == "" {
		readRoot = "."
	}

	entries, err := fs.ReadDir(migrationFS, readRoot)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	migrations := make([]Migration, 0, len(files))
	for _, file := range files {
		content, err := fs.ReadFile(migrationFS, path.Join(readRoot, file))
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", file, err)
		}
		name := file
		if readRoot != "." {
			name = path.Join(readRoot, file)
		}
		migrations = append(migrations, Migration{Name: name, Up: ExtractUpMigration(string(content))})
	}
	return migrations, nil
}

// ApplyMigrations runs every migration under migrationRoot that has not been
// recorded yet, each in its own transaction, and returns the names it applied.
func ApplyMigrations(ctx context.Context, sqlDB *sql.DB, migrationFS fs.FS, migrationRoot string) ([]string, error) {
	if sqlDB == nil {
		return nil, errors.New("sql db is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	migrations, err := Load(migrationFS, migrationRoot)
	if err != nil {
		return nil, err
	}

	createSQL := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
    name TEXT PRIMARY KEY,
    applied_at INTEGER NOT NULL
);
`, migrationTable)
	if _, err := sqlDB.ExecContext(ctx, createSQL); err != nil {
		return nil, fmt.Errorf("ensure migration table: %w", err)
	}

	var applied []string
	for _, m := range migrations {
		done, err := isApplied(ctx, sqlDB, m.Name)
		if err != nil {
			return applied, fmt.Errorf("check migration %s: %w", m.Name, err)
		}
		if done || strings.TrimSpace(m.Up) == "" {
			continue
		}
		if err := apply(ctx, sqlDB, m); err != nil {
			return applied, err
		}
		applied = append(applied, m.Name)
	}
	return applied, nil
}

func apply(ctx context.Context, sqlDB *sql.DB, m Migration) error {
	tx, err := sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration transaction %s: %w", m.Name, err)
	}

	if _, err := tx.ExecContext(ctx, m.Up); err != nil && !IsAlreadyExistsError(err) {
		_ = tx.Rollback()
		return fmt.Errorf("exec migration %s: %w", m.Name, err)
	}

	if _, err := tx.ExecContext(ctx,
		fmt.Sprintf("INSERT OR IGNORE INTO %s (name, applied_at) VALUES (?, ?)", migrationTable),
		m.Name,
		time.Now().UTC().UnixMilli(),
	); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("record migration %s: %w", m.Name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %s: %w", m.Name, err)
	}
	return nil
}

// ExtractUpMigration returns the SQL in the -- +migrate Up section. Files
// without markers are returned whole.
func ExtractUpMigration(content string) string {
	upIdx := strings.Index(content, upMarker)
	if upIdx == -1 {
		return content
	}
	body := content[upIdx+len(upMarker):]
	if downIdx := strings.Index(body, downMarker); downIdx != -1 {
		return body[:downIdx]
	}
	return body
}

// IsAlreadyExistsError reports whether err indicates idempotent DDL success.
func IsAlreadyExistsError(err error) bool {
	if err == nil {
		return false
	}
	value := strings.ToLower(err.Error())
	return strings.Contains(value, "already exists") || strings.Contains(value, "duplicate column name")
}

func isApplied(ctx context.Context, sqlDB *sql.DB, name string) (bool, error) {
	var found int
	err := sqlDB.QueryRowContext(ctx, "SELECT 1 FROM "+migrationTable+" WHERE name = ?", name).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
