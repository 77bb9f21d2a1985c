package migrations

import "embed"

// FS contains embedded SQLite migrations for spellbook storage.
//
//go:embed *.sql
var FS embed.FS
