// Package spellbook parses spellbook service flags and launches the service.
package spellbook

import (
	"context"
	"flag"

	entrypoint "github.com/Steffo99/royalspells/internal/platform/cmd"
	server "github.com/Steffo99/royalspells/internal/services/spellbook/app"
)

// Config holds spellbook command configuration.
type Config struct {
	Port   int    `env:"ROYALSPELLS_SPELLBOOK_PORT" envDefault:"8095"`
	DBPath string `env:"ROYALSPELLS_SPELLBOOK_DB_PATH" envDefault:"data/spellbook.db"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The spellbook gRPC server port")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the spellbook SQLite database")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the spellbook gRPC API service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSpellbook, func(ctx context.Context) error {
		return server.Run(ctx, cfg.Port, cfg.DBPath)
	})
}
