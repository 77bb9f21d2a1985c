// Package mcp parses MCP command flags and starts the stdio adapter.
package mcp

import (
	"context"
	"flag"

	entrypoint "github.com/Steffo99/royalspells/internal/platform/cmd"
	mcpservice "github.com/Steffo99/royalspells/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	Addr string `env:"ROYALSPELLS_SPELLBOOK_ADDR" envDefault:"localhost:8095"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "spellbook server address")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP protocol adapter on stdio.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		return mcpservice.Run(ctx, mcpservice.Config{GRPCAddr: cfg.Addr})
	})
}
