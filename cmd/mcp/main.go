// Package main starts the MCP adapter process lifecycle.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	mcpcmd "github.com/Steffo99/royalspells/internal/cmd/mcp"
	entrypoint "github.com/Steffo99/royalspells/internal/platform/cmd"
)

// main starts the MCP server on stdio.
func main() {
	cfg, err := mcpcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[MCP] ")

	ctx, stop := entrypoint.SignalContext(context.Background())
	defer stop()

	if err := mcpcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve MCP: %v", err)
	}
}
