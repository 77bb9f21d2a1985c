// Package main starts the spellbook gRPC service process lifecycle.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	spellbookcmd "github.com/Steffo99/royalspells/internal/cmd/spellbook"
	entrypoint "github.com/Steffo99/royalspells/internal/platform/cmd"
)

func main() {
	cfg, err := spellbookcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[SPELLBOOK] ")
	ctx, stop := entrypoint.SignalContext(context.Background())
	defer stop()

	if err := spellbookcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
