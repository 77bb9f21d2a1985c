// Package main prints procedurally generated spells.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	spellgencmd "github.com/Steffo99/royalspells/internal/cmd/spellgen"
	entrypoint "github.com/Steffo99/royalspells/internal/platform/cmd"
	"github.com/Steffo99/royalspells/internal/platform/config"
)

func main() {
	log.SetPrefix("[SPELLGEN] ")
	cfg, err := spellgencmd.ParseConfig(flag.CommandLine, os.Args[1:])
	config.ExitIf(err, "parse flags")

	ctx, stop := entrypoint.SignalContext(context.Background())
	defer stop()

	if err := spellgencmd.Run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		stop()
		config.Exitf("spellgen: %v", err)
	}
}
