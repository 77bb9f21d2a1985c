// Package spellgen parses spellgen flags and prints generated spells.
package spellgen

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Steffo99/royalspells/internal/core/random"
	"github.com/Steffo99/royalspells/internal/core/spell"
	entrypoint "github.com/Steffo99/royalspells/internal/platform/cmd"
	"github.com/Steffo99/royalspells/internal/platform/i18n/catalog"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

const maxCount = 1000

// Config holds spellgen command configuration.
type Config struct {
	Seed    string
	Count   int
	Effects int    `env:"ROYALSPELLS_SPELLGEN_EFFECTS" envDefault:"3"`
	Format  string `env:"ROYALSPELLS_SPELLGEN_FORMAT" envDefault:"json"`
	Locale  string `env:"ROYALSPELLS_SPELLGEN_LOCALE" envDefault:"en-US"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{Count: 1}
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Seed, "seed", cfg.Seed, "Seed to generate from; a fresh one is drawn when empty")
	fs.IntVar(&cfg.Count, "count", cfg.Count, "Number of spells; seeds after the first get a -N suffix")
	fs.IntVar(&cfg.Effects, "effects", cfg.Effects, "Number of effects per spell")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "Output format: json or text")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "Locale for text output")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks flag combinations that would fail at generation time.
func (c Config) Validate() error {
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	if c.Format != FormatJSON && c.Format != FormatText {
		return fmt.Errorf("format must be %s or %s, got %q", FormatJSON, FormatText, c.Format)
	}
	if c.Effects < 0 {
		return fmt.Errorf("effects must not be negative")
	}
	if c.Count < 1 || c.Count > maxCount {
		return fmt.Errorf("count must be between 1 and %d", maxCount)
	}
	return nil
}

// Run generates the configured spells and writes them to out. A drawn seed is
// reported on errOut so the run can be reproduced.
func Run(ctx context.Context, cfg Config, out, errOut io.Writer) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSpellgen, func(ctx context.Context) error {
		return run(ctx, cfg, random.NewSeed, out, errOut)
	})
}

func run(ctx context.Context, cfg Config, seeds func() (int64, error), out, errOut io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	printer, tag := catalog.Default().Printer(cfg.Locale)

	seed := cfg.Seed
	if strings.TrimSpace(seed) == "" {
		drawn, err := seeds()
		if err != nil {
			return fmt.Errorf("draw seed: %w", err)
		}
		seed = strconv.FormatInt(drawn, 10)
		printer.Fprintf(errOut, "spellgen.seed.drawn", seed)
		fmt.Fprintln(errOut)
	}

	spells, err := spell.GenerateBatch(ctx, batchSeeds(seed, cfg.Count), cfg.Effects)
	if err != nil {
		return fmt.Errorf("generate spells: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case FormatText:
		return renderText(out, printer, tag, spells)
	default:
		return renderJSON(out, spells)
	}
}

// batchSeeds returns seed followed by seed-2 through seed-count.
func batchSeeds(seed string, count int) []any {
	seeds := make([]any, 0, count)
	seeds = append(seeds, seed)
	for i := 2; i <= count; i++ {
		seeds = append(seeds, seed+"-"+strconv.Itoa(i))
	}
	return seeds
}
