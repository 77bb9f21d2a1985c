package domain

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Steffo99/royalspells/internal/core/formula"
	"github.com/Steffo99/royalspells/internal/core/random"
	"github.com/Steffo99/royalspells/internal/core/spell"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// maxEffectCount bounds a single generate call.
	maxEffectCount = 100

	defaultSampleRolls = 1
	maxSampleRolls     = 100
)

// SeedFunc draws a fresh seed for calls that do not supply one.
type SeedFunc func() (int64, error)

// SpellGenerateInput represents the MCP tool input for generating a spell.
type SpellGenerateInput struct {
	Seed        string `json:"seed,omitempty" jsonschema:"seed for reproducible generation; a fresh one is drawn when empty"`
	EffectCount int    `json:"effect_count" jsonschema:"number of effects to generate"`
}

// SpellGenerateResult represents the MCP tool output for a generated spell.
type SpellGenerateResult struct {
	Spell SpellResult `json:"spell" jsonschema:"the generated spell"`
	Draws uint64      `json:"draws" jsonschema:"random draws consumed by generation"`
}

// FormulaSampleInput represents the MCP tool input for sampling a formula.
type FormulaSampleInput struct {
	Kind  string  `json:"kind" jsonschema:"formula kind: fixed, uniform or gaussian"`
	Value int     `json:"value,omitempty" jsonschema:"fixed value"`
	Min   float64 `json:"min,omitempty" jsonschema:"uniform lower bound"`
	Max   float64 `json:"max,omitempty" jsonschema:"uniform upper bound"`
	Mu    float64 `json:"mu,omitempty" jsonschema:"gaussian mean"`
	Sigma float64 `json:"sigma,omitempty" jsonschema:"gaussian standard deviation"`
	Seed  string  `json:"seed,omitempty" jsonschema:"seed for reproducible samples; a fresh one is drawn when empty"`
	Rolls int     `json:"rolls,omitempty" jsonschema:"number of samples, 1 to 100"`
}

// FormulaSampleResult represents the MCP tool output for formula samples.
type FormulaSampleResult struct {
	Formula FormulaResult `json:"formula" jsonschema:"the sampled formula"`
	Seed    string        `json:"seed" jsonschema:"seed that reproduces the samples"`
	Samples []int64       `json:"samples" jsonschema:"sampled values"`
	Total   int64         `json:"total" jsonschema:"sum of the samples, capped at the int64 maximum"`
}

// SpellGenerateTool defines the MCP tool schema for generating spells.
func SpellGenerateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "generate_spell",
		Description: "Generates a random spell from a seed without saving it",
	}
}

// FormulaSampleTool defines the MCP tool schema for sampling formulas.
func FormulaSampleTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "sample_formula",
		Description: "Rolls a damage or healing formula one or more times",
	}
}

// SpellGenerateHandler generates a spell locally.
func SpellGenerateHandler(seeds SeedFunc) mcp.ToolHandlerFor[SpellGenerateInput, SpellGenerateResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input SpellGenerateInput) (*mcp.CallToolResult, SpellGenerateResult, error) {
		if input.EffectCount > maxEffectCount {
			return nil, SpellGenerateResult{}, fmt.Errorf("effect count must not exceed %d", maxEffectCount)
		}
		seed, err := resolveSeed(seeds, input.Seed)
		if err != nil {
			return nil, SpellGenerateResult{}, fmt.Errorf("draw seed: %w", err)
		}

		generated, err := spell.Generate(seed, input.EffectCount)
		if err != nil {
			return nil, SpellGenerateResult{}, fmt.Errorf("generate spell: %w", err)
		}
		fingerprint, err := generated.Fingerprint()
		if err != nil {
			return nil, SpellGenerateResult{}, fmt.Errorf("fingerprint spell: %w", err)
		}
		snapshot := generated.Snapshot()
		return nil, SpellGenerateResult{
			Spell: spellResultFromSnapshot(&snapshot, fingerprint),
			Draws: generated.Draws(),
		}, nil
	}
}

// FormulaSampleHandler rolls a formula locally.
func FormulaSampleHandler(seeds SeedFunc) mcp.ToolHandlerFor[FormulaSampleInput, FormulaSampleResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input FormulaSampleInput) (*mcp.CallToolResult, FormulaSampleResult, error) {
		kind, err := formula.ParseKind(input.Kind)
		if err != nil {
			return nil, FormulaSampleResult{}, err
		}
		f, err := formula.New(formula.Params{
			Kind:  kind,
			Value: input.Value,
			Min:   input.Min,
			Max:   input.Max,
			Mu:    input.Mu,
			Sigma: input.Sigma,
		})
		if err != nil {
			return nil, FormulaSampleResult{}, err
		}
		seed, err := resolveSeed(seeds, input.Seed)
		if err != nil {
			return nil, FormulaSampleResult{}, fmt.Errorf("draw seed: %w", err)
		}

		rolls := input.Rolls
		if rolls <= 0 {
			rolls = defaultSampleRolls
		}
		rolls = min(rolls, maxSampleRolls)

		stream := random.NewStream(seed)
		result := FormulaSampleResult{
			Seed:    seed,
			Samples: make([]int64, 0, rolls),
		}
		for i := 0; i < rolls; i++ {
			sample := int64(f.Sample(stream))
			result.Samples = append(result.Samples, sample)
			result.Total = saturatingAdd(result.Total, sample)
		}
		snapshot := f.Snapshot()
		result.Formula = *formulaResultFromSnapshot(&snapshot)
		return nil, result, nil
	}
}

// saturatingAdd adds two non-negative values, capping at math.MaxInt64.
func saturatingAdd(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

func resolveSeed(seeds SeedFunc, seed string) (string, error) {
	// Whitespace-only seeds count as missing; any other seed is used verbatim.
	if strings.TrimSpace(seed) != "" {
		return seed, nil
	}
	if seeds == nil {
		seeds = random.NewSeed
	}
	drawn, err := seeds()
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(drawn, 10), nil
}
