package cmd

import (
	"context"
	"errors"
	"flag"
	"testing"
)

type testConfig struct {
	Address string `env:"ROYALSPELLS_CMD_TEST_ADDRESS" envDefault:"127.0.0.1:8080"`
	Effects int    `env:"ROYALSPELLS_CMD_TEST_EFFECTS" envDefault:"3"`
}

func TestParseConfigReadsEnvAndFlags(t *testing.T) {
	t.Setenv("ROYALSPELLS_CMD_TEST_ADDRESS", "env:9000")
	t.Setenv("ROYALSPELLS_CMD_TEST_EFFECTS", "5")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfgRef := testConfig{}
	if err := ParseConfig(&cfgRef); err != nil {
		t.Fatalf("load config defaults: %v", err)
	}
	fs.StringVar(&cfgRef.Address, "address", cfgRef.Address, "address")
	fs.IntVar(&cfgRef.Effects, "effects", cfgRef.Effects, "effects")

	if err := ParseArgs(fs, []string{"-address", "flag:9001"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if cfgRef.Address != "flag:9001" {
		t.Fatalf("expected flag value for address, got %q", cfgRef.Address)
	}
	if cfgRef.Effects != 5 {
		t.Fatalf("expected env effects, got %d", cfgRef.Effects)
	}
}

func TestParseConfigFromArgsReadsEnvAndFlags(t *testing.T) {
	t.Setenv("ROYALSPELLS_CMD_TEST_ADDRESS", "configarg:9000")

	cfgRef := testConfig{}
	fs := flag.NewFlagSet("configargs", flag.ContinueOnError)
	fs.IntVar(&cfgRef.Effects, "effects", 0, "effects")
	if err := ParseConfigFromArgs(&cfgRef, fs, []string{"-effects", "9"}); err != nil {
		t.Fatalf("parse config and args: %v", err)
	}
	if cfgRef.Effects != 9 {
		t.Fatalf("expected parsed flag effects, got %d", cfgRef.Effects)
	}
	if cfgRef.Address != "configarg:9000" {
		t.Fatalf("expected env address, got %q", cfgRef.Address)
	}
}

func TestParseConfigRejectsNil(t *testing.T) {
	if err := ParseConfig[testConfig](nil); err == nil {
		t.Fatal("expected nil config error")
	}
}

func TestParseArgsRejectsNilParser(t *testing.T) {
	if err := ParseArgs(nil, []string{}); err == nil {
		t.Fatal("expected parse args to reject nil parser")
	}
}

func TestRunWithTelemetryRejectsMissingInputs(t *testing.T) {
	if err := RunWithTelemetry(context.Background(), "", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected missing service error")
	}
	if err := RunWithTelemetry(context.Background(), ServiceSpellbook, nil); err == nil {
		t.Fatal("expected missing run function error")
	}
}

func TestRunWithTelemetryReturnsRunError(t *testing.T) {
	t.Setenv("ROYALSPELLS_OTEL_ENDPOINT", "")
	want := errors.New("run failed")
	err := RunWithTelemetry(context.Background(), ServiceSpellgen, func(context.Context) error { return want })
	if !errors.Is(err, want) {
		t.Fatalf("error = %v, want %v", err, want)
	}
}

func TestSignalContextCancels(t *testing.T) {
	ctx, cancel := SignalContext(context.Background())
	cancel()
	<-ctx.Done()
	if !errors.Is(ctx.Err(), context.Canceled) {
		t.Fatalf("ctx.Err() = %v", ctx.Err())
	}
}
