package config

import (
	"errors"
	"strings"
	"testing"
)

type envTestConfig struct {
	Port int    `env:"ROYALSPELLS_TEST_PORT" envDefault:"123"`
	Mode string `env:"ROYALSPELLS_TEST_MODE" envDefault:"text"`
}

func (c *envTestConfig) Validate() error {
	if c.Mode != "text" && c.Mode != "json" {
		return errors.New("mode must be text or json")
	}
	return nil
}

type plainConfig struct {
	Name string `env:"ROYALSPELLS_TEST_NAME" envDefault:"spellbook"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("ROYALSPELLS_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseEnvValidates(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("ROYALSPELLS_TEST_MODE", "yaml")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "validate env:") {
		t.Fatalf("expected validate env prefix, got %v", err)
	}
}

func TestParseEnvMap(t *testing.T) {
	var cfg envTestConfig
	if err := ParseEnvMap(&cfg, map[string]string{"ROYALSPELLS_TEST_PORT": "9000", "ROYALSPELLS_TEST_MODE": "json"}); err != nil {
		t.Fatalf("parse env map: %v", err)
	}
	if cfg.Port != 9000 || cfg.Mode != "json" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestParseEnvWithoutValidator(t *testing.T) {
	var cfg plainConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Name != "spellbook" {
		t.Fatalf("expected default name, got %q", cfg.Name)
	}
}
