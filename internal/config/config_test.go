package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	llmprovider "github.com/haowjy/meridian-playbook"
)

// isolate points the user config dir and working directory at empty temp dirs.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	work := filepath.Join(dir, "work")
	if err := os.MkdirAll(work, 0o755); err != nil {
		t.Fatal(err)
	}
	t.Chdir(work)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("playbook", pflag.ContinueOnError)
	fs.String("provider", "dummy", "")
	fs.String("model", "", "")
	fs.Float64("temperature", 0.2, "")
	fs.String("technique", "all", "")
	fs.Int("concurrency", 1, "")
	fs.Int("fanout", 1, "")
	fs.String("log-level", "warn", "")
	fs.String("log-format", "text", "")
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(Options{Flags: newFlags()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Provider != "dummy" {
		t.Errorf("expected provider 'dummy', got %q", cfg.Provider)
	}
	if cfg.Temperature != 0.2 {
		t.Errorf("expected temperature 0.2, got %v", cfg.Temperature)
	}
	if cfg.Technique != "all" || cfg.Concurrency != 1 || cfg.Fanout != 1 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Log.Level != "warn" || cfg.Log.Format != "text" {
		t.Errorf("unexpected log defaults: %+v", cfg.Log)
	}
	if len(cfg.Backends.Disabled) != 0 {
		t.Errorf("expected no disabled backends, got %v", cfg.Backends.Disabled)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_Precedence(t *testing.T) {
	dir := isolate(t)

	writeFile(t, filepath.Join(dir, "xdg", "playbook", "config.yaml"), `
provider: openai
model: user-model
temperature: 0.9
log:
  level: info
`)
	writeFile(t, filepath.Join(dir, "work", ProjectConfigName), `
provider: gemini
backends:
  disabled: [cohere]
`)
	explicit := filepath.Join(dir, "explicit.yaml")
	writeFile(t, explicit, `
model: explicit-model
fanout: 3
`)
	t.Setenv("PLAYBOOK_TEMPERATURE", "0.5")
	t.Setenv("PLAYBOOK_LOG_FORMAT", "json")

	fs := newFlags()
	if err := fs.Parse([]string{"--technique", "7"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(Options{ConfigFile: explicit, Flags: fs})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"provider from project", cfg.Provider, "gemini"},
		{"model from explicit file", cfg.Model, "explicit-model"},
		{"temperature from env", cfg.Temperature, 0.5},
		{"technique from flag", cfg.Technique, "7"},
		{"fanout from explicit file", cfg.Fanout, 3},
		{"log level from user file", cfg.Log.Level, "info"},
		{"log format from env", cfg.Log.Format, "json"},
		{"concurrency default", cfg.Concurrency, 1},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
	if len(cfg.Backends.Disabled) != 1 || cfg.Backends.Disabled[0] != "cohere" {
		t.Errorf("disabled = %v", cfg.Backends.Disabled)
	}
}

func TestLoad_DisabledFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("PLAYBOOK_BACKENDS_DISABLED", "openai,mistral")

	cfg, err := Load(Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Backends.Disabled) != 2 || cfg.Backends.Disabled[1] != "mistral" {
		t.Errorf("disabled = %v", cfg.Backends.Disabled)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	dir := isolate(t)
	if _, err := Load(Options{ConfigFile: filepath.Join(dir, "nope.yaml")}); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	base := Config{Temperature: 0.2, Concurrency: 1, Fanout: 1}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"temperature too high", func(c *Config) { c.Temperature = 1.5 }},
		{"temperature negative", func(c *Config) { c.Temperature = -0.1 }},
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }},
		{"zero fanout", func(c *Config) { c.Fanout = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, llmprovider.ErrInvalidRequest) || !llmprovider.IsUsageError(err) {
				t.Errorf("Validate() = %v, want usage error", err)
			}
		})
	}
}
