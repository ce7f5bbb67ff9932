// Package config loads playbook settings from defaults, config files, the
// environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	llmprovider "github.com/haowjy/meridian-playbook"
)

// ProjectConfigName is the per-project config file looked up from the
// working directory upwards.
const ProjectConfigName = ".playbook.yaml"

// EnvPrefix prefixes every environment override (PLAYBOOK_PROVIDER, PLAYBOOK_LOG_LEVEL, ...).
const EnvPrefix = "PLAYBOOK"

// Config holds all settings for a playbook run.
type Config struct {
	Provider    string         `mapstructure:"provider"`
	Model       string         `mapstructure:"model"`
	Temperature float64        `mapstructure:"temperature"`
	Technique   string         `mapstructure:"technique"`
	Concurrency int            `mapstructure:"concurrency"`
	Fanout      int            `mapstructure:"fanout"`
	Log         LogConfig      `mapstructure:"log"`
	Backends    BackendsConfig `mapstructure:"backends"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// BackendsConfig holds backend overrides.
type BackendsConfig struct {
	// Disabled backends still resolve but fail every call as unavailable.
	Disabled []string `mapstructure:"disabled"`
	// File replaces the embedded backends.yaml.
	File string `mapstructure:"file"`
}

// Options controls where Load looks.
type Options struct {
	// ConfigFile is an explicit config file; it must exist.
	ConfigFile string
	// Flags are bound to their config keys. Only flags the user set
	// override lower layers.
	Flags *pflag.FlagSet
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"provider":    "provider",
	"model":       "model",
	"temperature": "temperature",
	"technique":   "technique",
	"concurrency": "concurrency",
	"fanout":      "fanout",
	"log-level":   "log.level",
	"log-format":  "log.format",
}

// Load resolves configuration.
// Precedence (highest to lowest):
// 1. Flags that were set
// 2. Environment variables (PLAYBOOK_*)
// 3. Explicit --config file
// 4. Project config (.playbook.yaml in current directory or parent)
// 5. User config ($XDG_CONFIG_HOME/playbook/config.yaml)
// 6. Built-in defaults
func Load(opts Options) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(getUserConfigDir())
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	if project := findProjectConfig(); project != "" {
		if err := mergeFile(v, project); err != nil {
			return nil, err
		}
	}

	if opts.ConfigFile != "" {
		if err := mergeFile(v, opts.ConfigFile); err != nil {
			return nil, err
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.Backends.File = os.ExpandEnv(cfg.Backends.File)
	return cfg, nil
}

// Validate reports settings that make a run impossible. Errors are usage
// errors (llmprovider.IsUsageError).
func (c *Config) Validate() error {
	if err := llmprovider.ValidateTemperature(c.Temperature); err != nil {
		return err
	}
	if c.Concurrency < 1 {
		return &llmprovider.ValidationError{
			Field: "concurrency", Value: c.Concurrency,
			Reason: "concurrency must be at least 1", Err: llmprovider.ErrInvalidRequest,
		}
	}
	if c.Fanout < 1 {
		return &llmprovider.ValidationError{
			Field: "fanout", Value: c.Fanout,
			Reason: "fanout must be at least 1", Err: llmprovider.ErrInvalidRequest,
		}
	}
	return nil
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

func mergeFile(v *viper.Viper, path string) error {
	fileViper := viper.New()
	fileViper.SetConfigFile(path)
	if err := fileViper.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config from %s: %w", path, err)
	}
	if err := v.MergeConfigMap(fileViper.AllSettings()); err != nil {
		return fmt.Errorf("merging config from %s: %w", path, err)
	}
	return nil
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("provider", "dummy")
	v.SetDefault("model", "")
	v.SetDefault("temperature", 0.2)
	v.SetDefault("technique", "all")
	v.SetDefault("concurrency", 1)
	v.SetDefault("fanout", 1)

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")

	v.SetDefault("backends.disabled", []string{})
	v.SetDefault("backends.file", "")
}

// getUserConfigDir returns the XDG config directory for the playbook.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "playbook")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "playbook")
	}
	return filepath.Join(home, ".config", "playbook")
}

// findProjectConfig searches for .playbook.yaml in the current directory and parents.
func findProjectConfig() string {
	return findUpwards(ProjectConfigName)
}

// findUpwards returns the first file called name found walking from the
// working directory to the filesystem root, or "".
func findUpwards(name string) string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
