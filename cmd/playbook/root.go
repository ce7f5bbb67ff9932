package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	llmprovider "github.com/haowjy/meridian-playbook"
	"github.com/haowjy/meridian-playbook/internal/config"
	"github.com/haowjy/meridian-playbook/internal/logging"
	"github.com/haowjy/meridian-playbook/providers"
	"github.com/haowjy/meridian-playbook/techniques"
)

// app carries state shared by the commands of one invocation.
type app struct {
	stdout     io.Writer
	stderr     io.Writer
	configFile string
	cfg        *config.Config
	logger     *slog.Logger
	registry   *llmprovider.Registry
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	rootCmd := &cobra.Command{
		Use:   "playbook",
		Short: "Prompt Engineering Playbook",
		Long: `Playbook runs twenty prompting techniques (zero-shot, chain-of-thought,
self-consistency, ReAct, tree-of-thought, ...) against an interchangeable
text-generation backend.

The default backend is "dummy", which needs no credentials and echoes a
truncated copy of each prompt. Real backends read their API key from the
environment; run "playbook backends" to see what is configured.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              cobra.NoArgs,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default $XDG_CONFIG_HOME/playbook/config.yaml, then .playbook.yaml)")
	flags.String("provider", "dummy", "backend: dummy|lorem|anthropic|bedrock|openai|gemini|mistral|cohere|openrouter")
	flags.String("model", "", "model name for the selected backend (default from backends.yaml)")
	flags.Float64("temperature", 0.2, "sampling temperature (0.0..1.0)")
	flags.String("technique", "all", "'all' or a number 1..20")
	flags.Int("concurrency", 1, "techniques to run in parallel")
	flags.Int("fanout", 1, "parallel calls inside vote and branch techniques")
	flags.String("log-level", "warn", "log level: debug|info|warn|error")
	flags.String("log-format", "text", "log format: text|json")

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newBackendsCmd(a))
	return rootCmd
}

// setup loads .env, configuration, logging and backend metadata. Every
// failure here is reported before any generation call.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if _, err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg, err := config.Load(config.Options{ConfigFile: a.configFile, Flags: cmd.Flags()})
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}, a.stderr)
	if err != nil {
		return err
	}
	a.logger = logger

	if cfg.Backends.File != "" {
		if err := llmprovider.LoadBackendSpecsFromFile(cfg.Backends.File); err != nil {
			return fmt.Errorf("loading backends file: %w", err)
		}
	}

	a.registry = providers.NewDefaultRegistry(providers.Options{Disabled: cfg.Backends.Disabled})
	return nil
}

// run resolves backend and selector, then prints every report. Technique
// failures are printed and do not fail the command.
func (a *app) run(ctx context.Context) error {
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	sel, err := techniques.ParseSelector(a.cfg.Technique)
	if err != nil {
		return err
	}
	provider, err := a.registry.Resolve(a.cfg.Provider)
	if err != nil {
		return err
	}

	logger := a.logger.With("run_id", uuid.NewString())
	inv := llmprovider.Bind(provider, a.cfg.Model, a.cfg.Temperature, llmprovider.WithLogger(logger))
	logger.Info("starting run",
		"provider", provider.Name(), "model", a.cfg.Model, "temperature", a.cfg.Temperature,
		"technique", sel.String(), "concurrency", a.cfg.Concurrency, "fanout", a.cfg.Fanout)

	reports, err := techniques.RunSelected(ctx, inv, sel,
		techniques.WithConcurrency(a.cfg.Concurrency),
		techniques.WithFanout(a.cfg.Fanout),
		techniques.WithRunLogger(logger),
	)
	if err != nil {
		return err
	}
	return techniques.WriteReports(a.stdout, reports, sel.All())
}
