// Package cmd implements the missionmap command tree: analysis,
// generation, validation, inspection and review of mission documents.
package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/missionmap/internal/config"
	"github.com/felixgeelhaar/missionmap/internal/errors"
	"github.com/felixgeelhaar/missionmap/internal/log"
	"github.com/felixgeelhaar/missionmap/internal/telemetry"
	"github.com/felixgeelhaar/missionmap/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "missionmap",
	Short: "Deterministic project decomposition and mission planning",
	Long: `missionmap turns a project description into a reviewable mission plan.
It classifies the project, decomposes it into a phase graph, expands the
phases into tasks with paired verification tasks, assigns resource profiles
and schedules everything into a fingerprinted mission document.

The pipeline is deterministic: the same description, templates, profiles
and weights always produce the same plan.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupRuntime,
	PersistentPostRun: teardownRuntime,
}

var (
	cfgFile     string
	logLevel    string
	logFormat   string
	noTelemetry bool

	// settings holds the configuration resolved by setupRuntime for the
	// lifetime of the running command
	settings *config.Config
)

// ExecuteContext runs the root command with the given context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// setupRuntime resolves configuration, installs the process logger and
// starts telemetry before any subcommand runs. Command-line flags win
// over environment variables and configuration files.
func setupRuntime(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return errors.NewSettingsError("could not load settings", err)
	}

	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.LogFormat = logFormat
	}
	if noTelemetry {
		cfg.Telemetry = false
	}

	if err := cfg.Validate(); err != nil {
		return errors.NewSettingsError("could not apply flag overrides", err)
	}

	logger := log.New(log.Config{
		Level:          log.ParseLevel(cfg.LogLevel),
		Format:         log.ParseFormat(cfg.LogFormat),
		Output:         log.OutputStderr(),
		ServiceName:    "missionmap",
		ServiceVersion: version.Version,
	})
	log.SetDefaultLogger(logger)

	tcfg := telemetry.FromEnvironment(cfg.Telemetry, version.Version)
	if _, err := telemetry.InitProvider(cmd.Context(), tcfg); err != nil {
		logger.Warn("telemetry tracing unavailable", "error", err)
	}
	if _, err := telemetry.InitMetricsProvider(cmd.Context(), tcfg); err != nil {
		logger.Warn("telemetry metrics unavailable", "error", err)
	}

	settings = cfg
	return nil
}

// teardownRuntime flushes telemetry after the subcommand returns
func teardownRuntime(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := telemetry.Shutdown(ctx); err != nil {
		log.DefaultLogger().Debug("telemetry shutdown failed", "error", err)
	}
}

// instrument wraps a command handler with a span and an invocation metric
func instrument(name string, run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, span := telemetry.StartCommandSpan(cmd.Context(), name)
		defer span.End()
		cmd.SetContext(ctx)

		start := time.Now()
		err := run(cmd, args)
		telemetry.RecordCommand(ctx, name, time.Since(start), err)

		if err != nil {
			telemetry.RecordError(span, err)
			return err
		}
		telemetry.RecordSuccess(span)
		return nil
	}
}

// currentSettings returns the configuration resolved for this run
func currentSettings() *config.Config {
	if settings != nil {
		return settings
	}
	cfg := config.Default()
	return &cfg
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.missionmap/config.yaml then .missionmap.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (text, json)")
	rootCmd.PersistentFlags().BoolVar(&noTelemetry, "no-telemetry", false, "disable OpenTelemetry tracing and metrics")
}
