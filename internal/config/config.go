// Package config loads the layered missionmap configuration using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the resolved missionmap settings with full precedence:
// CLI flags > MISSIONMAP_ env vars > project config > global config >
// defaults. Flags are overlaid by the command layer.
type Config struct {
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`

	// Telemetry enables OpenTelemetry export; off unless opted in
	Telemetry bool `mapstructure:"telemetry" yaml:"telemetry"`

	// TemplatesDir points at a directory of phase and task template
	// overrides layered over the embedded registries
	TemplatesDir string `mapstructure:"templates_dir" yaml:"templates_dir"`

	// ProfilesFile points at a resource profile registry override
	ProfilesFile string `mapstructure:"profiles_file" yaml:"profiles_file"`

	// WeightsFile points at a scoring weights override
	WeightsFile string `mapstructure:"weights_file" yaml:"weights_file"`

	OutputFormat string `mapstructure:"output_format" yaml:"output_format"`

	// PlanFile is the default mission document path
	PlanFile string `mapstructure:"plan_file" yaml:"plan_file"`
}

// configKeys lists every setting; each gets a default and an explicit
// env binding so bools parse correctly from the environment
var configKeys = []string{
	"log_level",
	"log_format",
	"telemetry",
	"templates_dir",
	"profiles_file",
	"weights_file",
	"output_format",
	"plan_file",
}

// Default returns the built-in settings used when nothing overrides them
func Default() Config {
	return Config{
		LogLevel:     "info",
		LogFormat:    "text",
		Telemetry:    false,
		OutputFormat: "yaml",
		PlanFile:     "mission.yaml",
	}
}

// Load resolves the configuration. When explicit is non-empty only that
// file is read; otherwise the global config is read first and the
// project config merged on top. Missing files are fine, defaults apply.
func Load(explicit string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	setDefaults(v)

	v.SetEnvPrefix("MISSIONMAP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for _, key := range configKeys {
		env := "MISSIONMAP_" + strings.ToUpper(key)
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	if explicit != "" {
		v.SetConfigFile(explicit)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", explicit, err)
		}
	} else {
		if fileExists(GlobalPath()) {
			v.SetConfigFile(GlobalPath())
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("reading global config: %w", err)
			}
		}
		if fileExists(ProjectPath()) {
			v.SetConfigFile(ProjectPath())
			if err := v.MergeInConfig(); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the enumerated settings
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q: must be debug, info, warn or error", c.LogLevel)
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log_format %q: must be text or json", c.LogFormat)
	}

	switch c.OutputFormat {
	case "yaml", "json":
	default:
		return fmt.Errorf("invalid output_format %q: must be yaml or json", c.OutputFormat)
	}
	return nil
}

// GlobalPath returns the per-user config path ~/.missionmap/config.yaml
func GlobalPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".missionmap", "config.yaml")
}

// ProjectPath returns the project-local config path
func ProjectPath() string {
	return ".missionmap.yaml"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("telemetry", false)
	v.SetDefault("templates_dir", "")
	v.SetDefault("profiles_file", "")
	v.SetDefault("weights_file", "")
	v.SetDefault("output_format", "yaml")
	v.SetDefault("plan_file", "mission.yaml")
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
