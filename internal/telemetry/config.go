package telemetry

import "os"

// Config holds the exporter settings shared by traces and metrics
type Config struct {
	ServiceName    string
	ServiceVersion string

	// Environment is the deployment environment (development, production)
	Environment string

	// Enabled gates all export; when false both providers are noops
	Enabled bool

	// Endpoint is the OTLP HTTP collector endpoint. Empty means nothing
	// is exported even when Enabled is true.
	Endpoint string

	// SampleRate is the fraction of traces sampled, 1.0 samples all
	SampleRate float64
}

// DefaultConfig returns the disabled default. Telemetry is opt-in for
// the CLI.
func DefaultConfig() Config {
	return Config{
		ServiceName:    "missionmap",
		ServiceVersion: "dev",
		Environment:    "development",
		Enabled:        false,
		Endpoint:       "",
		SampleRate:     1.0,
	}
}

// FromEnvironment derives a config from the process environment.
// Enabled comes from the caller (flag or config file opt-in);
// MISSIONMAP_OTLP_ENDPOINT selects the collector.
func FromEnvironment(enabled bool, version string) Config {
	cfg := DefaultConfig()
	cfg.Enabled = enabled
	if version != "" {
		cfg.ServiceVersion = version
	}
	if endpoint := os.Getenv("MISSIONMAP_OTLP_ENDPOINT"); endpoint != "" {
		cfg.Endpoint = endpoint
	}
	if env := os.Getenv("MISSIONMAP_ENVIRONMENT"); env != "" {
		cfg.Environment = env
	}
	return cfg
}
