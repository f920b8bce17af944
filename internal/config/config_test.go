package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// isolate pins HOME and the working directory to temp directories so
// tests never see a developer's real config files
func isolate(t *testing.T) (home, project string) {
	t.Helper()
	home = t.TempDir()
	project = t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(project)
	return home, project
}

func writeGlobal(t *testing.T, home, content string) {
	t.Helper()
	dir := filepath.Join(home, ".missionmap")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "text", cfg.LogFormat)
	require.False(t, cfg.Telemetry)
	require.Empty(t, cfg.TemplatesDir)
	require.Empty(t, cfg.ProfilesFile)
	require.Empty(t, cfg.WeightsFile)
	require.Equal(t, "yaml", cfg.OutputFormat)
	require.Equal(t, "mission.yaml", cfg.PlanFile)

	def := Default()
	require.Equal(t, def, *cfg)
}

func TestLoadGlobalConfig(t *testing.T) {
	home, _ := isolate(t)
	writeGlobal(t, home, "log_level: debug\nplan_file: plans/mission.yaml\n")

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "plans/mission.yaml", cfg.PlanFile)
	require.Equal(t, "text", cfg.LogFormat)
}

func TestLoadProjectOverridesGlobal(t *testing.T) {
	home, project := isolate(t)
	writeGlobal(t, home, "log_level: debug\nplan_file: global.yaml\n")
	require.NoError(t, os.WriteFile(
		filepath.Join(project, ".missionmap.yaml"),
		[]byte("plan_file: project.yaml\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "project.yaml", cfg.PlanFile)
}

func TestLoadExplicitFile(t *testing.T) {
	home, _ := isolate(t)
	writeGlobal(t, home, "log_level: debug\n")

	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_format: json\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "json", cfg.OutputFormat)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoadExplicitFileMissing(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	home, _ := isolate(t)
	writeGlobal(t, home, "log_level: debug\n")
	t.Setenv("MISSIONMAP_LOG_LEVEL", "warn")
	t.Setenv("MISSIONMAP_TELEMETRY", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "warn", cfg.LogLevel)
	require.True(t, cfg.Telemetry)
}

func TestLoadMalformedConfig(t *testing.T) {
	_, project := isolate(t)
	require.NoError(t, os.WriteFile(
		filepath.Join(project, ".missionmap.yaml"),
		[]byte("log_level: [broken"), 0o644))

	_, err := Load("")
	require.Error(t, err)
}

func TestLoadInvalidSetting(t *testing.T) {
	_, project := isolate(t)
	require.NoError(t, os.WriteFile(
		filepath.Join(project, ".missionmap.yaml"),
		[]byte("log_level: verbose\n"), 0o644))

	_, err := Load("")
	require.Error(t, err)
	require.Contains(t, err.Error(), "log_level")
}

func TestValidate(t *testing.T) {
	valid := Config{LogLevel: "info", LogFormat: "text", OutputFormat: "yaml"}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.LogLevel = "trace" },
			wantErr: "log_level",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.LogFormat = "xml" },
			wantErr: "log_format",
		},
		{
			name:    "bad output format",
			mutate:  func(c *Config) { c.OutputFormat = "toml" },
			wantErr: "output_format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPaths(t *testing.T) {
	home, _ := isolate(t)

	require.True(t, strings.HasSuffix(GlobalPath(), filepath.Join(".missionmap", "config.yaml")))
	require.True(t, strings.HasPrefix(GlobalPath(), home))
	require.Equal(t, ".missionmap.yaml", ProjectPath())
}
