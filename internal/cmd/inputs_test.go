package cmd

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/missionmap/internal/config"
	"github.com/felixgeelhaar/missionmap/internal/errors"
	"github.com/felixgeelhaar/missionmap/internal/mission"
)

func TestResolveInputPathsFlagWins(t *testing.T) {
	saved := settings
	settings = &config.Config{
		TemplatesDir: "cfg-templates",
		ProfilesFile: "cfg-profiles.yaml",
		WeightsFile:  "cfg-weights.yaml",
	}
	defer func() { settings = saved }()

	paths := resolveInputPaths("", "", "")
	if paths.TemplatesDir != "cfg-templates" || paths.ProfilesFile != "cfg-profiles.yaml" {
		t.Errorf("settings should fill unset flags, got %+v", paths)
	}

	paths = resolveInputPaths("flag-templates", "", "flag-weights.yaml")
	if paths.TemplatesDir != "flag-templates" {
		t.Errorf("TemplatesDir = %q, want flag value", paths.TemplatesDir)
	}
	if paths.ProfilesFile != "cfg-profiles.yaml" {
		t.Errorf("ProfilesFile = %q, want configured value", paths.ProfilesFile)
	}
	if paths.WeightsFile != "flag-weights.yaml" {
		t.Errorf("WeightsFile = %q, want flag value", paths.WeightsFile)
	}
}

func TestResolveInputPathsWithoutSettings(t *testing.T) {
	saved := settings
	settings = nil
	defer func() { settings = saved }()

	paths := resolveInputPaths("", "my-profiles.yaml", "")
	if paths.TemplatesDir != "" {
		t.Errorf("TemplatesDir = %q, want empty", paths.TemplatesDir)
	}
	if paths.ProfilesFile != "my-profiles.yaml" {
		t.Errorf("ProfilesFile = %q", paths.ProfilesFile)
	}
}

func TestLoadInputsDefaults(t *testing.T) {
	in, err := loadInputs(inputPaths{})
	if err != nil {
		t.Fatalf("loadInputs() error = %v", err)
	}

	if in.PhaseRegistry == nil || len(in.PhaseRegistry.Domains) == 0 {
		t.Error("expected embedded phase templates")
	}
	if in.TaskRegistry == nil || len(in.TaskRegistry.PhaseTypes) == 0 {
		t.Error("expected embedded task templates")
	}
	if in.Profiles == nil || len(in.Profiles.Profiles) == 0 {
		t.Error("expected embedded resource profiles")
	}
	if in.Weights != mission.DefaultWeights() {
		t.Errorf("Weights = %+v, want defaults", in.Weights)
	}
}

func TestLoadInputsMissingProfilesFile(t *testing.T) {
	_, err := loadInputs(inputPaths{ProfilesFile: filepath.Join(t.TempDir(), "absent.yaml")})
	if err == nil {
		t.Fatal("expected an error for an explicit missing profiles file")
	}

	var merr *errors.MissionError
	if !stderrors.As(err, &merr) {
		t.Fatalf("error is %T", err)
	}
	if merr.Code != errors.ErrCodeFileNotFound {
		t.Errorf("Code = %s, want %s", merr.Code, errors.ErrCodeFileNotFound)
	}
}

func TestLoadScoringWeights(t *testing.T) {
	weights, err := loadScoringWeights("")
	if err != nil {
		t.Fatalf("loadScoringWeights(\"\") error = %v", err)
	}
	if weights != mission.DefaultWeights() {
		t.Errorf("empty path should yield defaults, got %+v", weights)
	}

	path := filepath.Join(t.TempDir(), "weights.yaml")
	if err := os.WriteFile(path, []byte("continuity: 20\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	weights, err = loadScoringWeights(path)
	if err != nil {
		t.Fatalf("loadScoringWeights(override) error = %v", err)
	}
	if weights.Continuity != 20 {
		t.Errorf("Continuity = %d, want 20", weights.Continuity)
	}
	if weights.Specialization != mission.DefaultWeights().Specialization {
		t.Error("unset fields should keep their defaults")
	}
}

func TestLoadScoringWeightsMissingFile(t *testing.T) {
	_, err := loadScoringWeights(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("an explicitly named weights file must exist")
	}

	var merr *errors.MissionError
	if !stderrors.As(err, &merr) {
		t.Fatalf("error is %T", err)
	}
	if merr.Code != errors.ErrCodeFileNotFound {
		t.Errorf("Code = %s, want %s", merr.Code, errors.ErrCodeFileNotFound)
	}
}
