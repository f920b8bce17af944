package cmd

import (
	"os"

	"github.com/felixgeelhaar/missionmap/internal/errors"
	"github.com/felixgeelhaar/missionmap/internal/mission"
	"github.com/felixgeelhaar/missionmap/internal/planfile"
	"github.com/felixgeelhaar/missionmap/internal/profiles"
	"github.com/felixgeelhaar/missionmap/internal/templates"
)

// inputPaths names the override locations for one invocation. Empty
// fields fall back to the embedded registries and default weights.
type inputPaths struct {
	TemplatesDir string
	ProfilesFile string
	WeightsFile  string
}

// resolveInputPaths blends command flags with configured settings; a
// non-empty flag wins
func resolveInputPaths(templatesDir, profilesFile, weightsFile string) inputPaths {
	cfg := currentSettings()
	paths := inputPaths{
		TemplatesDir: cfg.TemplatesDir,
		ProfilesFile: cfg.ProfilesFile,
		WeightsFile:  cfg.WeightsFile,
	}

	if templatesDir != "" {
		paths.TemplatesDir = templatesDir
	}
	if profilesFile != "" {
		paths.ProfilesFile = profilesFile
	}
	if weightsFile != "" {
		paths.WeightsFile = weightsFile
	}
	return paths
}

// loadInputs resolves every generation input except the analysis:
// template registries, resource profiles and scoring weights
func loadInputs(paths inputPaths) (planfile.Inputs, error) {
	var in planfile.Inputs

	repo := templates.NewFileRepository(paths.TemplatesDir)
	phaseRegistry, err := repo.PhaseRegistry()
	if err != nil {
		return in, err
	}
	taskRegistry, err := repo.TaskRegistry()
	if err != nil {
		return in, err
	}

	profileRegistry, err := loadProfileRegistry(paths.ProfilesFile)
	if err != nil {
		return in, err
	}

	weights, err := loadScoringWeights(paths.WeightsFile)
	if err != nil {
		return in, err
	}

	in.PhaseRegistry = phaseRegistry
	in.TaskRegistry = taskRegistry
	in.Profiles = profileRegistry
	in.Weights = weights
	return in, nil
}

func loadProfileRegistry(path string) (*profiles.Registry, error) {
	if path == "" {
		return profiles.LoadRegistry()
	}
	return profiles.LoadRegistryFromFile(path)
}

// loadScoringWeights reads a weights override. LoadWeights tolerates a
// missing file, but a path the user named explicitly must exist.
func loadScoringWeights(path string) (mission.Weights, error) {
	if path == "" {
		return mission.DefaultWeights(), nil
	}
	if _, err := os.Stat(path); err != nil {
		return mission.DefaultWeights(), errors.NewFileNotFoundError(path)
	}
	return mission.LoadWeights(path)
}
