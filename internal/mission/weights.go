package mission

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/missionmap/internal/errors"
)

// Weights tunes the resource assignment scoring. Overrides load on top
// of DefaultWeights, so a weights file only needs the fields it changes.
type Weights struct {
	// Specialization applies when a profile specialization tag appears
	// in the task text
	Specialization int `yaml:"specialization" json:"specialization"`

	// Complexity terms grade the task against the profile's band
	ComplexityInRange int `yaml:"complexity_in_range" json:"complexity_in_range"`
	ComplexityBelow   int `yaml:"complexity_below" json:"complexity_below"`
	ComplexityAbove   int `yaml:"complexity_above" json:"complexity_above"`

	// VerificationMatch applies to verification tasks scored against a
	// profile with verification expertise
	VerificationMatch int `yaml:"verification_match" json:"verification_match"`

	// WorkloadPerSlot multiplies the profile's free capacity;
	// OverloadPenalty replaces it once the profile is at capacity
	WorkloadPerSlot int `yaml:"workload_per_slot" json:"workload_per_slot"`
	OverloadPenalty int `yaml:"overload_penalty" json:"overload_penalty"`

	// Continuity applies when the task's paired counterpart already
	// went to the profile
	Continuity int `yaml:"continuity" json:"continuity"`
}

// DefaultWeights returns the built-in scoring weights
func DefaultWeights() Weights {
	return Weights{
		Specialization:    10,
		ComplexityInRange: 8,
		ComplexityBelow:   4,
		ComplexityAbove:   -5,
		VerificationMatch: 9,
		WorkloadPerSlot:   2,
		OverloadPenalty:   -10,
		Continuity:        15,
	}
}

// Validate checks the weight signs: bonus terms must not be negative,
// penalty terms must not be positive
func (w Weights) Validate() error {
	if w.Specialization < 0 || w.ComplexityInRange < 0 || w.ComplexityBelow < 0 ||
		w.VerificationMatch < 0 || w.WorkloadPerSlot < 0 || w.Continuity < 0 {
		return errors.NewWeightsInvalidError("bonus weights cannot be negative")
	}
	if w.ComplexityAbove > 0 || w.OverloadPenalty > 0 {
		return errors.NewWeightsInvalidError("penalty weights cannot be positive")
	}
	return nil
}

// LoadWeights reads a weights override file on top of the defaults. A
// missing file is not an error and yields the defaults unchanged.
func LoadWeights(path string) (Weights, error) {
	weights := DefaultWeights()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return weights, nil
		}
		return weights, errors.Wrap(errors.ErrCodeFileReadFailed,
			"failed to read weights file: "+path, err)
	}

	if err := yaml.Unmarshal(data, &weights); err != nil {
		return DefaultWeights(), errors.NewFileUnmarshalError(path, "YAML", err)
	}
	if err := weights.Validate(); err != nil {
		return DefaultWeights(), err
	}
	return weights, nil
}
