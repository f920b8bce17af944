package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// PhaseID represents a unique identifier for a project phase.
// This is a value object that enforces valid ID formats.
type PhaseID string

var (
	// phaseIDPattern validates that the ID contains only alphanumeric characters and underscores
	// Must start with a letter, and can contain lowercase letters, numbers, and underscores
	phaseIDPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

	// maxPhaseIDLength is the maximum allowed length for a phase ID
	maxPhaseIDLength = 100
)

// NewPhaseID creates a new PhaseID value object with validation
func NewPhaseID(value string) (PhaseID, error) {
	id := PhaseID(value)
	if err := id.Validate(); err != nil {
		return "", err
	}
	return id, nil
}

// Validate checks if the phase ID is valid
func (p PhaseID) Validate() error {
	s := string(p)

	if s == "" {
		return fmt.Errorf("phase ID cannot be empty")
	}

	if len(s) > maxPhaseIDLength {
		return fmt.Errorf("phase ID %q exceeds maximum length of %d characters", s, maxPhaseIDLength)
	}

	if !phaseIDPattern.MatchString(s) {
		return fmt.Errorf("phase ID %q must start with a letter and contain only lowercase letters, numbers, and underscores", s)
	}

	if strings.Contains(s, "__") {
		return fmt.Errorf("phase ID %q cannot contain consecutive underscores", s)
	}

	if strings.HasSuffix(s, "_") {
		return fmt.Errorf("phase ID %q cannot end with an underscore", s)
	}

	return nil
}

// String returns the string representation
func (p PhaseID) String() string {
	return string(p)
}

// Equals checks if this phase ID equals another
func (p PhaseID) Equals(other PhaseID) bool {
	return p == other
}

// TaskID builds the fully qualified task identifier for a template task
// suffix generated within this phase.
func (p PhaseID) TaskID(suffix string) TaskID {
	return TaskID(string(p) + "_" + suffix)
}
