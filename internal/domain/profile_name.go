package domain

import (
	"fmt"
	"regexp"
)

// ProfileName represents the name of a resource profile.
// This is a value object that enforces valid name formats.
type ProfileName string

var (
	// profileNamePattern validates that the name contains only alphanumeric characters and underscores
	profileNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

	// maxProfileNameLength is the maximum allowed length for a profile name
	maxProfileNameLength = 64
)

// NewProfileName creates a new ProfileName value object with validation
func NewProfileName(value string) (ProfileName, error) {
	n := ProfileName(value)
	if err := n.Validate(); err != nil {
		return "", err
	}
	return n, nil
}

// Validate checks if the profile name is valid
func (n ProfileName) Validate() error {
	s := string(n)

	if s == "" {
		return fmt.Errorf("profile name cannot be empty")
	}

	if len(s) > maxProfileNameLength {
		return fmt.Errorf("profile name %q exceeds maximum length of %d characters", s, maxProfileNameLength)
	}

	if !profileNamePattern.MatchString(s) {
		return fmt.Errorf("profile name %q must start with a letter and contain only lowercase letters, numbers, and underscores", s)
	}

	return nil
}

// String returns the string representation
func (n ProfileName) String() string {
	return string(n)
}

// Equals checks if this profile name equals another
func (n ProfileName) Equals(other ProfileName) bool {
	return n == other
}
