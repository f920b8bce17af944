package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// TaskID represents a unique identifier for a task.
// This is a value object that enforces valid ID formats.
type TaskID string

// Identifier prefixes that encode the verification pairing convention.
// A verification task carries the test prefix; its implementation
// counterpart usually carries the impl prefix but is not required to.
const (
	VerificationPrefix   = "test_"
	ImplementationPrefix = "impl_"
)

var (
	// taskIDPattern validates that the ID contains only alphanumeric characters and underscores
	// Must start with a letter, and can contain lowercase letters, numbers, and underscores
	taskIDPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

	// maxTaskIDLength is the maximum allowed length for a task ID
	maxTaskIDLength = 100
)

// NewTaskID creates a new TaskID value object with validation
func NewTaskID(value string) (TaskID, error) {
	id := TaskID(value)
	if err := id.Validate(); err != nil {
		return "", err
	}
	return id, nil
}

// Validate checks if the task ID is valid
func (t TaskID) Validate() error {
	s := string(t)

	if s == "" {
		return fmt.Errorf("task ID cannot be empty")
	}

	if len(s) > maxTaskIDLength {
		return fmt.Errorf("task ID %q exceeds maximum length of %d characters", s, maxTaskIDLength)
	}

	if !taskIDPattern.MatchString(s) {
		return fmt.Errorf("task ID %q must start with a letter and contain only lowercase letters, numbers, and underscores", s)
	}

	// Check for consecutive underscores
	if strings.Contains(s, "__") {
		return fmt.Errorf("task ID %q cannot contain consecutive underscores", s)
	}

	// Check for trailing underscore
	if strings.HasSuffix(s, "_") {
		return fmt.Errorf("task ID %q cannot end with an underscore", s)
	}

	return nil
}

// String returns the string representation
func (t TaskID) String() string {
	return string(t)
}

// Equals checks if this task ID equals another
func (t TaskID) Equals(other TaskID) bool {
	return t == other
}

// IsVerification reports whether the ID names a verification task
func (t TaskID) IsVerification() bool {
	return strings.HasPrefix(string(t), VerificationPrefix)
}

// VerificationID derives the paired verification identifier for an
// implementation task: the impl prefix is stripped when present, then the
// test prefix is prepended. Calling this on a verification ID returns the
// ID unchanged.
func (t TaskID) VerificationID() TaskID {
	if t.IsVerification() {
		return t
	}
	base := strings.TrimPrefix(string(t), ImplementationPrefix)
	return TaskID(VerificationPrefix + base)
}

// ImplementationCandidates returns the identifiers that may name the
// implementation task paired with a verification ID, most specific first.
// The caller decides which candidate exists in its graph. For a
// non-verification ID the result is the ID itself.
func (t TaskID) ImplementationCandidates() []TaskID {
	if !t.IsVerification() {
		return []TaskID{t}
	}
	base := strings.TrimPrefix(string(t), VerificationPrefix)
	return []TaskID{TaskID(ImplementationPrefix + base), TaskID(base)}
}
