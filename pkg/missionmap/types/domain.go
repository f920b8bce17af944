// Package types holds the public shapes of generated mission plans.
// The structs mirror the documents the missionmap CLI writes, so a
// plan saved by the CLI parses directly into these types.
package types

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// TaskID represents a unique identifier for a task.
// This is a value object that enforces valid ID formats.
type TaskID string

// Verification tasks carry the test prefix; the implementation they
// verify carries the impl prefix or no prefix at all.
const (
	VerificationPrefix   = "test_"
	ImplementationPrefix = "impl_"
)

var (
	// taskIDPattern validates that the ID contains only lowercase
	// letters, numbers, and underscores, starting with a letter
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

	if strings.Contains(s, "__") {
		return fmt.Errorf("task ID %q cannot contain consecutive underscores", s)
	}

	if strings.HasSuffix(s, "_") {
		return fmt.Errorf("task ID %q cannot end with an underscore", s)
	}

	return nil
}

// String returns the string representation
func (t TaskID) String() string {
	return string(t)
}

// IsVerification reports whether the task verifies another task's work
func (t TaskID) IsVerification() bool {
	return strings.HasPrefix(string(t), VerificationPrefix)
}

// PhaseID represents a unique identifier for a delivery phase.
// This is a value object that enforces valid ID formats.
type PhaseID string

var (
	phaseIDPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

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

// ComplexityLevel represents the five-band project complexity
// classification produced by analysis.
type ComplexityLevel string

// Valid complexity levels, from smallest to largest
const (
	ComplexityTrivial ComplexityLevel = "trivial"
	ComplexityLow     ComplexityLevel = "low"
	ComplexityMedium  ComplexityLevel = "medium"
	ComplexityHigh    ComplexityLevel = "high"
	ComplexityEpic    ComplexityLevel = "epic"
)

// Validate checks if the complexity level is valid
func (c ComplexityLevel) Validate() error {
	switch c {
	case ComplexityTrivial, ComplexityLow, ComplexityMedium, ComplexityHigh, ComplexityEpic:
		return nil
	default:
		return fmt.Errorf("invalid complexity level %q: must be trivial, low, medium, high, or epic", string(c))
	}
}

// String returns the string representation
func (c ComplexityLevel) String() string {
	return string(c)
}

// Complexity represents a task complexity score on a 1-10 scale
type Complexity int

// Validate checks if the complexity score is within the valid range
func (c Complexity) Validate() error {
	if c < 1 || c > 10 {
		return fmt.Errorf("invalid complexity %d: must be between 1 and 10", int(c))
	}
	return nil
}

// Int returns the numeric value
func (c Complexity) Int() int {
	return int(c)
}

// Priority represents a phase or task priority on a 1-10 scale, where
// higher means more urgent.
type Priority int

// Validate checks if the priority is within the valid range
func (p Priority) Validate() error {
	if p < 1 || p > 10 {
		return fmt.Errorf("invalid priority %d: must be between 1 and 10", int(p))
	}
	return nil
}

// Int returns the numeric value
func (p Priority) Int() int {
	return int(p)
}

// IsHigherThan checks if this priority outranks another
func (p Priority) IsHigherThan(other Priority) bool {
	return p > other
}

// Duration represents a coarse planning duration such as "3 days" or
// "4 hours". Arithmetic happens on float days with 8 working hours per
// day.
type Duration string

// HoursPerDay is the working-hours conversion used for hour durations
const HoursPerDay = 8.0

// Days parses the duration into a day count. The empty duration is
// zero days; unknown units are an error.
func (d Duration) Days() (float64, error) {
	s := strings.TrimSpace(strings.ToLower(string(d)))
	if s == "" {
		return 0, nil
	}

	fields := strings.Fields(s)

	if len(fields) == 1 {
		value, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", string(d))
		}
		return value, nil
	}

	if len(fields) != 2 {
		return 0, fmt.Errorf("invalid duration %q", string(d))
	}

	value, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", string(d))
	}

	switch fields[1] {
	case "day", "days":
		return value, nil
	case "hour", "hours":
		return value / HoursPerDay, nil
	default:
		return 0, fmt.Errorf("invalid duration unit in %q", string(d))
	}
}

// IsZero reports whether the duration is unset
func (d Duration) IsZero() bool {
	return strings.TrimSpace(string(d)) == ""
}

// String returns the string representation
func (d Duration) String() string {
	return string(d)
}
