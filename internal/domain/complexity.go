package domain

import "fmt"

// Complexity represents a task complexity score on a 1-10 scale.
// This is a value object that enforces the valid range.
type Complexity int

// Complexity range bounds
const (
	MinComplexity Complexity = 1
	MaxComplexity Complexity = 10
)

// NewComplexity creates a new Complexity value object with validation
func NewComplexity(value int) (Complexity, error) {
	c := Complexity(value)
	if err := c.Validate(); err != nil {
		return 0, err
	}
	return c, nil
}

// Validate checks if the complexity is within the valid range
func (c Complexity) Validate() error {
	if c < MinComplexity || c > MaxComplexity {
		return fmt.Errorf("invalid complexity %d: must be between %d and %d", int(c), MinComplexity, MaxComplexity)
	}
	return nil
}

// Clamp returns the complexity forced into the valid range
func (c Complexity) Clamp() Complexity {
	if c < MinComplexity {
		return MinComplexity
	}
	if c > MaxComplexity {
		return MaxComplexity
	}
	return c
}

// Int returns the numeric value
func (c Complexity) Int() int {
	return int(c)
}
