package domain

import "fmt"

// Priority represents a task scheduling priority on a 1-10 scale,
// where 10 is the most urgent. This is a value object that enforces
// the valid range.
type Priority int

// Priority range bounds and the neutral default assigned before any
// scoring adjustments apply
const (
	MinPriority     Priority = 1
	MaxPriority     Priority = 10
	DefaultPriority Priority = 5
)

// NewPriority creates a new Priority value object with validation
func NewPriority(value int) (Priority, error) {
	p := Priority(value)
	if err := p.Validate(); err != nil {
		return 0, err
	}
	return p, nil
}

// Validate checks if the priority is within the valid range
func (p Priority) Validate() error {
	if p < MinPriority || p > MaxPriority {
		return fmt.Errorf("invalid priority %d: must be between %d and %d", int(p), MinPriority, MaxPriority)
	}
	return nil
}

// Clamp returns the priority forced into the valid range
func (p Priority) Clamp() Priority {
	if p < MinPriority {
		return MinPriority
	}
	if p > MaxPriority {
		return MaxPriority
	}
	return p
}

// Int returns the numeric value
func (p Priority) Int() int {
	return int(p)
}

// IsHigherThan checks if this priority is higher than another
func (p Priority) IsHigherThan(other Priority) bool {
	return p > other
}
