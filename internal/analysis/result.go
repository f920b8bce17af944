package analysis

import "fmt"

// Complexity represents the classified complexity of a project.
// This is a value object that enforces valid labels.
type Complexity string

// Valid complexity labels, ordered from smallest to largest
const (
	ComplexityTrivial Complexity = "trivial"
	ComplexityLow     Complexity = "low"
	ComplexityMedium  Complexity = "medium"
	ComplexityHigh    Complexity = "high"
	ComplexityEpic    Complexity = "epic"
)

// Labels returns all valid complexity labels in ascending order
func Labels() []Complexity {
	return []Complexity{ComplexityTrivial, ComplexityLow, ComplexityMedium, ComplexityHigh, ComplexityEpic}
}

// ParseComplexity parses a string into a Complexity label
func ParseComplexity(value string) (Complexity, error) {
	c := Complexity(value)
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

// Validate checks if the complexity label is valid
func (c Complexity) Validate() error {
	switch c {
	case ComplexityTrivial, ComplexityLow, ComplexityMedium, ComplexityHigh, ComplexityEpic:
		return nil
	default:
		return fmt.Errorf("invalid complexity %q: must be one of trivial, low, medium, high, epic", string(c))
	}
}

// String returns the string representation
func (c Complexity) String() string {
	return string(c)
}

// Rank returns the numeric rank of the label (higher = more complex)
func (c Complexity) Rank() int {
	switch c {
	case ComplexityTrivial:
		return 1
	case ComplexityLow:
		return 2
	case ComplexityMedium:
		return 3
	case ComplexityHigh:
		return 4
	case ComplexityEpic:
		return 5
	default:
		return 0
	}
}

// Result is the classified view of a project description. It is the sole
// input record of the decomposition pipeline; downstream stages never see
// the original text.
type Result struct {
	// Domain is the classified project domain. Empty means unclassified,
	// which the decomposer resolves to its default template.
	Domain string `json:"domain,omitempty" yaml:"domain,omitempty"`

	// Complexity is the classified complexity label
	Complexity Complexity `json:"complexity" yaml:"complexity"`

	// Keywords are the signal words that drove the classification
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`

	// Technologies are recognized technology mentions
	Technologies []string `json:"technologies,omitempty" yaml:"technologies,omitempty"`

	// Patterns are recognized solution patterns (crud, realtime, ...)
	Patterns []string `json:"patterns,omitempty" yaml:"patterns,omitempty"`
}

// Validate checks the result for use as pipeline input
func (r Result) Validate() error {
	if r.Complexity == "" {
		return nil
	}
	return r.Complexity.Validate()
}

// EffectiveComplexity returns the complexity label, defaulting to medium
// when the classifier left it empty
func (r Result) EffectiveComplexity() Complexity {
	if r.Complexity == "" {
		return ComplexityMedium
	}
	return r.Complexity
}
