package types

// Analysis captures the classified shape of a project description:
// its domain, complexity level, and the signals that drove the
// classification.
type Analysis struct {
	Domain       string          `json:"domain,omitempty" yaml:"domain,omitempty"`
	Complexity   ComplexityLevel `json:"complexity" yaml:"complexity"`
	Keywords     []string        `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Technologies []string        `json:"technologies,omitempty" yaml:"technologies,omitempty"`
	Patterns     []string        `json:"patterns,omitempty" yaml:"patterns,omitempty"`
}
