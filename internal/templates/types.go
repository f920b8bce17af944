// Package templates defines the phase and task template registries that
// drive decomposition. Registries ship as embedded defaults and can be
// overridden per project with YAML files of the same shape.
package templates

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/missionmap/internal/domain"
	"github.com/felixgeelhaar/missionmap/internal/errors"
)

// PhaseTemplate describes one phase inside a domain template
type PhaseTemplate struct {
	ID           string          `yaml:"id" json:"id"`
	Name         string          `yaml:"name" json:"name"`
	Description  string          `yaml:"description,omitempty" json:"description,omitempty"`
	Duration     domain.Duration `yaml:"duration,omitempty" json:"duration,omitempty"`
	DependsOn    []string        `yaml:"depends_on,omitempty" json:"depends_on,omitempty"`
	Deliverables []string        `yaml:"deliverables,omitempty" json:"deliverables,omitempty"`
}

// DomainTemplate is the phase plan for one project domain
type DomainTemplate struct {
	Domain      string          `yaml:"domain" json:"domain"`
	Description string          `yaml:"description,omitempty" json:"description,omitempty"`
	Phases      []PhaseTemplate `yaml:"phases" json:"phases"`

	// BaseDuration applies to phases that declare no duration of their own
	BaseDuration domain.Duration `yaml:"base_duration,omitempty" json:"base_duration,omitempty"`

	// ComplexityMultipliers scales phase durations per complexity label.
	// Missing labels scale by 1.0.
	ComplexityMultipliers map[string]float64 `yaml:"complexity_multipliers,omitempty" json:"complexity_multipliers,omitempty"`

	// PriorityHints carries a 1-10 priority per phase id, surfaced on
	// decomposed phases for downstream consumers.
	PriorityHints map[string]int `yaml:"priority_hints,omitempty" json:"priority_hints,omitempty"`
}

// PhaseRegistry maps project domains to their phase templates
type PhaseRegistry struct {
	Domains []DomainTemplate `yaml:"domains" json:"domains"`

	// Default names the domain used when a lookup misses
	Default string `yaml:"default" json:"default"`
}

// Lookup finds a domain template by name, case-insensitively
func (r *PhaseRegistry) Lookup(name string) (DomainTemplate, bool) {
	for _, tmpl := range r.Domains {
		if strings.EqualFold(tmpl.Domain, name) {
			return tmpl, true
		}
	}
	return DomainTemplate{}, false
}

// Resolve returns the template for a domain, falling back to the
// registry default when the domain is unknown. An unknown domain is not
// an error; a registry without its declared default is.
func (r *PhaseRegistry) Resolve(name string) (DomainTemplate, error) {
	if tmpl, ok := r.Lookup(name); ok {
		return tmpl, nil
	}
	tmpl, ok := r.Lookup(r.Default)
	if !ok {
		return DomainTemplate{}, errors.NewTemplateInvalidError(
			fmt.Sprintf("default domain %q is not defined", r.Default))
	}
	return tmpl, nil
}

// Validate checks registry invariants: domains are unique, phase ids are
// valid and unique per domain, dependencies point at declared phases,
// multipliers are positive, and the default domain exists.
func (r *PhaseRegistry) Validate() error {
	if len(r.Domains) == 0 {
		return errors.NewTemplateInvalidError("registry declares no domains")
	}
	if r.Default == "" {
		return errors.NewTemplateInvalidError("registry declares no default domain")
	}
	if _, ok := r.Lookup(r.Default); !ok {
		return errors.NewTemplateInvalidError(
			fmt.Sprintf("default domain %q is not defined", r.Default))
	}

	seen := make(map[string]bool, len(r.Domains))
	for _, tmpl := range r.Domains {
		key := strings.ToLower(tmpl.Domain)
		if key == "" {
			return errors.NewTemplateInvalidError("domain template with empty name")
		}
		if seen[key] {
			return errors.NewTemplateInvalidError(
				fmt.Sprintf("duplicate domain %q", tmpl.Domain))
		}
		seen[key] = true

		if err := tmpl.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks a single domain template
func (t *DomainTemplate) Validate() error {
	if len(t.Phases) == 0 {
		return errors.NewTemplateInvalidError(
			fmt.Sprintf("domain %q declares no phases", t.Domain))
	}
	if !t.BaseDuration.IsZero() {
		if _, err := t.BaseDuration.Days(); err != nil {
			return errors.NewTemplateInvalidError(
				fmt.Sprintf("domain %q: %v", t.Domain, err))
		}
	}

	ids := make(map[string]bool, len(t.Phases))
	for _, phase := range t.Phases {
		if _, err := domain.NewPhaseID(phase.ID); err != nil {
			return errors.NewTemplateInvalidError(
				fmt.Sprintf("domain %q: invalid phase id %q: %v", t.Domain, phase.ID, err))
		}
		if ids[phase.ID] {
			return errors.NewTemplateInvalidError(
				fmt.Sprintf("domain %q: duplicate phase id %q", t.Domain, phase.ID))
		}
		ids[phase.ID] = true

		if phase.Name == "" {
			return errors.NewTemplateInvalidError(
				fmt.Sprintf("domain %q: phase %q has no name", t.Domain, phase.ID))
		}
		if !phase.Duration.IsZero() {
			if _, err := phase.Duration.Days(); err != nil {
				return errors.NewTemplateInvalidError(
					fmt.Sprintf("domain %q: phase %q: %v", t.Domain, phase.ID, err))
			}
		}
	}

	for _, phase := range t.Phases {
		for _, dep := range phase.DependsOn {
			if !ids[dep] {
				return errors.NewTemplateInvalidError(
					fmt.Sprintf("domain %q: phase %q depends on undeclared phase %q", t.Domain, phase.ID, dep))
			}
			if dep == phase.ID {
				return errors.NewTemplateInvalidError(
					fmt.Sprintf("domain %q: phase %q depends on itself", t.Domain, phase.ID))
			}
		}
	}

	for label, factor := range t.ComplexityMultipliers {
		if _, err := parseComplexityLabel(label); err != nil {
			return errors.NewTemplateInvalidError(
				fmt.Sprintf("domain %q: %v", t.Domain, err))
		}
		if factor <= 0 {
			return errors.NewTemplateInvalidError(
				fmt.Sprintf("domain %q: multiplier for %q must be positive", t.Domain, label))
		}
	}

	for id, hint := range t.PriorityHints {
		if !ids[id] {
			return errors.NewTemplateInvalidError(
				fmt.Sprintf("domain %q: priority hint for undeclared phase %q", t.Domain, id))
		}
		if _, err := domain.NewPriority(hint); err != nil {
			return errors.NewTemplateInvalidError(
				fmt.Sprintf("domain %q: priority hint for %q out of range", t.Domain, id))
		}
	}

	return nil
}

// PhaseDuration returns a phase's declared duration, or the domain's
// base duration when the phase declares none
func (t *DomainTemplate) PhaseDuration(phase PhaseTemplate) domain.Duration {
	if !phase.Duration.IsZero() {
		return phase.Duration
	}
	return t.BaseDuration
}

// ComplexityMultiplier returns the duration multiplier for a complexity
// label. Missing labels multiply by 1.0.
func (t *DomainTemplate) ComplexityMultiplier(label string) float64 {
	if factor, ok := t.ComplexityMultipliers[label]; ok {
		return factor
	}
	return 1.0
}

// PriorityHint returns the hinted priority for a phase, or the neutral
// default when no hint is declared.
func (t *DomainTemplate) PriorityHint(phaseID string) domain.Priority {
	if hint, ok := t.PriorityHints[phaseID]; ok {
		if p, err := domain.NewPriority(hint); err == nil {
			return p
		}
	}
	return domain.DefaultPriority
}

// parseComplexityLabel guards registry maps against typoed labels
func parseComplexityLabel(label string) (string, error) {
	switch label {
	case "trivial", "low", "medium", "high", "epic":
		return label, nil
	}
	return "", fmt.Errorf("unknown complexity label %q", label)
}
