package templates

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/missionmap/internal/domain"
	"github.com/felixgeelhaar/missionmap/internal/errors"
)

// TaskTemplate describes one task generated for a phase type. The ID is
// a suffix; the generated task id is the phase id joined with it.
type TaskTemplate struct {
	ID          string          `yaml:"id" json:"id"`
	Name        string          `yaml:"name" json:"name"`
	Description string          `yaml:"description,omitempty" json:"description,omitempty"`
	Effort      domain.Duration `yaml:"effort,omitempty" json:"effort,omitempty"`
	Complexity  int             `yaml:"complexity,omitempty" json:"complexity,omitempty"`
	Profile     string          `yaml:"profile,omitempty" json:"profile,omitempty"`

	// Priority orders templates when complexity adjustments shrink the
	// task list; the lowest-priority entries are dropped first.
	Priority int `yaml:"priority,omitempty" json:"priority,omitempty"`

	// DependsOn lists suffixes of other tasks in the same phase type
	DependsOn []string `yaml:"depends_on,omitempty" json:"depends_on,omitempty"`

	Artifacts []string `yaml:"artifacts,omitempty" json:"artifacts,omitempty"`
	Criteria  []string `yaml:"criteria,omitempty" json:"criteria,omitempty"`

	// Checkpoint marks tasks that need a human sign-off before the plan
	// can proceed past them.
	Checkpoint bool `yaml:"checkpoint,omitempty" json:"checkpoint,omitempty"`
}

// PhaseTypeTemplate groups the task templates for one normalized phase
// type such as "backend" or "testing"
type PhaseTypeTemplate struct {
	PhaseType string         `yaml:"phase_type" json:"phase_type"`
	Tasks     []TaskTemplate `yaml:"tasks" json:"tasks"`
}

// TaskRegistry maps normalized phase types to task templates
type TaskRegistry struct {
	PhaseTypes []PhaseTypeTemplate `yaml:"phase_types" json:"phase_types"`

	// CountMultipliers adjusts how many tasks a phase generates per
	// complexity label. Missing labels multiply by 1.0.
	CountMultipliers map[string]float64 `yaml:"count_multipliers,omitempty" json:"count_multipliers,omitempty"`
}

// Lookup finds the template set for a phase type, case-insensitively
func (r *TaskRegistry) Lookup(phaseType string) (PhaseTypeTemplate, bool) {
	for _, tmpl := range r.PhaseTypes {
		if strings.EqualFold(tmpl.PhaseType, phaseType) {
			return tmpl, true
		}
	}
	return PhaseTypeTemplate{}, false
}

// PhaseTypeNames returns the declared phase types in registry order
func (r *TaskRegistry) PhaseTypeNames() []string {
	names := make([]string, len(r.PhaseTypes))
	for i, tmpl := range r.PhaseTypes {
		names[i] = tmpl.PhaseType
	}
	return names
}

// CountMultiplier returns the task-count multiplier for a complexity
// label. Missing labels multiply by 1.0.
func (r *TaskRegistry) CountMultiplier(label string) float64 {
	if factor, ok := r.CountMultipliers[label]; ok {
		return factor
	}
	return 1.0
}

// Validate checks registry invariants: phase types are unique, task
// suffixes are valid and unique per type, internal dependencies point at
// declared suffixes, and complexity values sit in the 1-10 range.
func (r *TaskRegistry) Validate() error {
	if len(r.PhaseTypes) == 0 {
		return errors.NewTemplateInvalidError("task registry declares no phase types")
	}

	seen := make(map[string]bool, len(r.PhaseTypes))
	for _, tmpl := range r.PhaseTypes {
		key := strings.ToLower(tmpl.PhaseType)
		if key == "" {
			return errors.NewTemplateInvalidError("phase type template with empty name")
		}
		if seen[key] {
			return errors.NewTemplateInvalidError(
				fmt.Sprintf("duplicate phase type %q", tmpl.PhaseType))
		}
		seen[key] = true

		if err := tmpl.Validate(); err != nil {
			return err
		}
	}

	for label, factor := range r.CountMultipliers {
		if _, err := parseComplexityLabel(label); err != nil {
			return errors.NewTemplateInvalidError(err.Error())
		}
		if factor <= 0 {
			return errors.NewTemplateInvalidError(
				fmt.Sprintf("count multiplier for %q must be positive", label))
		}
	}

	return nil
}

// Validate checks a single phase type template
func (t *PhaseTypeTemplate) Validate() error {
	if len(t.Tasks) == 0 {
		return errors.NewTemplateInvalidError(
			fmt.Sprintf("phase type %q declares no tasks", t.PhaseType))
	}

	ids := make(map[string]bool, len(t.Tasks))
	for _, task := range t.Tasks {
		if _, err := domain.NewTaskID(task.ID); err != nil {
			return errors.NewTemplateInvalidError(
				fmt.Sprintf("phase type %q: invalid task suffix %q: %v", t.PhaseType, task.ID, err))
		}
		if ids[task.ID] {
			return errors.NewTemplateInvalidError(
				fmt.Sprintf("phase type %q: duplicate task suffix %q", t.PhaseType, task.ID))
		}
		ids[task.ID] = true

		if task.Name == "" {
			return errors.NewTemplateInvalidError(
				fmt.Sprintf("phase type %q: task %q has no name", t.PhaseType, task.ID))
		}
		if task.Complexity != 0 {
			if _, err := domain.NewComplexity(task.Complexity); err != nil {
				return errors.NewTemplateInvalidError(
					fmt.Sprintf("phase type %q: task %q complexity out of range", t.PhaseType, task.ID))
			}
		}
		if task.Priority != 0 {
			if _, err := domain.NewPriority(task.Priority); err != nil {
				return errors.NewTemplateInvalidError(
					fmt.Sprintf("phase type %q: task %q priority out of range", t.PhaseType, task.ID))
			}
		}
		if !task.Effort.IsZero() {
			if _, err := task.Effort.Days(); err != nil {
				return errors.NewTemplateInvalidError(
					fmt.Sprintf("phase type %q: task %q: %v", t.PhaseType, task.ID, err))
			}
		}
	}

	for _, task := range t.Tasks {
		for _, dep := range task.DependsOn {
			if !ids[dep] {
				return errors.NewTemplateInvalidError(
					fmt.Sprintf("phase type %q: task %q depends on undeclared suffix %q", t.PhaseType, task.ID, dep))
			}
			if dep == task.ID {
				return errors.NewTemplateInvalidError(
					fmt.Sprintf("phase type %q: task %q depends on itself", t.PhaseType, task.ID))
			}
		}
	}

	return nil
}
