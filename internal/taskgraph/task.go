// Package taskgraph expands a phase decomposition into a fine-grained
// task dependency graph with depth analysis, a task-level critical
// path, bottleneck detection, and parallel task groups.
package taskgraph

import (
	"github.com/felixgeelhaar/missionmap/internal/domain"
)

// Task is one unit of work. Tasks are immutable values: derive changed
// copies with the With methods instead of mutating.
type Task struct {
	ID          domain.TaskID   `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`

	// Phase is the owning phase; PhaseType is the normalized template
	// type the task was generated from
	Phase     domain.PhaseID `json:"phase" yaml:"phase"`
	PhaseType string         `json:"phase_type" yaml:"phase_type"`

	DependsOn  []domain.TaskID   `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`
	Effort     domain.Duration   `json:"effort,omitempty" yaml:"effort,omitempty"`
	Complexity domain.Complexity `json:"complexity" yaml:"complexity"`

	// Profile is a resource-profile hint carried from the template
	Profile string `json:"profile,omitempty" yaml:"profile,omitempty"`

	Artifacts []string `json:"artifacts,omitempty" yaml:"artifacts,omitempty"`
	Criteria  []string `json:"criteria,omitempty" yaml:"criteria,omitempty"`

	// Checkpoint marks tasks needing a human sign-off
	Checkpoint bool `json:"checkpoint,omitempty" yaml:"checkpoint,omitempty"`
}

// IsVerification reports whether this is a verification task
func (t Task) IsVerification() bool {
	return t.ID.IsVerification()
}

// DependsOnTask reports whether the task depends on the given id
func (t Task) DependsOnTask(id domain.TaskID) bool {
	for _, dep := range t.DependsOn {
		if dep == id {
			return true
		}
	}
	return false
}

// WithDependencies returns a copy with a replaced dependency list
func (t Task) WithDependencies(deps ...domain.TaskID) Task {
	clone := t.clone()
	clone.DependsOn = make([]domain.TaskID, len(deps))
	copy(clone.DependsOn, deps)
	return clone
}

// WithAddedDependency returns a copy with one more dependency. Adding a
// dependency that is already present returns an unchanged copy.
func (t Task) WithAddedDependency(dep domain.TaskID) Task {
	clone := t.clone()
	if t.DependsOnTask(dep) {
		return clone
	}
	clone.DependsOn = append(clone.DependsOn, dep)
	return clone
}

// clone copies the task including its slices, so With methods never
// share backing arrays with the original
func (t Task) clone() Task {
	c := t
	c.DependsOn = make([]domain.TaskID, len(t.DependsOn))
	copy(c.DependsOn, t.DependsOn)
	c.Artifacts = make([]string, len(t.Artifacts))
	copy(c.Artifacts, t.Artifacts)
	c.Criteria = make([]string, len(t.Criteria))
	copy(c.Criteria, t.Criteria)
	return c
}
