// Package decompose expands a classified project analysis into a phase
// dependency graph with duration estimates, a critical path, and
// parallel-execution opportunities.
package decompose

import (
	"github.com/felixgeelhaar/missionmap/internal/domain"
)

// Phase is one coarse project stage. Phases are immutable values:
// derive changed copies with the With methods instead of mutating.
type Phase struct {
	ID           domain.PhaseID   `json:"id" yaml:"id"`
	Name         string           `json:"name" yaml:"name"`
	Description  string           `json:"description,omitempty" yaml:"description,omitempty"`
	Duration     domain.Duration  `json:"duration,omitempty" yaml:"duration,omitempty"`
	DependsOn    []domain.PhaseID `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`
	Deliverables []string         `json:"deliverables,omitempty" yaml:"deliverables,omitempty"`
	Priority     domain.Priority  `json:"priority" yaml:"priority"`
}

// WithDuration returns a copy with a different duration estimate
func (p Phase) WithDuration(d domain.Duration) Phase {
	clone := p.clone()
	clone.Duration = d
	return clone
}

// WithDependencies returns a copy with a replaced dependency list
func (p Phase) WithDependencies(deps ...domain.PhaseID) Phase {
	clone := p.clone()
	clone.DependsOn = make([]domain.PhaseID, len(deps))
	copy(clone.DependsOn, deps)
	return clone
}

// DependsOnPhase reports whether the phase depends on the given id
func (p Phase) DependsOnPhase(id domain.PhaseID) bool {
	for _, dep := range p.DependsOn {
		if dep == id {
			return true
		}
	}
	return false
}

// clone copies the phase including its slices, so With methods never
// share backing arrays with the original
func (p Phase) clone() Phase {
	c := p
	c.DependsOn = make([]domain.PhaseID, len(p.DependsOn))
	copy(c.DependsOn, p.DependsOn)
	c.Deliverables = make([]string, len(p.Deliverables))
	copy(c.Deliverables, p.Deliverables)
	return c
}
