package decompose

import (
	"github.com/felixgeelhaar/missionmap/internal/analysis"
	"github.com/felixgeelhaar/missionmap/internal/domain"
	"github.com/felixgeelhaar/missionmap/internal/errors"
	"github.com/felixgeelhaar/missionmap/internal/templates"
)

// Decomposer expands an analysis into a phase graph using a phase
// template registry. It holds no state between calls; Decompose is a
// pure function of its inputs.
type Decomposer struct {
	registry *templates.PhaseRegistry
}

// NewDecomposer creates a Decomposer backed by the given registry
func NewDecomposer(registry *templates.PhaseRegistry) *Decomposer {
	return &Decomposer{registry: registry}
}

// Decompose selects the domain template for the analysis, instantiates
// its phases with complexity-scaled durations, validates the dependency
// graph, and computes the critical path and parallel groups.
//
// An unknown domain falls back to the registry default and is not an
// error. A template with no phases yields an empty, well-formed result.
func (d *Decomposer) Decompose(a analysis.Result) (*Result, error) {
	tmpl, err := d.registry.Resolve(a.Domain)
	if err != nil {
		return nil, err
	}

	label := string(a.EffectiveComplexity())
	multiplier := tmpl.ComplexityMultiplier(label)

	result := &Result{
		Domain:     tmpl.Domain,
		Complexity: label,
	}
	if len(tmpl.Phases) == 0 {
		return result, nil
	}

	phases, err := instantiatePhases(tmpl, multiplier)
	if err != nil {
		return nil, err
	}
	if err := validateGraph(phases); err != nil {
		return nil, err
	}

	durations, err := phaseDurations(phases)
	if err != nil {
		return nil, err
	}

	path, total := computeCriticalPath(phases, durations)

	result.Phases = phases
	result.CriticalPath = path
	result.TotalDuration = domain.NewDurationDays(total)
	result.ParallelGroups = parallelGroups(phases)
	return result, nil
}

// instantiatePhases builds Phase values from the template, scaling each
// duration by the complexity multiplier
func instantiatePhases(tmpl templates.DomainTemplate, multiplier float64) ([]Phase, error) {
	phases := make([]Phase, 0, len(tmpl.Phases))
	for _, pt := range tmpl.Phases {
		id, err := domain.NewPhaseID(pt.ID)
		if err != nil {
			return nil, errors.New(errors.ErrCodePhaseInvalid, err.Error())
		}

		duration, err := tmpl.PhaseDuration(pt).Scale(multiplier)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodePhaseInvalid,
				"phase "+pt.ID+" has an invalid duration", err)
		}

		deps := make([]domain.PhaseID, len(pt.DependsOn))
		for i, dep := range pt.DependsOn {
			deps[i] = domain.PhaseID(dep)
		}

		deliverables := make([]string, len(pt.Deliverables))
		copy(deliverables, pt.Deliverables)

		phases = append(phases, Phase{
			ID:           id,
			Name:         pt.Name,
			Description:  pt.Description,
			Duration:     duration,
			DependsOn:    deps,
			Deliverables: deliverables,
			Priority:     tmpl.PriorityHint(pt.ID),
		})
	}
	return phases, nil
}

// validateGraph rejects dependencies on unknown phases and any cycle.
// Cycles are rejected here, at construction, so later traversals can
// assume an acyclic graph.
func validateGraph(phases []Phase) error {
	known := make(map[domain.PhaseID]bool, len(phases))
	for _, phase := range phases {
		known[phase.ID] = true
	}

	for _, phase := range phases {
		for _, dep := range phase.DependsOn {
			if !known[dep] {
				return errors.NewPhaseMissingDepError(phase.ID.String(), dep.String())
			}
		}
	}

	return detectCycle(phases)
}

// detectCycle runs a depth-first walk over the dependency edges and
// reports the first cycle found, with the offending path
func detectCycle(phases []Phase) error {
	byID := make(map[domain.PhaseID]Phase, len(phases))
	for _, phase := range phases {
		byID[phase.ID] = phase
	}

	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[domain.PhaseID]int, len(phases))

	var walk func(id domain.PhaseID, trail []string) error
	walk = func(id domain.PhaseID, trail []string) error {
		state[id] = visiting
		trail = append(trail, id.String())

		for _, dep := range byID[id].DependsOn {
			switch state[dep] {
			case visiting:
				return errors.NewPhaseCycleError(append(trail, dep.String()))
			case unvisited:
				if err := walk(dep, trail); err != nil {
					return err
				}
			}
		}

		state[id] = done
		return nil
	}

	for _, phase := range phases {
		if state[phase.ID] == unvisited {
			if err := walk(phase.ID, nil); err != nil {
				return err
			}
		}
	}
	return nil
}

// phaseDurations parses every phase duration into days once, so the
// critical-path walk works on plain numbers
func phaseDurations(phases []Phase) (map[domain.PhaseID]float64, error) {
	durations := make(map[domain.PhaseID]float64, len(phases))
	for _, phase := range phases {
		days, err := phase.Duration.Days()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodePhaseInvalid,
				"phase "+phase.ID.String()+" has an invalid duration", err)
		}
		durations[phase.ID] = days
	}
	return durations, nil
}
