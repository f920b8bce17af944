package decompose

import (
	"github.com/felixgeelhaar/missionmap/internal/domain"
)

// Result is the phase decomposition of one project
type Result struct {
	// Domain is the template domain the plan was built from, after any
	// default fallback
	Domain string `json:"domain" yaml:"domain"`

	// Complexity is the analysis label the durations were scaled with
	Complexity string `json:"complexity" yaml:"complexity"`

	Phases []Phase `json:"phases" yaml:"phases"`

	// TotalDuration is the cumulative duration along the critical path,
	// the minimum possible completion time
	TotalDuration domain.Duration `json:"total_duration,omitempty" yaml:"total_duration,omitempty"`

	// CriticalPath lists phase ids from the path's root to its end
	CriticalPath []domain.PhaseID `json:"critical_path,omitempty" yaml:"critical_path,omitempty"`

	// ParallelGroups lists sets of phases that share a dependency set
	// and can proceed concurrently
	ParallelGroups [][]domain.PhaseID `json:"parallel_groups,omitempty" yaml:"parallel_groups,omitempty"`
}

// PhaseByID finds a phase in the result
func (r *Result) PhaseByID(id domain.PhaseID) (Phase, bool) {
	for _, phase := range r.Phases {
		if phase.ID == id {
			return phase, true
		}
	}
	return Phase{}, false
}

// PhaseIDs returns the phase ids in declaration order
func (r *Result) PhaseIDs() []domain.PhaseID {
	ids := make([]domain.PhaseID, len(r.Phases))
	for i, phase := range r.Phases {
		ids[i] = phase.ID
	}
	return ids
}

// IsEmpty reports whether the decomposition produced no phases
func (r *Result) IsEmpty() bool {
	return len(r.Phases) == 0
}
