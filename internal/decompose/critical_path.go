package decompose

import (
	"github.com/felixgeelhaar/missionmap/internal/domain"
)

// computeCriticalPath finds the dependency chain with the largest
// cumulative duration. For every phase it memoizes the longest path
// ending there; the overall critical path is the best of those chains,
// returned root first together with its total duration in days.
//
// Ties resolve to the lexicographically smaller phase id so the result
// is stable across runs. The walk carries a cycle guard that returns
// the phase's own duration as a floor; construction-time validation
// rejects cycles before this runs, so the guard only prevents runaway
// recursion on graphs that bypassed validation.
func computeCriticalPath(phases []Phase, durations map[domain.PhaseID]float64) ([]domain.PhaseID, float64) {
	if len(phases) == 0 {
		return nil, 0
	}

	byID := make(map[domain.PhaseID]Phase, len(phases))
	for _, phase := range phases {
		byID[phase.ID] = phase
	}

	memo := make(map[domain.PhaseID]float64, len(phases))
	pred := make(map[domain.PhaseID]domain.PhaseID, len(phases))
	visiting := make(map[domain.PhaseID]bool, len(phases))

	var longestEndingAt func(id domain.PhaseID) float64
	longestEndingAt = func(id domain.PhaseID) float64 {
		if v, ok := memo[id]; ok {
			return v
		}
		if visiting[id] {
			return durations[id]
		}
		visiting[id] = true

		best := -1.0
		var bestDep domain.PhaseID
		for _, dep := range byID[id].DependsOn {
			length := longestEndingAt(dep)
			switch {
			case length > best:
				best, bestDep = length, dep
			case length == best && dep < bestDep:
				bestDep = dep
			}
		}
		if bestDep == "" {
			best = 0
		}

		visiting[id] = false
		total := durations[id] + best
		memo[id] = total
		if bestDep != "" {
			pred[id] = bestDep
		}
		return total
	}

	var endID domain.PhaseID
	bestTotal := -1.0
	for _, phase := range phases {
		total := longestEndingAt(phase.ID)
		if total > bestTotal || (total == bestTotal && phase.ID < endID) {
			bestTotal = total
			endID = phase.ID
		}
	}

	// Walk predecessors back to the root, then reverse.
	var reversed []domain.PhaseID
	for id := endID; ; {
		reversed = append(reversed, id)
		prev, ok := pred[id]
		if !ok {
			break
		}
		id = prev
	}
	path := make([]domain.PhaseID, len(reversed))
	for i, id := range reversed {
		path[len(reversed)-1-i] = id
	}

	return path, bestTotal
}
