package decompose

import (
	"sort"
	"strings"

	"github.com/felixgeelhaar/missionmap/internal/domain"
)

// parallelGroups finds sets of phases that can proceed concurrently:
// phases sharing an identical dependency set, none of which depends on
// another group member. Groups keep phase declaration order; only
// groups with at least two members count as parallel opportunities.
func parallelGroups(phases []Phase) [][]domain.PhaseID {
	grouped := make(map[string][]domain.PhaseID)
	var keyOrder []string

	for _, phase := range phases {
		key := dependencyKey(phase.DependsOn)
		if _, ok := grouped[key]; !ok {
			keyOrder = append(keyOrder, key)
		}
		grouped[key] = append(grouped[key], phase.ID)
	}

	byID := make(map[domain.PhaseID]Phase, len(phases))
	for _, phase := range phases {
		byID[phase.ID] = phase
	}

	var groups [][]domain.PhaseID
	for _, key := range keyOrder {
		members := grouped[key]
		if len(members) < 2 {
			continue
		}
		if hasInternalDependency(members, byID) {
			continue
		}
		groups = append(groups, members)
	}
	return groups
}

// dependencyKey canonicalizes a dependency set so order of declaration
// does not split groups
func dependencyKey(deps []domain.PhaseID) string {
	sorted := make([]string, len(deps))
	for i, dep := range deps {
		sorted[i] = dep.String()
	}
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

// hasInternalDependency reports whether any group member depends on
// another member
func hasInternalDependency(members []domain.PhaseID, byID map[domain.PhaseID]Phase) bool {
	inGroup := make(map[domain.PhaseID]bool, len(members))
	for _, id := range members {
		inGroup[id] = true
	}
	for _, id := range members {
		for _, dep := range byID[id].DependsOn {
			if inGroup[dep] {
				return true
			}
		}
	}
	return false
}
