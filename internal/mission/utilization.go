package mission

import (
	"github.com/felixgeelhaar/missionmap/internal/domain"
	"github.com/felixgeelhaar/missionmap/internal/profiles"
)

// Efficiency labels for utilization reports
const (
	EfficiencyUnderUtilized = "under-utilized"
	EfficiencyGood          = "good"
	EfficiencyOptimal       = "optimal"
	EfficiencyOverUtilized  = "over-utilized"
)

// analyzeUtilization builds one report per registry profile, in
// declaration order, plus a conflict record for every parallel group
// that demands more concurrent tasks from a profile than its capacity
func analyzeUtilization(assignments []Assignment, groups []ParallelGroup, registry *profiles.Registry) ([]Utilization, []Conflict) {
	byTask := make(map[domain.TaskID]string, len(assignments))
	for _, a := range assignments {
		byTask[a.TaskID] = a.Profile
	}

	groupLoads := make([]map[string]int, len(groups))
	peak := make(map[string]int)
	for i, group := range groups {
		load := make(map[string]int)
		for _, id := range group.Tasks {
			load[byTask[id]]++
		}
		groupLoads[i] = load

		for profile, count := range load {
			if count > peak[profile] {
				peak[profile] = count
			}
		}
	}

	reports := make([]Utilization, 0, len(registry.Profiles))
	for _, p := range registry.Profiles {
		var count, verification, implementation int
		var effortDays float64

		for _, a := range assignments {
			if a.Profile != p.Name {
				continue
			}
			count++
			if a.TaskID.IsVerification() {
				verification++
			} else {
				implementation++
			}
			if days, err := a.Effort.Days(); err == nil {
				effortDays += days
			}
		}

		pct := float64(peak[p.Name]) / float64(p.MaxConcurrent) * 100
		if pct > 100 {
			pct = 100
		}

		reports = append(reports, Utilization{
			Profile:    p.Name,
			TaskCount:  count,
			EffortDays: effortDays,
			PeakLoad:   peak[p.Name],
			Capacity:   p.MaxConcurrent,
			Percent:    pct,
			Efficiency: efficiencyLabel(pct),
			Compliance: complianceRatio(verification, implementation),
		})
	}

	var conflicts []Conflict
	for i, group := range groups {
		for _, p := range registry.Profiles {
			if n := groupLoads[i][p.Name]; n > p.MaxConcurrent {
				conflicts = append(conflicts, Conflict{
					Profile:  p.Name,
					Group:    group.Label,
					Assigned: n,
					Capacity: p.MaxConcurrent,
				})
			}
		}
	}

	return reports, conflicts
}

// efficiencyLabel buckets a utilization percentage
func efficiencyLabel(pct float64) string {
	switch {
	case pct < 60:
		return EfficiencyUnderUtilized
	case pct > 90:
		return EfficiencyOverUtilized
	case pct >= 70 && pct <= 85:
		return EfficiencyOptimal
	default:
		return EfficiencyGood
	}
}

// complianceRatio is the verification-to-implementation ratio, capped
// at 1.0. A profile carrying only verification work is fully compliant;
// a profile with no work at all sits at the midpoint.
func complianceRatio(verification, implementation int) float64 {
	switch {
	case implementation > 0:
		ratio := float64(verification) / float64(implementation)
		if ratio > 1 {
			return 1
		}
		return ratio
	case verification > 0:
		return 1
	default:
		return 0.5
	}
}
