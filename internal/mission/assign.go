package mission

import (
	"math"
	"strings"

	"github.com/felixgeelhaar/missionmap/internal/domain"
	"github.com/felixgeelhaar/missionmap/internal/errors"
	"github.com/felixgeelhaar/missionmap/internal/profiles"
	"github.com/felixgeelhaar/missionmap/internal/taskgraph"
)

// Assigner scores resource profiles against tasks and picks the best
// fit per task
type Assigner struct {
	registry *profiles.Registry
	weights  Weights
}

// NewAssigner creates an Assigner
func NewAssigner(registry *profiles.Registry, weights Weights) *Assigner {
	return &Assigner{registry: registry, weights: weights}
}

// Assign walks tasks in declaration order and gives each the highest
// scoring profile. Score ties resolve to the earlier declared profile,
// so assignment is deterministic.
func (a *Assigner) Assign(tasks []taskgraph.Task) ([]Assignment, error) {
	if a.registry == nil || len(a.registry.Profiles) == 0 {
		return nil, errors.NewMissionNoProfilesError()
	}

	counts := make(map[string]int, len(a.registry.Profiles))
	assigned := make(map[domain.TaskID]string, len(tasks))

	assignments := make([]Assignment, 0, len(tasks))
	for _, task := range tasks {
		best := ""
		bestScore := math.MinInt

		for i := range a.registry.Profiles {
			p := &a.registry.Profiles[i]
			score := a.score(task, p, counts[p.Name], assigned)
			if score > bestScore {
				best = p.Name
				bestScore = score
			}
		}

		counts[best]++
		assigned[task.ID] = best
		assignments = append(assignments, Assignment{
			TaskID:   task.ID,
			Profile:  best,
			Effort:   task.Effort,
			Priority: taskPriority(task),
		})
	}
	return assignments, nil
}

// score computes the fit of one profile for one task given the counts
// assigned so far
func (a *Assigner) score(task taskgraph.Task, p *profiles.Profile, current int, assigned map[domain.TaskID]string) int {
	w := a.weights
	score := 0

	if p.MatchesSpecialization(matchText(task)) {
		score += w.Specialization
	}

	switch p.InComplexityBand(task.Complexity) {
	case 0:
		score += w.ComplexityInRange
	case -1:
		score += w.ComplexityBelow
	default:
		score += w.ComplexityAbove
	}

	if task.IsVerification() && p.VerificationExpertise {
		score += w.VerificationMatch
	}

	if current < p.MaxConcurrent {
		score += (p.MaxConcurrent - current) * w.WorkloadPerSlot
	} else {
		score += w.OverloadPenalty
	}

	if counterpartAssignedTo(task, p.Name, assigned) {
		score += w.Continuity
	}

	return score
}

// matchText is the task text specialization tags match against. The
// template's profile hint is part of it, so a hint naming a profile
// pulls that profile's tags into range.
func matchText(task taskgraph.Task) string {
	return strings.Join([]string{task.Name, task.Description, task.PhaseType, task.Profile}, " ")
}

// counterpartAssignedTo reports whether the task's verification or
// implementation counterpart already went to the named profile
func counterpartAssignedTo(task taskgraph.Task, profile string, assigned map[domain.TaskID]string) bool {
	if task.IsVerification() {
		for _, candidate := range task.ID.ImplementationCandidates() {
			if assigned[candidate] == profile {
				return true
			}
		}
		return false
	}
	return assigned[task.ID.VerificationID()] == profile
}

// taskPriority derives the 1 to 10 execution priority. Verification
// work, high complexity, human checkpoints and dependency-free tasks
// all raise it from the default.
func taskPriority(task taskgraph.Task) domain.Priority {
	score := int(domain.DefaultPriority)

	if task.IsVerification() {
		score += 2
	}

	switch {
	case task.Complexity.Int() >= 4:
		score += 2
	case task.Complexity.Int() >= 3:
		score++
	}

	if task.Checkpoint {
		score++
	}
	if len(task.DependsOn) == 0 {
		score++
	}

	return domain.Priority(score).Clamp()
}
