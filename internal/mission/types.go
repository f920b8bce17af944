package mission

import (
	"github.com/felixgeelhaar/missionmap/internal/domain"
	"github.com/felixgeelhaar/missionmap/internal/taskgraph"
)

// Assignment binds one task to the resource profile that will carry it
type Assignment struct {
	TaskID  domain.TaskID `json:"task_id" yaml:"task_id"`
	Profile string        `json:"profile" yaml:"profile"`

	Effort domain.Duration `json:"effort,omitempty" yaml:"effort,omitempty"`

	// Priority is the derived execution priority, 1 to 10
	Priority domain.Priority `json:"priority" yaml:"priority"`

	// ParallelGroup labels the group the task can run in, empty when
	// the task is ungrouped
	ParallelGroup string `json:"parallel_group,omitempty" yaml:"parallel_group,omitempty"`
}

// ParallelGroup is a set of tasks able to run concurrently
type ParallelGroup struct {
	Label string          `json:"label" yaml:"label"`
	Depth int             `json:"depth" yaml:"depth"`
	Tasks []domain.TaskID `json:"tasks" yaml:"tasks"`
}

// Utilization reports how one resource profile is loaded by the plan
type Utilization struct {
	Profile   string `json:"profile" yaml:"profile"`
	TaskCount int    `json:"task_count" yaml:"task_count"`

	// EffortDays sums assigned task efforts in working days
	EffortDays float64 `json:"effort_days" yaml:"effort_days"`

	// PeakLoad is the largest task count assigned to this profile
	// within any single parallel group
	PeakLoad int `json:"peak_load" yaml:"peak_load"`
	Capacity int `json:"capacity" yaml:"capacity"`

	// Percent is peak load over capacity, capped at 100
	Percent    float64 `json:"utilization_percent" yaml:"utilization_percent"`
	Efficiency string  `json:"efficiency" yaml:"efficiency"`

	// Compliance is the verification-to-implementation task ratio
	Compliance float64 `json:"verification_compliance" yaml:"verification_compliance"`
}

// Conflict records a parallel group demanding more concurrent tasks
// from a profile than its declared capacity
type Conflict struct {
	Profile  string `json:"profile" yaml:"profile"`
	Group    string `json:"group" yaml:"group"`
	Assigned int    `json:"assigned" yaml:"assigned"`
	Capacity int    `json:"capacity" yaml:"capacity"`
}

// Result is the generated mission plan
type Result struct {
	// Tasks is the graph's task list after verification pairing
	Tasks []taskgraph.Task `json:"tasks" yaml:"tasks"`

	Assignments []Assignment `json:"assignments" yaml:"assignments"`

	// ExecutionOrder is a deterministic topological ordering of Tasks
	ExecutionOrder []domain.TaskID `json:"execution_order" yaml:"execution_order"`

	ParallelGroups []ParallelGroup `json:"parallel_groups,omitempty" yaml:"parallel_groups,omitempty"`

	// TotalEffort sums every task effort
	TotalEffort domain.Duration `json:"total_effort,omitempty" yaml:"total_effort,omitempty"`

	Utilization []Utilization `json:"utilization" yaml:"utilization"`
	Conflicts   []Conflict    `json:"conflicts,omitempty" yaml:"conflicts,omitempty"`
}

// TaskByID finds a task in the plan
func (r *Result) TaskByID(id domain.TaskID) (taskgraph.Task, bool) {
	for _, task := range r.Tasks {
		if task.ID == id {
			return task, true
		}
	}
	return taskgraph.Task{}, false
}

// AssignmentFor finds the assignment of one task
func (r *Result) AssignmentFor(id domain.TaskID) (Assignment, bool) {
	for _, a := range r.Assignments {
		if a.TaskID == id {
			return a, true
		}
	}
	return Assignment{}, false
}

// GroupByLabel finds a parallel group by its label
func (r *Result) GroupByLabel(label string) (ParallelGroup, bool) {
	for _, g := range r.ParallelGroups {
		if g.Label == label {
			return g, true
		}
	}
	return ParallelGroup{}, false
}

// IsEmpty reports whether the plan holds no tasks
func (r *Result) IsEmpty() bool {
	return len(r.Tasks) == 0
}
