package taskgraph

import (
	"github.com/felixgeelhaar/missionmap/internal/domain"
)

// Bottleneck flags a task likely to constrain the whole plan
type Bottleneck struct {
	TaskID domain.TaskID `json:"task_id" yaml:"task_id"`

	// Score is the combined fan-in, critical-path and complexity signal
	// that qualified the task
	Score int `json:"score" yaml:"score"`

	// FanIn is the number of tasks depending on this one
	FanIn int `json:"fan_in" yaml:"fan_in"`
}

// Result is the task graph generated from one decomposition
type Result struct {
	Tasks []Task `json:"tasks" yaml:"tasks"`

	// TaskCount always equals len(Tasks); serialized for consumers
	// reading the result without the task bodies
	TaskCount int `json:"task_count" yaml:"task_count"`

	// DependencyMatrix maps every task id to its dependency ids
	DependencyMatrix map[domain.TaskID][]domain.TaskID `json:"dependency_matrix" yaml:"dependency_matrix"`

	// CriticalPath lists task ids from a root to the deepest task
	CriticalPath []domain.TaskID `json:"critical_path,omitempty" yaml:"critical_path,omitempty"`

	Bottlenecks []Bottleneck `json:"bottlenecks,omitempty" yaml:"bottlenecks,omitempty"`

	// ParallelGroups lists sets of same-depth tasks with no dependency
	// among themselves
	ParallelGroups [][]domain.TaskID `json:"parallel_groups,omitempty" yaml:"parallel_groups,omitempty"`
}

// TaskByID finds a task in the result
func (r *Result) TaskByID(id domain.TaskID) (Task, bool) {
	for _, task := range r.Tasks {
		if task.ID == id {
			return task, true
		}
	}
	return Task{}, false
}

// TaskIDs returns the task ids in declaration order
func (r *Result) TaskIDs() []domain.TaskID {
	ids := make([]domain.TaskID, len(r.Tasks))
	for i, task := range r.Tasks {
		ids[i] = task.ID
	}
	return ids
}

// IsEmpty reports whether the graph holds no tasks
func (r *Result) IsEmpty() bool {
	return len(r.Tasks) == 0
}
