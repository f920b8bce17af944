package types

// Phase is one delivery phase of a decomposed project
type Phase struct {
	ID           PhaseID   `json:"id" yaml:"id"`
	Name         string    `json:"name" yaml:"name"`
	Description  string    `json:"description,omitempty" yaml:"description,omitempty"`
	Duration     Duration  `json:"duration,omitempty" yaml:"duration,omitempty"`
	DependsOn    []PhaseID `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`
	Deliverables []string  `json:"deliverables,omitempty" yaml:"deliverables,omitempty"`
	Priority     Priority  `json:"priority" yaml:"priority"`
}

// Decomposition is the phase-level plan derived from one analysis
type Decomposition struct {
	Domain         string          `json:"domain" yaml:"domain"`
	Complexity     ComplexityLevel `json:"complexity" yaml:"complexity"`
	Phases         []Phase         `json:"phases" yaml:"phases"`
	TotalDuration  Duration        `json:"total_duration,omitempty" yaml:"total_duration,omitempty"`
	CriticalPath   []PhaseID       `json:"critical_path,omitempty" yaml:"critical_path,omitempty"`
	ParallelGroups [][]PhaseID     `json:"parallel_groups,omitempty" yaml:"parallel_groups,omitempty"`
}

// Task is one unit of work in the task graph. Verification tasks carry
// the test prefix and depend on the implementation they verify.
type Task struct {
	ID          TaskID     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Phase       PhaseID    `json:"phase" yaml:"phase"`
	PhaseType   string     `json:"phase_type" yaml:"phase_type"`
	DependsOn   []TaskID   `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`
	Effort      Duration   `json:"effort,omitempty" yaml:"effort,omitempty"`
	Complexity  Complexity `json:"complexity" yaml:"complexity"`
	Profile     string     `json:"profile,omitempty" yaml:"profile,omitempty"`
	Artifacts   []string   `json:"artifacts,omitempty" yaml:"artifacts,omitempty"`
	Criteria    []string   `json:"criteria,omitempty" yaml:"criteria,omitempty"`
	Checkpoint  bool       `json:"checkpoint,omitempty" yaml:"checkpoint,omitempty"`
}

// Bottleneck marks a task whose fan-in and fan-out make it a likely
// scheduling chokepoint
type Bottleneck struct {
	TaskID TaskID `json:"task_id" yaml:"task_id"`
	Score  int    `json:"score" yaml:"score"`
	FanIn  int    `json:"fan_in" yaml:"fan_in"`
}

// TaskGraph is the dependency-ordered task breakdown for one
// decomposition
type TaskGraph struct {
	Tasks            []Task              `json:"tasks" yaml:"tasks"`
	TaskCount        int                 `json:"task_count" yaml:"task_count"`
	DependencyMatrix map[TaskID][]TaskID `json:"dependency_matrix" yaml:"dependency_matrix"`
	CriticalPath     []TaskID            `json:"critical_path,omitempty" yaml:"critical_path,omitempty"`
	Bottlenecks      []Bottleneck        `json:"bottlenecks,omitempty" yaml:"bottlenecks,omitempty"`
	ParallelGroups   [][]TaskID          `json:"parallel_groups,omitempty" yaml:"parallel_groups,omitempty"`
}

// Assignment binds one task to the resource profile that will carry it
type Assignment struct {
	TaskID        TaskID   `json:"task_id" yaml:"task_id"`
	Profile       string   `json:"profile" yaml:"profile"`
	Effort        Duration `json:"effort,omitempty" yaml:"effort,omitempty"`
	Priority      Priority `json:"priority" yaml:"priority"`
	ParallelGroup string   `json:"parallel_group,omitempty" yaml:"parallel_group,omitempty"`
}

// ParallelGroup names a set of tasks that can run concurrently at one
// depth of the graph
type ParallelGroup struct {
	Label string   `json:"label" yaml:"label"`
	Depth int      `json:"depth" yaml:"depth"`
	Tasks []TaskID `json:"tasks" yaml:"tasks"`
}

// Utilization summarizes one profile's share of the mission
type Utilization struct {
	Profile    string  `json:"profile" yaml:"profile"`
	TaskCount  int     `json:"task_count" yaml:"task_count"`
	EffortDays float64 `json:"effort_days" yaml:"effort_days"`
	PeakLoad   int     `json:"peak_load" yaml:"peak_load"`
	Capacity   int     `json:"capacity" yaml:"capacity"`
	Percent    float64 `json:"utilization_percent" yaml:"utilization_percent"`
	Efficiency string  `json:"efficiency" yaml:"efficiency"`
	Compliance float64 `json:"verification_compliance" yaml:"verification_compliance"`
}

// Conflict records a parallel group that demands more concurrent tasks
// from a profile than it can carry
type Conflict struct {
	Profile  string `json:"profile" yaml:"profile"`
	Group    string `json:"group" yaml:"group"`
	Assigned int    `json:"assigned" yaml:"assigned"`
	Capacity int    `json:"capacity" yaml:"capacity"`
}

// Mission is the scheduled, resourced plan: every task assigned,
// ordered, and grouped for parallel execution
type Mission struct {
	Tasks          []Task          `json:"tasks" yaml:"tasks"`
	Assignments    []Assignment    `json:"assignments" yaml:"assignments"`
	ExecutionOrder []TaskID        `json:"execution_order" yaml:"execution_order"`
	ParallelGroups []ParallelGroup `json:"parallel_groups,omitempty" yaml:"parallel_groups,omitempty"`
	TotalEffort    Duration        `json:"total_effort,omitempty" yaml:"total_effort,omitempty"`
	Utilization    []Utilization   `json:"utilization" yaml:"utilization"`
	Conflicts      []Conflict      `json:"conflicts,omitempty" yaml:"conflicts,omitempty"`
}
