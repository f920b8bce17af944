// Package mission turns a task graph into an executable mission plan:
// verification pairing, resource assignment, parallel grouping, a
// deterministic execution order, and per-profile utilization analysis.
package mission

import (
	"github.com/felixgeelhaar/missionmap/internal/analysis"
	"github.com/felixgeelhaar/missionmap/internal/decompose"
	"github.com/felixgeelhaar/missionmap/internal/domain"
	"github.com/felixgeelhaar/missionmap/internal/errors"
	"github.com/felixgeelhaar/missionmap/internal/profiles"
	"github.com/felixgeelhaar/missionmap/internal/taskgraph"
	"github.com/felixgeelhaar/missionmap/internal/templates"
)

// Generator runs the mission planning stages in order. Generate is a
// pure function of the task graph and the configured registries, so
// identical inputs plan identical missions.
type Generator struct {
	profiles *profiles.Registry
	weights  Weights
}

// NewGenerator creates a Generator
func NewGenerator(registry *profiles.Registry, weights Weights) *Generator {
	return &Generator{profiles: registry, weights: weights}
}

// Generate plans the mission for a task graph. A nil graph is
// rejected; an empty one yields an empty, well-formed plan.
func (g *Generator) Generate(graph *taskgraph.Result) (*Result, error) {
	if graph == nil {
		return nil, errors.NewMissionMissingInputError()
	}
	if g.profiles == nil || len(g.profiles.Profiles) == 0 {
		return nil, errors.NewMissionNoProfilesError()
	}

	tasks := NewInjector().Inject(graph.Tasks)

	assignments, err := NewAssigner(g.profiles, g.weights).Assign(tasks)
	if err != nil {
		return nil, err
	}

	groups := buildParallelGroups(tasks)

	groupByTask := make(map[domain.TaskID]string, len(tasks))
	for _, group := range groups {
		for _, id := range group.Tasks {
			groupByTask[id] = group.Label
		}
	}
	for i := range assignments {
		assignments[i].ParallelGroup = groupByTask[assignments[i].TaskID]
	}

	order, err := executionOrder(tasks)
	if err != nil {
		return nil, err
	}

	utilization, conflicts := analyzeUtilization(assignments, groups, g.profiles)

	return &Result{
		Tasks:          tasks,
		Assignments:    assignments,
		ExecutionOrder: order,
		ParallelGroups: groups,
		TotalEffort:    totalEffort(tasks),
		Utilization:    utilization,
		Conflicts:      conflicts,
	}, nil
}

// Plan runs the full pipeline for one analysis: decomposition, task
// graph construction and mission generation against the given
// registries. Each stage's result is returned so callers can persist
// or inspect the intermediate graphs.
func Plan(a analysis.Result, phases *templates.PhaseRegistry, taskTemplates *templates.TaskRegistry, registry *profiles.Registry, weights Weights) (*decompose.Result, *taskgraph.Result, *Result, error) {
	dec, err := decompose.NewDecomposer(phases).Decompose(a)
	if err != nil {
		return nil, nil, nil, err
	}

	graph, err := taskgraph.NewBuilder(taskTemplates).Build(dec, a)
	if err != nil {
		return nil, nil, nil, err
	}

	plan, err := NewGenerator(registry, weights).Generate(graph)
	if err != nil {
		return nil, nil, nil, err
	}
	return dec, graph, plan, nil
}

// totalEffort sums every task effort into one duration
func totalEffort(tasks []taskgraph.Task) domain.Duration {
	var days float64
	for _, task := range tasks {
		if d, err := task.Effort.Days(); err == nil {
			days += d
		}
	}
	return domain.NewDurationDays(days)
}
