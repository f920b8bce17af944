package taskgraph

import (
	"math"
	"sort"

	"github.com/felixgeelhaar/missionmap/internal/analysis"
	"github.com/felixgeelhaar/missionmap/internal/decompose"
	"github.com/felixgeelhaar/missionmap/internal/domain"
	"github.com/felixgeelhaar/missionmap/internal/errors"
	"github.com/felixgeelhaar/missionmap/internal/templates"
)

// defaultComplexity applies to template tasks that declare none
const defaultComplexity = domain.Complexity(3)

// Builder expands phases into tasks using a task template registry.
// Build is a pure function of its inputs.
type Builder struct {
	registry *templates.TaskRegistry
}

// NewBuilder creates a Builder backed by the given registry
func NewBuilder(registry *templates.TaskRegistry) *Builder {
	return &Builder{registry: registry}
}

// Build expands every phase of the decomposition into tasks, resolves
// intra-phase dependencies, links cross-phase dependencies through the
// terminal tasks of each upstream phase, and derives the graph
// analyses.
//
// A nil decomposition is rejected; an empty one yields an empty,
// well-formed result. Phases whose normalized type has no template
// generate no tasks.
func (b *Builder) Build(dec *decompose.Result, a analysis.Result) (*Result, error) {
	if dec == nil {
		return nil, errors.NewTaskGraphMissingInputError()
	}

	result := &Result{
		DependencyMatrix: make(map[domain.TaskID][]domain.TaskID),
	}
	if dec.IsEmpty() {
		return result, nil
	}

	label := string(a.EffectiveComplexity())
	multiplier := b.registry.CountMultiplier(label)
	declared := b.registry.PhaseTypeNames()

	var tasks []Task
	tasksByPhase := make(map[domain.PhaseID][]domain.TaskID)

	for _, phase := range dec.Phases {
		phaseType := NormalizePhaseType(phase.Name, declared)
		tmpl, ok := b.registry.Lookup(phaseType)
		if !ok {
			continue
		}

		selected := adjustTemplates(tmpl.Tasks, multiplier)
		phaseTasks := instantiateTasks(phase, tmpl.PhaseType, selected)

		for _, task := range phaseTasks {
			tasks = append(tasks, task)
			tasksByPhase[phase.ID] = append(tasksByPhase[phase.ID], task.ID)
		}
	}

	tasks = linkCrossPhase(tasks, dec.Phases, tasksByPhase)

	if err := validateGraph(tasks); err != nil {
		return nil, err
	}

	depths := Depths(tasks)
	path := depthCriticalPath(tasks, depths)

	result.Tasks = tasks
	result.TaskCount = len(tasks)
	result.DependencyMatrix = dependencyMatrix(tasks)
	result.CriticalPath = path
	result.Bottlenecks = findBottlenecks(tasks, path)
	result.ParallelGroups = parallelTaskGroups(tasks, depths)
	return result, nil
}

// adjustTemplates applies the complexity count multiplier: a shrinking
// multiplier drops the lowest-priority templates, a growing one appends
// intensified follow-up copies of the highest-priority ones. Survivors
// keep declaration order.
func adjustTemplates(list []templates.TaskTemplate, multiplier float64) []templates.TaskTemplate {
	if len(list) == 0 || multiplier == 1.0 {
		return list
	}

	target := int(math.Round(float64(len(list)) * multiplier))
	if target < 1 {
		target = 1
	}

	if target < len(list) {
		return shrinkTemplates(list, target)
	}
	if target > len(list) {
		return growTemplates(list, target-len(list))
	}
	return list
}

// shrinkTemplates keeps the `target` highest-priority templates,
// preserving declaration order among survivors. Ties keep the earlier
// declaration.
func shrinkTemplates(list []templates.TaskTemplate, target int) []templates.TaskTemplate {
	type ranked struct {
		index    int
		priority int
	}
	order := make([]ranked, len(list))
	for i, tt := range list {
		order[i] = ranked{index: i, priority: effectivePriority(tt)}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].priority > order[j].priority
	})

	keep := make(map[int]bool, target)
	for _, r := range order[:target] {
		keep[r.index] = true
	}

	kept := make([]templates.TaskTemplate, 0, target)
	for i, tt := range list {
		if keep[i] {
			kept = append(kept, tt)
		}
	}

	// Dependencies on dropped templates are pruned with them.
	survivors := make(map[string]bool, len(kept))
	for _, tt := range kept {
		survivors[tt.ID] = true
	}
	for i := range kept {
		var deps []string
		for _, dep := range kept[i].DependsOn {
			if survivors[dep] {
				deps = append(deps, dep)
			}
		}
		kept[i].DependsOn = deps
	}
	return kept
}

// growTemplates appends `extras` intensified copies of the
// highest-priority templates. Each copy depends on its original, takes
// a point more complexity and roughly half the effort.
func growTemplates(list []templates.TaskTemplate, extras int) []templates.TaskTemplate {
	if extras > len(list) {
		extras = len(list)
	}

	type ranked struct {
		index    int
		priority int
	}
	order := make([]ranked, len(list))
	for i, tt := range list {
		order[i] = ranked{index: i, priority: effectivePriority(tt)}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].priority > order[j].priority
	})

	existing := make(map[string]bool, len(list))
	for _, tt := range list {
		existing[tt.ID] = true
	}

	grown := make([]templates.TaskTemplate, len(list), len(list)+extras)
	copy(grown, list)

	for _, r := range order[:extras] {
		src := list[r.index]
		id := src.ID + "_ext"
		if existing[id] {
			continue
		}
		existing[id] = true

		effort, err := src.Effort.Scale(0.5)
		if err != nil {
			effort = src.Effort
		}

		grown = append(grown, templates.TaskTemplate{
			ID:          id,
			Name:        src.Name + " (extended scope)",
			Description: src.Description,
			Effort:      effort,
			Complexity:  int(domain.Complexity(effectiveComplexity(src) + 1).Clamp()),
			Profile:     src.Profile,
			Priority:    maxInt(effectivePriority(src)-1, int(domain.MinPriority)),
			DependsOn:   []string{src.ID},
		})
	}
	return grown
}

// instantiateTasks turns selected templates into tasks of one phase,
// resolving internal dependency suffixes into qualified task ids
func instantiateTasks(phase decompose.Phase, phaseType string, selected []templates.TaskTemplate) []Task {
	tasks := make([]Task, 0, len(selected))
	for _, tt := range selected {
		deps := make([]domain.TaskID, 0, len(tt.DependsOn))
		for _, suffix := range tt.DependsOn {
			deps = append(deps, phase.ID.TaskID(suffix))
		}

		artifacts := make([]string, len(tt.Artifacts))
		copy(artifacts, tt.Artifacts)
		criteria := make([]string, len(tt.Criteria))
		copy(criteria, tt.Criteria)

		tasks = append(tasks, Task{
			ID:          phase.ID.TaskID(tt.ID),
			Name:        tt.Name,
			Description: tt.Description,
			Phase:       phase.ID,
			PhaseType:   phaseType,
			DependsOn:   deps,
			Effort:      tt.Effort,
			Complexity:  domain.Complexity(effectiveComplexity(tt)),
			Profile:     tt.Profile,
			Artifacts:   artifacts,
			Criteria:    criteria,
			Checkpoint:  tt.Checkpoint,
		})
	}
	return tasks
}

// linkCrossPhase adds, for every phase edge P -> Q, a dependency from
// each task of Q onto every terminal task of P. A terminal task is one
// no other task of the same phase depends on.
func linkCrossPhase(tasks []Task, phases []decompose.Phase, tasksByPhase map[domain.PhaseID][]domain.TaskID) []Task {
	terminals := make(map[domain.PhaseID][]domain.TaskID, len(phases))
	for _, phase := range phases {
		terminals[phase.ID] = terminalTasks(tasks, tasksByPhase[phase.ID])
	}

	phaseDeps := make(map[domain.PhaseID][]domain.PhaseID, len(phases))
	for _, phase := range phases {
		phaseDeps[phase.ID] = phase.DependsOn
	}

	linked := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		updated := task
		for _, upstream := range phaseDeps[task.Phase] {
			for _, terminal := range terminals[upstream] {
				updated = updated.WithAddedDependency(terminal)
			}
		}
		linked = append(linked, updated)
	}
	return linked
}

// terminalTasks returns the members of one phase that no other member
// depends on, in declaration order
func terminalTasks(tasks []Task, members []domain.TaskID) []domain.TaskID {
	inPhase := make(map[domain.TaskID]bool, len(members))
	for _, id := range members {
		inPhase[id] = true
	}

	hasDependent := make(map[domain.TaskID]bool, len(members))
	for _, task := range tasks {
		if !inPhase[task.ID] {
			continue
		}
		for _, dep := range task.DependsOn {
			if inPhase[dep] {
				hasDependent[dep] = true
			}
		}
	}

	var result []domain.TaskID
	for _, id := range members {
		if !hasDependent[id] {
			result = append(result, id)
		}
	}
	return result
}

// validateGraph rejects dependencies on unknown tasks and any cycle
func validateGraph(tasks []Task) error {
	known := make(map[domain.TaskID]bool, len(tasks))
	for _, task := range tasks {
		known[task.ID] = true
	}

	for _, task := range tasks {
		for _, dep := range task.DependsOn {
			if !known[dep] {
				return errors.NewTaskMissingDepError(task.ID.String(), dep.String())
			}
		}
	}

	return detectCycle(tasks)
}

// detectCycle runs a depth-first walk over dependency edges and reports
// the first cycle found, with the offending path
func detectCycle(tasks []Task) error {
	byID := make(map[domain.TaskID]Task, len(tasks))
	for _, task := range tasks {
		byID[task.ID] = task
	}

	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[domain.TaskID]int, len(tasks))

	var walk func(id domain.TaskID, trail []string) error
	walk = func(id domain.TaskID, trail []string) error {
		state[id] = visiting
		trail = append(trail, id.String())

		for _, dep := range byID[id].DependsOn {
			switch state[dep] {
			case visiting:
				return errors.NewTaskCycleError(append(trail, dep.String()))
			case unvisited:
				if err := walk(dep, trail); err != nil {
					return err
				}
			}
		}

		state[id] = done
		return nil
	}

	for _, task := range tasks {
		if state[task.ID] == unvisited {
			if err := walk(task.ID, nil); err != nil {
				return err
			}
		}
	}
	return nil
}

// dependencyMatrix copies every task's dependency list into a map
func dependencyMatrix(tasks []Task) map[domain.TaskID][]domain.TaskID {
	matrix := make(map[domain.TaskID][]domain.TaskID, len(tasks))
	for _, task := range tasks {
		deps := make([]domain.TaskID, len(task.DependsOn))
		copy(deps, task.DependsOn)
		matrix[task.ID] = deps
	}
	return matrix
}

func effectivePriority(tt templates.TaskTemplate) int {
	if tt.Priority == 0 {
		return int(domain.DefaultPriority)
	}
	return tt.Priority
}

func effectiveComplexity(tt templates.TaskTemplate) int {
	if tt.Complexity == 0 {
		return int(defaultComplexity)
	}
	return tt.Complexity
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
