package mission

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/missionmap/internal/analysis"
	"github.com/felixgeelhaar/missionmap/internal/canonical"
	"github.com/felixgeelhaar/missionmap/internal/decompose"
	"github.com/felixgeelhaar/missionmap/internal/domain"
	"github.com/felixgeelhaar/missionmap/internal/errors"
	"github.com/felixgeelhaar/missionmap/internal/profiles"
	"github.com/felixgeelhaar/missionmap/internal/taskgraph"
	"github.com/felixgeelhaar/missionmap/internal/templates"
)

// pairGraph holds two independent implementation tasks, so injection
// yields two verification/implementation pairs at the same depth
func pairGraph() *taskgraph.Result {
	return &taskgraph.Result{
		Tasks: []taskgraph.Task{
			{ID: "impl_user_model", Name: "Build user model", Phase: "backend", PhaseType: "backend",
				Effort: "2 days", Complexity: 4, Profile: "backend_engineer"},
			{ID: "impl_order_model", Name: "Build order model", Phase: "backend", PhaseType: "backend",
				Effort: "2 days", Complexity: 4, Profile: "backend_engineer"},
		},
		TaskCount: 2,
	}
}

func TestGenerateSynthesizesVerificationPair(t *testing.T) {
	generator := NewGenerator(testProfileRegistry(), DefaultWeights())

	plan, err := generator.Generate(&taskgraph.Result{
		Tasks: []taskgraph.Task{
			{ID: "impl_user_model", Name: "Build user model", Effort: "2 days", Complexity: 4},
		},
		TaskCount: 1,
	})
	require.NoError(t, err)

	ver, ok := plan.TaskByID("test_user_model")
	require.True(t, ok)
	require.Empty(t, ver.DependsOn)

	impl, ok := plan.TaskByID("impl_user_model")
	require.True(t, ok)
	require.Equal(t, []domain.TaskID{"test_user_model"}, impl.DependsOn)
}

func TestGenerateVerificationPairsShareGroup(t *testing.T) {
	generator := NewGenerator(testProfileRegistry(), DefaultWeights())

	plan, err := generator.Generate(pairGraph())
	require.NoError(t, err)

	assignment, ok := plan.AssignmentFor("test_user_model")
	require.True(t, ok)

	group, ok := plan.GroupByLabel(assignment.ParallelGroup)
	require.True(t, ok)
	require.Contains(t, group.Tasks, domain.TaskID("test_user_model"))
	require.Contains(t, group.Tasks, domain.TaskID("test_order_model"))
	require.NotContains(t, group.Tasks, domain.TaskID("impl_user_model"))
	require.NotContains(t, group.Tasks, domain.TaskID("impl_order_model"))
}

func TestGenerateExecutionOrder(t *testing.T) {
	generator := NewGenerator(testProfileRegistry(), DefaultWeights())

	plan, err := generator.Generate(pairGraph())
	require.NoError(t, err)
	require.Equal(t, []domain.TaskID{
		"test_order_model", "test_user_model",
		"impl_order_model", "impl_user_model",
	}, plan.ExecutionOrder)
	requireTopological(t, plan.Tasks, plan.ExecutionOrder)
}

func TestGeneratePairContinuityAndCompliance(t *testing.T) {
	generator := NewGenerator(testProfileRegistry(), DefaultWeights())

	plan, err := generator.Generate(pairGraph())
	require.NoError(t, err)
	require.Len(t, plan.Assignments, 4)

	for _, a := range plan.Assignments {
		require.Equal(t, "backend_engineer", a.Profile)
	}

	var backend Utilization
	for _, u := range plan.Utilization {
		if u.Profile == "backend_engineer" {
			backend = u
		}
	}
	require.Equal(t, 4, backend.TaskCount)
	require.InDelta(t, 1.0, backend.Compliance, 1e-9)
	require.Empty(t, plan.Conflicts)
}

func TestGenerateCapacityConflict(t *testing.T) {
	registry := &profiles.Registry{
		Profiles: []profiles.Profile{
			{Name: "solo", ComplexityMin: 1, ComplexityMax: 8, MaxConcurrent: 1},
		},
	}
	generator := NewGenerator(registry, DefaultWeights())

	plan, err := generator.Generate(pairGraph())
	require.NoError(t, err)

	require.Len(t, plan.Conflicts, 2)
	require.Equal(t, Conflict{Profile: "solo", Group: "group_0_0", Assigned: 2, Capacity: 1}, plan.Conflicts[0])

	require.Len(t, plan.Utilization, 1)
	require.InDelta(t, 100.0, plan.Utilization[0].Percent, 1e-9)
	require.Equal(t, EfficiencyOverUtilized, plan.Utilization[0].Efficiency)
}

func TestGenerateTotalEffort(t *testing.T) {
	generator := NewGenerator(testProfileRegistry(), DefaultWeights())

	plan, err := generator.Generate(pairGraph())
	require.NoError(t, err)

	// Two implementations at 2 days plus two synthesized verifications
	// at 40% of that.
	require.Equal(t, domain.Duration("5.6 days"), plan.TotalEffort)
}

func TestGenerateDeterminism(t *testing.T) {
	generator := NewGenerator(testProfileRegistry(), DefaultWeights())

	first, err := generator.Generate(pairGraph())
	require.NoError(t, err)
	second, err := generator.Generate(pairGraph())
	require.NoError(t, err)

	hashFirst, err := canonical.Hash(first)
	require.NoError(t, err)
	hashSecond, err := canonical.Hash(second)
	require.NoError(t, err)
	require.Equal(t, hashFirst, hashSecond)
}

func TestGenerateNilGraph(t *testing.T) {
	generator := NewGenerator(testProfileRegistry(), DefaultWeights())

	_, err := generator.Generate(nil)
	require.Error(t, err)

	var merr *errors.MissionError
	require.True(t, stderrors.As(err, &merr))
	require.Equal(t, errors.ErrCodeMissionMissingInput, merr.Code)
}

func TestGenerateNoProfiles(t *testing.T) {
	generator := NewGenerator(&profiles.Registry{}, DefaultWeights())

	_, err := generator.Generate(pairGraph())
	require.Error(t, err)

	var merr *errors.MissionError
	require.True(t, stderrors.As(err, &merr))
	require.Equal(t, errors.ErrCodeMissionNoProfiles, merr.Code)
}

func TestGenerateEmptyGraph(t *testing.T) {
	generator := NewGenerator(testProfileRegistry(), DefaultWeights())

	plan, err := generator.Generate(&taskgraph.Result{})
	require.NoError(t, err)
	require.True(t, plan.IsEmpty())
	require.Empty(t, plan.Assignments)
	require.Empty(t, plan.ExecutionOrder)
	require.Empty(t, plan.ParallelGroups)
	require.Empty(t, plan.Conflicts)
	require.True(t, plan.TotalEffort.IsZero())

	require.Len(t, plan.Utilization, 3)
	for _, u := range plan.Utilization {
		require.Equal(t, 0, u.TaskCount)
		require.InDelta(t, 0.5, u.Compliance, 1e-9)
	}
}

// TestGenerateFromDefaultRegistries runs the whole pipeline on the
// embedded registries and checks the structural guarantees every plan
// must give.
func TestGenerateFromDefaultRegistries(t *testing.T) {
	phaseRegistry, err := templates.LoadPhaseRegistry()
	require.NoError(t, err)
	taskRegistry, err := templates.LoadTaskRegistry()
	require.NoError(t, err)
	profileRegistry, err := profiles.LoadRegistry()
	require.NoError(t, err)

	input := analysis.Result{Domain: "web", Complexity: analysis.ComplexityMedium}

	dec, err := decompose.NewDecomposer(phaseRegistry).Decompose(input)
	require.NoError(t, err)

	graph, err := taskgraph.NewBuilder(taskRegistry).Build(dec, input)
	require.NoError(t, err)
	require.NotEmpty(t, graph.Tasks)

	plan, err := NewGenerator(profileRegistry, DefaultWeights()).Generate(graph)
	require.NoError(t, err)

	require.Len(t, plan.ExecutionOrder, len(plan.Tasks))
	require.Len(t, plan.Assignments, len(plan.Tasks))
	requireTopological(t, plan.Tasks, plan.ExecutionOrder)

	position := make(map[domain.TaskID]int, len(plan.ExecutionOrder))
	for i, id := range plan.ExecutionOrder {
		position[id] = i
	}

	ids := make(map[domain.TaskID]bool, len(plan.Tasks))
	for _, task := range plan.Tasks {
		ids[task.ID] = true
	}

	profileNames := make(map[string]bool)
	for _, name := range profileRegistry.Names() {
		profileNames[name] = true
	}

	for _, task := range plan.Tasks {
		for _, dep := range task.DependsOn {
			require.True(t, ids[dep], "task %s depends on unknown %s", task.ID, dep)
		}

		if needsVerification(task) {
			ver := task.ID.VerificationID()
			require.True(t, ids[ver], "task %s has no verification pair", task.ID)
			require.Less(t, position[ver], position[task.ID],
				"verification %s not ahead of %s", ver, task.ID)
		}
	}

	for _, a := range plan.Assignments {
		require.True(t, profileNames[a.Profile], "unknown profile %s", a.Profile)
		require.GreaterOrEqual(t, a.Priority.Int(), 1)
		require.LessOrEqual(t, a.Priority.Int(), 10)
	}

	for _, u := range plan.Utilization {
		require.GreaterOrEqual(t, u.Percent, 0.0)
		require.LessOrEqual(t, u.Percent, 100.0)
	}

	// The deployment and testing phases carry gate work by name, so
	// some tasks must stay unpaired.
	var gates int
	for _, task := range plan.Tasks {
		if !task.IsVerification() && strings.Contains(strings.ToLower(task.Name), "deploy") {
			gates++
			require.False(t, ids[task.ID.VerificationID()],
				"gate task %s should not be paired", task.ID)
		}
	}
	require.Positive(t, gates)
}

func TestPlanRunsAllStages(t *testing.T) {
	phaseRegistry, err := templates.LoadPhaseRegistry()
	require.NoError(t, err)
	taskRegistry, err := templates.LoadTaskRegistry()
	require.NoError(t, err)
	profileRegistry, err := profiles.LoadRegistry()
	require.NoError(t, err)

	input := analysis.Result{Domain: "cli", Complexity: analysis.ComplexityLow}

	dec, graph, plan, err := Plan(input, phaseRegistry, taskRegistry, profileRegistry, DefaultWeights())
	require.NoError(t, err)

	require.NotEmpty(t, dec.Phases)
	require.NotEmpty(t, graph.Tasks)
	require.Len(t, plan.Assignments, len(plan.Tasks))
	requireTopological(t, plan.Tasks, plan.ExecutionOrder)
}

func TestPlanPropagatesStageErrors(t *testing.T) {
	phaseRegistry, err := templates.LoadPhaseRegistry()
	require.NoError(t, err)
	taskRegistry, err := templates.LoadTaskRegistry()
	require.NoError(t, err)

	input := analysis.Result{Domain: "cli", Complexity: analysis.ComplexityLow}

	_, _, _, err = Plan(input, phaseRegistry, taskRegistry, &profiles.Registry{}, DefaultWeights())
	require.Error(t, err)

	var merr *errors.MissionError
	require.True(t, stderrors.As(err, &merr))
	require.Equal(t, errors.ErrCodeMissionNoProfiles, merr.Code)
}
