package mission

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/missionmap/internal/canonical"
	"github.com/felixgeelhaar/missionmap/internal/domain"
	"github.com/felixgeelhaar/missionmap/internal/taskgraph"
)

func TestInjectSynthesizesMissingPair(t *testing.T) {
	tasks := []taskgraph.Task{
		{
			ID:         "impl_user_model",
			Name:       "Build user model",
			Phase:      "backend",
			PhaseType:  "backend",
			Effort:     "2 days",
			Complexity: 5,
			Profile:    "backend_engineer",
		},
	}

	out := NewInjector().Inject(tasks)
	require.Len(t, out, 2)

	impl := out[0]
	require.Equal(t, domain.TaskID("impl_user_model"), impl.ID)
	require.Equal(t, []domain.TaskID{"test_user_model"}, impl.DependsOn)

	ver := out[1]
	require.Equal(t, domain.TaskID("test_user_model"), ver.ID)
	require.True(t, ver.IsVerification())
	require.Empty(t, ver.DependsOn)
	require.Equal(t, "Verify: Build user model", ver.Name)
	require.Equal(t, domain.PhaseID("backend"), ver.Phase)
	require.Equal(t, "backend", ver.PhaseType)
	require.Equal(t, domain.Duration("6.4 hours"), ver.Effort)
	require.Equal(t, domain.Complexity(4), ver.Complexity)
	require.Equal(t, "backend_engineer", ver.Profile)
	require.Equal(t, []string{"test suite for impl_user_model"}, ver.Artifacts)
	require.Contains(t, ver.Criteria, "Must fail before implementation exists")
}

func TestInjectPairsUnprefixedTask(t *testing.T) {
	tasks := []taskgraph.Task{
		{ID: "backend_services", Name: "Build service layer", Complexity: 4},
	}

	out := NewInjector().Inject(tasks)
	require.Len(t, out, 2)
	require.Equal(t, []domain.TaskID{"test_backend_services"}, out[0].DependsOn)
	require.Equal(t, domain.TaskID("test_backend_services"), out[1].ID)
}

func TestInjectSkipsGateTasks(t *testing.T) {
	tasks := []taskgraph.Task{
		{ID: "deployment_production", Name: "Deploy to production", Complexity: 3},
		{ID: "data_quality", Name: "Validate data quality", Complexity: 3},
		{ID: "testing_regressions", Name: "Check for regressions", Complexity: 3},
		{ID: "design_signoff", Name: "Review design", Complexity: 2},
		{ID: "testing_performance", Name: "Audit performance", Complexity: 3},
		{ID: "deployment_rollback", Name: "Verify rollback path", Complexity: 3},
	}

	out := NewInjector().Inject(tasks)
	require.Len(t, out, len(tasks))
	for i, task := range out {
		require.Equal(t, tasks[i].ID, task.ID)
		require.Empty(t, task.DependsOn)
	}
}

func TestInjectKeepsExistingPair(t *testing.T) {
	tasks := []taskgraph.Task{
		{ID: "impl_api", Name: "Build API", Complexity: 4},
		{ID: "test_api", Name: "Exercise the API", Complexity: 3},
	}

	out := NewInjector().Inject(tasks)
	require.Len(t, out, 2)
	require.Equal(t, []domain.TaskID{"test_api"}, out[0].DependsOn)
	require.Equal(t, "Exercise the API", out[1].Name)
	require.Empty(t, out[1].DependsOn)
}

func TestInjectIdempotent(t *testing.T) {
	tasks := []taskgraph.Task{
		{ID: "impl_user_model", Name: "Build user model", Effort: "2 days", Complexity: 5},
		{ID: "backend_services", Name: "Build service layer", Effort: "3 days", Complexity: 6},
		{ID: "deployment_production", Name: "Deploy to production", Complexity: 3},
	}

	injector := NewInjector()
	once := injector.Inject(tasks)
	twice := injector.Inject(once)

	require.Len(t, twice, len(once))

	hashOnce, err := canonical.Hash(once)
	require.NoError(t, err)
	hashTwice, err := canonical.Hash(twice)
	require.NoError(t, err)
	require.Equal(t, hashOnce, hashTwice)
}

func TestInjectComplexityFloor(t *testing.T) {
	out := NewInjector().Inject([]taskgraph.Task{
		{ID: "impl_tiny", Name: "Wire tiny helper", Complexity: 1},
	})

	require.Len(t, out, 2)
	require.Equal(t, domain.Complexity(1), out[1].Complexity)
}

func TestInjectWithoutEffort(t *testing.T) {
	out := NewInjector().Inject([]taskgraph.Task{
		{ID: "impl_sketch", Name: "Sketch the flow", Complexity: 2},
	})

	require.Len(t, out, 2)
	require.True(t, out[1].Effort.IsZero())
}

func TestInjectDoesNotMutateInput(t *testing.T) {
	tasks := []taskgraph.Task{
		{ID: "impl_api", Name: "Build API", Complexity: 4},
	}

	NewInjector().Inject(tasks)
	require.Empty(t, tasks[0].DependsOn)
}
