package mission

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/missionmap/internal/domain"
	"github.com/felixgeelhaar/missionmap/internal/errors"
	"github.com/felixgeelhaar/missionmap/internal/profiles"
	"github.com/felixgeelhaar/missionmap/internal/taskgraph"
)

func testProfileRegistry() *profiles.Registry {
	return &profiles.Registry{
		Profiles: []profiles.Profile{
			{
				Name:            "architect",
				Specializations: []string{"architecture", "design"},
				ComplexityMin:   3,
				ComplexityMax:   8,
				MaxConcurrent:   2,
			},
			{
				Name:            "backend_engineer",
				Specializations: []string{"backend", "api", "service"},
				ComplexityMin:   2,
				ComplexityMax:   8,
				MaxConcurrent:   3,
			},
			{
				Name:                  "qa_engineer",
				Specializations:      []string{"testing", "verification"},
				ComplexityMin:         1,
				ComplexityMax:         6,
				MaxConcurrent:         3,
				VerificationExpertise: true,
			},
		},
	}
}

func TestAssignPrefersSpecializationMatch(t *testing.T) {
	assigner := NewAssigner(testProfileRegistry(), DefaultWeights())

	assignments, err := assigner.Assign([]taskgraph.Task{
		{ID: "backend_services", Name: "Build service layer", PhaseType: "backend", Complexity: 5},
	})
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	require.Equal(t, "backend_engineer", assignments[0].Profile)
}

func TestAssignVerificationExpertiseWins(t *testing.T) {
	assigner := NewAssigner(testProfileRegistry(), DefaultWeights())

	assignments, err := assigner.Assign([]taskgraph.Task{
		{ID: "test_flows", Name: "Probe user flows", PhaseType: "frontend", Complexity: 2},
	})
	require.NoError(t, err)
	require.Equal(t, "qa_engineer", assignments[0].Profile)
}

func TestAssignContinuityKeepsPairTogether(t *testing.T) {
	assigner := NewAssigner(testProfileRegistry(), DefaultWeights())

	assignments, err := assigner.Assign([]taskgraph.Task{
		{ID: "impl_billing", Name: "Build billing engine", PhaseType: "backend", Complexity: 6,
			DependsOn: []domain.TaskID{"test_billing"}},
		{ID: "test_billing", Name: "Verify: Build billing engine", PhaseType: "backend", Complexity: 5},
	})
	require.NoError(t, err)
	require.Len(t, assignments, 2)
	require.Equal(t, "backend_engineer", assignments[0].Profile)
	require.Equal(t, "backend_engineer", assignments[1].Profile)
}

func TestAssignOverloadSpillsToNextProfile(t *testing.T) {
	registry := &profiles.Registry{
		Profiles: []profiles.Profile{
			{Name: "specialist", Specializations: []string{"widget"}, ComplexityMin: 2, ComplexityMax: 8, MaxConcurrent: 1},
			{Name: "generalist", ComplexityMin: 1, ComplexityMax: 8, MaxConcurrent: 3},
		},
	}
	assigner := NewAssigner(registry, DefaultWeights())

	assignments, err := assigner.Assign([]taskgraph.Task{
		{ID: "widget_frame", Name: "Build widget frame", Complexity: 4},
		{ID: "widget_trim", Name: "Polish widget trim", Complexity: 4},
	})
	require.NoError(t, err)
	require.Equal(t, "specialist", assignments[0].Profile)
	require.Equal(t, "generalist", assignments[1].Profile)
}

func TestAssignTieBreaksByDeclarationOrder(t *testing.T) {
	registry := &profiles.Registry{
		Profiles: []profiles.Profile{
			{Name: "alpha", ComplexityMin: 1, ComplexityMax: 8, MaxConcurrent: 2},
			{Name: "beta", ComplexityMin: 1, ComplexityMax: 8, MaxConcurrent: 2},
		},
	}
	assigner := NewAssigner(registry, DefaultWeights())

	assignments, err := assigner.Assign([]taskgraph.Task{
		{ID: "chore_one", Name: "File the paperwork", Complexity: 4},
	})
	require.NoError(t, err)
	require.Equal(t, "alpha", assignments[0].Profile)
}

func TestAssignNoProfiles(t *testing.T) {
	for _, registry := range []*profiles.Registry{nil, {}} {
		assigner := NewAssigner(registry, DefaultWeights())

		_, err := assigner.Assign([]taskgraph.Task{{ID: "impl_any", Complexity: 3}})
		require.Error(t, err)

		var merr *errors.MissionError
		require.True(t, stderrors.As(err, &merr))
		require.Equal(t, errors.ErrCodeMissionNoProfiles, merr.Code)
	}
}

func TestAssignCarriesEffortAndPriority(t *testing.T) {
	assigner := NewAssigner(testProfileRegistry(), DefaultWeights())

	assignments, err := assigner.Assign([]taskgraph.Task{
		{ID: "backend_schema", Name: "Model the schema", PhaseType: "backend", Effort: "2 days", Complexity: 4},
	})
	require.NoError(t, err)
	require.Equal(t, domain.Duration("2 days"), assignments[0].Effort)
	require.Equal(t, domain.Priority(8), assignments[0].Priority)
}

func TestTaskPriority(t *testing.T) {
	tests := []struct {
		name string
		task taskgraph.Task
		want domain.Priority
	}{
		{
			name: "low complexity with dependencies stays at base",
			task: taskgraph.Task{ID: "impl_base", Complexity: 2, DependsOn: []domain.TaskID{"impl_other"}},
			want: 5,
		},
		{
			name: "verification root with high complexity maxes out",
			task: taskgraph.Task{ID: "test_first", Complexity: 5},
			want: 10,
		},
		{
			name: "medium complexity root",
			task: taskgraph.Task{ID: "impl_mid", Complexity: 3},
			want: 7,
		},
		{
			name: "checkpoint bumps by one",
			task: taskgraph.Task{ID: "impl_gate", Complexity: 4, Checkpoint: true, DependsOn: []domain.TaskID{"impl_other"}},
			want: 8,
		},
		{
			name: "clamped at the ceiling",
			task: taskgraph.Task{ID: "test_peak", Complexity: 9, Checkpoint: true},
			want: 10,
		},
		{
			name: "trivial task with dependencies",
			task: taskgraph.Task{ID: "impl_trivial", Complexity: 1, DependsOn: []domain.TaskID{"impl_other"}},
			want: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, taskPriority(tt.task))
		})
	}
}
