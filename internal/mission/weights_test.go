package mission

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/missionmap/internal/errors"
)

func TestDefaultWeights(t *testing.T) {
	w := DefaultWeights()
	require.NoError(t, w.Validate())

	require.Equal(t, 10, w.Specialization)
	require.Equal(t, 8, w.ComplexityInRange)
	require.Equal(t, 4, w.ComplexityBelow)
	require.Equal(t, -5, w.ComplexityAbove)
	require.Equal(t, 9, w.VerificationMatch)
	require.Equal(t, 2, w.WorkloadPerSlot)
	require.Equal(t, -10, w.OverloadPenalty)
	require.Equal(t, 15, w.Continuity)
}

func TestWeightsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Weights)
		wantErr bool
	}{
		{name: "defaults pass", mutate: func(*Weights) {}},
		{name: "all zero passes", mutate: func(w *Weights) { *w = Weights{} }},
		{name: "negative bonus", mutate: func(w *Weights) { w.Specialization = -1 }, wantErr: true},
		{name: "negative workload factor", mutate: func(w *Weights) { w.WorkloadPerSlot = -2 }, wantErr: true},
		{name: "positive band penalty", mutate: func(w *Weights) { w.ComplexityAbove = 1 }, wantErr: true},
		{name: "positive overload penalty", mutate: func(w *Weights) { w.OverloadPenalty = 5 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := DefaultWeights()
			tt.mutate(&w)

			err := w.Validate()
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)

			var merr *errors.MissionError
			require.True(t, stderrors.As(err, &merr))
			require.Equal(t, errors.ErrCodeWeightsInvalid, merr.Code)
		})
	}
}

func TestLoadWeightsMissingFile(t *testing.T) {
	w, err := LoadWeights(filepath.Join(t.TempDir(), "weights.yaml"))
	require.NoError(t, err)
	require.Equal(t, DefaultWeights(), w)
}

func TestLoadWeightsPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.yaml")
	require.NoError(t, os.WriteFile(path, []byte("continuity: 20\nspecialization: 12\n"), 0o644))

	w, err := LoadWeights(path)
	require.NoError(t, err)
	require.Equal(t, 20, w.Continuity)
	require.Equal(t, 12, w.Specialization)
	require.Equal(t, DefaultWeights().ComplexityInRange, w.ComplexityInRange)
	require.Equal(t, DefaultWeights().OverloadPenalty, w.OverloadPenalty)
}

func TestLoadWeightsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.yaml")
	require.NoError(t, os.WriteFile(path, []byte("overload_penalty: 3\n"), 0o644))

	_, err := LoadWeights(path)
	require.Error(t, err)

	var merr *errors.MissionError
	require.True(t, stderrors.As(err, &merr))
	require.Equal(t, errors.ErrCodeWeightsInvalid, merr.Code)
}

func TestLoadWeightsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.yaml")
	require.NoError(t, os.WriteFile(path, []byte("specialization: [broken\n"), 0o644))

	_, err := LoadWeights(path)
	require.Error(t, err)

	var merr *errors.MissionError
	require.True(t, stderrors.As(err, &merr))
	require.Equal(t, errors.ErrCodeFileUnmarshal, merr.Code)
}
