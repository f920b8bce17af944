package templates

import (
	"strings"
	"testing"
)

func validTaskRegistry() *TaskRegistry {
	return &TaskRegistry{
		PhaseTypes: []PhaseTypeTemplate{
			{
				PhaseType: "backend",
				Tasks: []TaskTemplate{
					{ID: "schema", Name: "Design data schema", Effort: "1 day", Complexity: 4, Priority: 8},
					{ID: "services", Name: "Implement core services", Effort: "3 days", Complexity: 6, Priority: 9, DependsOn: []string{"schema"}},
				},
			},
		},
		CountMultipliers: map[string]float64{"epic": 1.5},
	}
}

func TestTaskRegistryValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*TaskRegistry)
		wantErr string
	}{
		{name: "valid", mutate: func(r *TaskRegistry) {}},
		{
			name:    "no phase types",
			mutate:  func(r *TaskRegistry) { r.PhaseTypes = nil },
			wantErr: "no phase types",
		},
		{
			name: "duplicate phase type ignoring case",
			mutate: func(r *TaskRegistry) {
				r.PhaseTypes = append(r.PhaseTypes, PhaseTypeTemplate{
					PhaseType: "Backend",
					Tasks:     []TaskTemplate{{ID: "only", Name: "Only"}},
				})
			},
			wantErr: "duplicate phase type",
		},
		{
			name: "invalid suffix",
			mutate: func(r *TaskRegistry) {
				r.PhaseTypes[0].Tasks[0].ID = "Schema!"
			},
			wantErr: "invalid task suffix",
		},
		{
			name: "duplicate suffix",
			mutate: func(r *TaskRegistry) {
				r.PhaseTypes[0].Tasks[1].ID = "schema"
			},
			wantErr: "duplicate task suffix",
		},
		{
			name: "dependency on undeclared suffix",
			mutate: func(r *TaskRegistry) {
				r.PhaseTypes[0].Tasks[1].DependsOn = []string{"ghost"}
			},
			wantErr: "undeclared suffix",
		},
		{
			name: "self dependency",
			mutate: func(r *TaskRegistry) {
				r.PhaseTypes[0].Tasks[0].DependsOn = []string{"schema"}
			},
			wantErr: "depends on itself",
		},
		{
			name: "complexity out of range",
			mutate: func(r *TaskRegistry) {
				r.PhaseTypes[0].Tasks[0].Complexity = 11
			},
			wantErr: "complexity out of range",
		},
		{
			name: "priority out of range",
			mutate: func(r *TaskRegistry) {
				r.PhaseTypes[0].Tasks[0].Priority = 12
			},
			wantErr: "priority out of range",
		},
		{
			name: "unparseable effort",
			mutate: func(r *TaskRegistry) {
				r.PhaseTypes[0].Tasks[0].Effort = "a sprint"
			},
			wantErr: "invalid duration",
		},
		{
			name: "unknown multiplier label",
			mutate: func(r *TaskRegistry) {
				r.CountMultipliers["huge"] = 2.0
			},
			wantErr: "unknown complexity label",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := validTaskRegistry()
			tt.mutate(registry)
			err := registry.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestTaskRegistryLookup(t *testing.T) {
	registry := validTaskRegistry()

	if _, ok := registry.Lookup("backend"); !ok {
		t.Error("Lookup(backend) missed")
	}
	if _, ok := registry.Lookup("BACKEND"); !ok {
		t.Error("Lookup should be case-insensitive")
	}
	if _, ok := registry.Lookup("sorcery"); ok {
		t.Error("Lookup(sorcery) should miss")
	}
}

func TestCountMultiplierDefaultsToOne(t *testing.T) {
	registry := validTaskRegistry()

	if got := registry.CountMultiplier("epic"); got != 1.5 {
		t.Errorf("CountMultiplier(epic) = %v, want 1.5", got)
	}
	if got := registry.CountMultiplier("medium"); got != 1.0 {
		t.Errorf("CountMultiplier(medium) = %v, want 1.0 for missing label", got)
	}
}
