//go:build integration
// +build integration

package analysis_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/felixgeelhaar/missionmap/internal/analysis"
)

// TestProbeSampleProject probes the bundled sample project and checks
// the full marker set it was built to exercise.
func TestProbeSampleProject(t *testing.T) {
	project, err := filepath.Abs(filepath.Join("..", "..", "..", "examples", "projects", "payments-service"))
	if err != nil {
		t.Fatalf("Failed to resolve sample project: %v", err)
	}
	if _, err := os.Stat(project); err != nil {
		t.Skipf("Sample project not present: %v", err)
	}

	detected, err := analysis.DetectStack(project)
	if err != nil {
		t.Fatalf("DetectStack() error = %v", err)
	}

	want := []string{"go", "docker", "grpc", "postgres", "redis"}
	if !reflect.DeepEqual(detected, want) {
		t.Errorf("DetectStack() = %v, want %v", detected, want)
	}

	t.Logf("Sample project stack: %v", detected)
}

// TestProbeMultiMarkerWorkspace builds a frontend workspace on disk
// and checks file and content markers together.
func TestProbeMultiMarkerWorkspace(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"package.json":  `{"dependencies": {"react": "^18.0.0"}}`,
		"tsconfig.json": `{"compilerOptions": {"strict": true}}`,
		"Dockerfile":    "FROM node:20-alpine\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	detected, err := analysis.DetectStack(dir)
	if err != nil {
		t.Fatalf("DetectStack() error = %v", err)
	}

	want := []string{"javascript", "node", "typescript", "docker", "react"}
	if !reflect.DeepEqual(detected, want) {
		t.Errorf("DetectStack() = %v, want %v", detected, want)
	}
}

// TestProbeMergesIntoClassification runs the real classification chain
// and folds a probed stack into its result.
func TestProbeMergesIntoClassification(t *testing.T) {
	dir := t.TempDir()
	goMod := "module example.com/svc\n\ngo 1.23\n\nrequire google.golang.org/grpc v1.68.0\n"
	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte(goMod), 0644); err != nil {
		t.Fatalf("Failed to write go.mod: %v", err)
	}

	classified, err := analysis.NewKeywordAnalyzer().Analyze("add streaming endpoints to the inventory service")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	classified, err = analysis.DefaultChain().Refine(classified)
	if err != nil {
		t.Fatalf("Refine() error = %v", err)
	}

	probed, err := analysis.DetectStack(dir)
	if err != nil {
		t.Fatalf("DetectStack() error = %v", err)
	}

	merged := analysis.MergeTechnologies(classified, probed)

	present := make(map[string]int)
	for _, tech := range merged.Technologies {
		present[tech]++
	}
	for _, tech := range probed {
		if present[tech] == 0 {
			t.Errorf("Probed technology %q missing after merge", tech)
		}
	}
	for tech, count := range present {
		if count > 1 {
			t.Errorf("Technology %q duplicated %d times after merge", tech, count)
		}
	}

	t.Logf("Classified domain: %s (%s)", merged.Domain, merged.Complexity)
	t.Logf("Merged technologies: %v", merged.Technologies)
}

// TestProbeEmptyProject checks that a directory without markers probes
// clean.
func TestProbeEmptyProject(t *testing.T) {
	detected, err := analysis.DetectStack(t.TempDir())
	if err != nil {
		t.Fatalf("DetectStack() error = %v", err)
	}
	if len(detected) != 0 {
		t.Errorf("Expected no technologies in an empty directory, got %v", detected)
	}
}

// TestProbeMissingDirectory checks the only hard failure: the project
// directory itself must exist.
func TestProbeMissingDirectory(t *testing.T) {
	_, err := analysis.DetectStack(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("Expected error for missing directory, got nil")
	}
}
