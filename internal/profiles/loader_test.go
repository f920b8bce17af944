package profiles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/missionmap/internal/templates"
)

func TestLoadDefaultRegistry(t *testing.T) {
	registry, err := LoadRegistry()
	if err != nil {
		t.Fatalf("LoadRegistry() error = %v", err)
	}

	for _, want := range []string{
		"architect", "backend_engineer", "frontend_engineer",
		"data_engineer", "platform_engineer", "qa_engineer",
	} {
		if _, ok := registry.Lookup(want); !ok {
			t.Errorf("default registry missing profile %q", want)
		}
	}

	qa, _ := registry.Lookup("qa_engineer")
	if !qa.VerificationExpertise {
		t.Error("qa_engineer should carry verification expertise")
	}
}

// Every profile hint in the default task templates must name a profile
// the default registry declares, or assignment would silently lose the
// hint.
func TestDefaultTaskTemplatesReferenceKnownProfiles(t *testing.T) {
	registry, err := LoadRegistry()
	if err != nil {
		t.Fatalf("LoadRegistry() error = %v", err)
	}
	tasks, err := templates.LoadTaskRegistry()
	if err != nil {
		t.Fatalf("LoadTaskRegistry() error = %v", err)
	}

	for _, phaseType := range tasks.PhaseTypes {
		for _, task := range phaseType.Tasks {
			if task.Profile == "" {
				continue
			}
			if _, ok := registry.Lookup(task.Profile); !ok {
				t.Errorf("phase type %q task %q hints unknown profile %q",
					phaseType.PhaseType, task.ID, task.Profile)
			}
		}
	}
}

func TestFileRepositoryMergesProjectOverlay(t *testing.T) {
	dir := t.TempDir()
	overlay := `
profiles:
  - name: qa_engineer
    specializations: [testing]
    complexity_min: 1
    complexity_max: 9
    max_concurrent: 1
    verification_expertise: true
  - name: reviewer
    complexity_min: 1
    complexity_max: 5
    max_concurrent: 2
`
	if err := os.WriteFile(filepath.Join(dir, RegistryFile), []byte(overlay), 0o644); err != nil {
		t.Fatal(err)
	}

	registry, err := NewFileRepository(dir).Registry()
	if err != nil {
		t.Fatalf("Registry() error = %v", err)
	}

	qa, ok := registry.Lookup("qa_engineer")
	if !ok {
		t.Fatal("qa_engineer missing after merge")
	}
	if qa.MaxConcurrent != 1 || qa.ComplexityMax != 9 {
		t.Error("project overlay should replace the default qa_engineer")
	}
	if _, ok := registry.Lookup("reviewer"); !ok {
		t.Error("project-only profiles should be appended")
	}
	if _, ok := registry.Lookup("architect"); !ok {
		t.Error("defaults not named by the overlay should survive the merge")
	}
}

func TestFileRepositoryWithoutOverlayServesDefaults(t *testing.T) {
	registry, err := NewFileRepository(t.TempDir()).Registry()
	if err != nil {
		t.Fatalf("Registry() error = %v", err)
	}
	if len(registry.Profiles) == 0 {
		t.Fatal("expected embedded default profiles")
	}
}

func TestFileRepositoryRejectsInvalidOverlay(t *testing.T) {
	dir := t.TempDir()
	overlay := `
profiles:
  - name: broken
    complexity_min: 5
    complexity_max: 2
    max_concurrent: 1
`
	if err := os.WriteFile(filepath.Join(dir, RegistryFile), []byte(overlay), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFileRepository(dir).Registry(); err == nil {
		t.Error("Registry() should reject an invalid merged registry")
	}
}
