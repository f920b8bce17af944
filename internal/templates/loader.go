package templates

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/missionmap/internal/errors"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// Registry file names recognized inside a template directory
const (
	PhaseRegistryFile = "phase_templates.yaml"
	TaskRegistryFile  = "task_templates.yaml"
)

// Repository provides access to validated template registries
type Repository interface {
	PhaseRegistry() (*PhaseRegistry, error)
	TaskRegistry() (*TaskRegistry, error)
}

// FileRepository loads registries from a directory, falling back to the
// embedded defaults when a file is absent. Loaded registries are cached.
type FileRepository struct {
	dir string

	mu    sync.Mutex
	phase *PhaseRegistry
	task  *TaskRegistry
}

// NewFileRepository creates a repository rooted at dir. An empty dir
// serves the embedded defaults only.
func NewFileRepository(dir string) *FileRepository {
	return &FileRepository{dir: dir}
}

// PhaseRegistry returns the phase registry, loading it on first use
func (r *FileRepository) PhaseRegistry() (*PhaseRegistry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != nil {
		return r.phase, nil
	}

	data, err := r.readRegistry(PhaseRegistryFile)
	if err != nil {
		return nil, err
	}

	var registry PhaseRegistry
	if err := yaml.Unmarshal(data, &registry); err != nil {
		return nil, errors.NewFileUnmarshalError(PhaseRegistryFile, "YAML", err)
	}
	if err := registry.Validate(); err != nil {
		return nil, err
	}

	r.phase = &registry
	return r.phase, nil
}

// TaskRegistry returns the task registry, loading it on first use
func (r *FileRepository) TaskRegistry() (*TaskRegistry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.task != nil {
		return r.task, nil
	}

	data, err := r.readRegistry(TaskRegistryFile)
	if err != nil {
		return nil, err
	}

	var registry TaskRegistry
	if err := yaml.Unmarshal(data, &registry); err != nil {
		return nil, errors.NewFileUnmarshalError(TaskRegistryFile, "YAML", err)
	}
	if err := registry.Validate(); err != nil {
		return nil, err
	}

	r.task = &registry
	return r.task, nil
}

// readRegistry resolves a registry file from the directory override
// first, then the embedded defaults
func (r *FileRepository) readRegistry(name string) ([]byte, error) {
	if r.dir != "" {
		path := filepath.Join(r.dir, name)
		data, err := os.ReadFile(path)
		if err == nil {
			return data, nil
		}
		if !os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileReadFailed,
				fmt.Sprintf("failed to read template registry %s", path), err)
		}
	}

	data, err := defaultsFS.ReadFile("defaults/" + name)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed,
			fmt.Sprintf("embedded template registry %s is missing", name), err)
	}
	return data, nil
}

var defaultRepository = NewFileRepository("")

// LoadPhaseRegistry loads the embedded default phase registry
func LoadPhaseRegistry() (*PhaseRegistry, error) {
	return defaultRepository.PhaseRegistry()
}

// LoadTaskRegistry loads the embedded default task registry
func LoadTaskRegistry() (*TaskRegistry, error) {
	return defaultRepository.TaskRegistry()
}

// Compile-time interface check
var _ Repository = (*FileRepository)(nil)
