package profiles

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

// RegistryFile is the file name recognized inside a profile directory
const RegistryFile = "profiles.yaml"

// Repository provides access to a validated profile registry
type Repository interface {
	Registry() (*Registry, error)
}

// FileRepository loads the registry from a directory. A project file
// merges over the embedded defaults rather than replacing them, so a
// project can tune one profile without redeclaring the rest.
type FileRepository struct {
	dir string

	mu       sync.Mutex
	registry *Registry
}

// NewFileRepository creates a repository rooted at dir. An empty dir
// serves the embedded defaults only.
func NewFileRepository(dir string) *FileRepository {
	return &FileRepository{dir: dir}
}

// Registry returns the profile registry, loading it on first use
func (r *FileRepository) Registry() (*Registry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.registry != nil {
		return r.registry, nil
	}

	base, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	registry := base
	if r.dir != "" {
		overlay, err := loadOverlay(filepath.Join(r.dir, RegistryFile))
		if err != nil {
			return nil, err
		}
		if overlay != nil {
			registry = base.Merge(overlay)
		}
	}

	if err := registry.Validate(); err != nil {
		return nil, err
	}

	r.registry = registry
	return r.registry, nil
}

// loadDefaults parses the embedded registry
func loadDefaults() (*Registry, error) {
	data, err := defaultsFS.ReadFile("defaults/" + RegistryFile)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed,
			"embedded profile registry is missing", err)
	}

	var registry Registry
	if err := yaml.Unmarshal(data, &registry); err != nil {
		return nil, errors.NewFileUnmarshalError(RegistryFile, "YAML", err)
	}
	return &registry, nil
}

// loadOverlay parses an optional project registry, nil when absent
func loadOverlay(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed,
			fmt.Sprintf("failed to read profile registry %s", path), err)
	}

	var registry Registry
	if err := yaml.Unmarshal(data, &registry); err != nil {
		return nil, errors.NewFileUnmarshalError(path, "YAML", err)
	}
	return &registry, nil
}

var defaultRepository = NewFileRepository("")

// LoadRegistry loads the embedded default profile registry
func LoadRegistry() (*Registry, error) {
	return defaultRepository.Registry()
}

// LoadRegistryFromFile merges the registry at path over the embedded
// defaults. Unlike the directory overlay, a missing file is an error
// because the caller named it explicitly.
func LoadRegistryFromFile(path string) (*Registry, error) {
	base, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	overlay, err := loadOverlay(path)
	if err != nil {
		return nil, err
	}
	if overlay == nil {
		return nil, errors.NewFileNotFoundError(path)
	}

	registry := base.Merge(overlay)
	if err := registry.Validate(); err != nil {
		return nil, err
	}
	return registry, nil
}

// Compile-time interface check
var _ Repository = (*FileRepository)(nil)
