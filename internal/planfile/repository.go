package planfile

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/missionmap/internal/errors"
)

// Repository loads and saves mission documents. The interface exists
// for dependency injection; production code uses the file
// implementation.
type Repository interface {
	Load(path string) (*Document, error)
	Save(doc *Document, path string) error
}

// FileRepository stores documents as YAML files
type FileRepository struct{}

// NewFileRepository creates a file-based document repository
func NewFileRepository() *FileRepository {
	return &FileRepository{}
}

// Load reads a document from a YAML file. Loading does not validate;
// callers decide how strict to be with what they read.
func (r *FileRepository) Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeDocumentNotFound,
				fmt.Sprintf("mission document not found: %s", path)).
				WithSuggestion("Run 'missionmap generate' to create one").
				WithSuggestion("Check the path for typos")
		}
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed,
			fmt.Sprintf("failed to read mission document %s", path), err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewFileUnmarshalError(path, "YAML", err)
	}
	return &doc, nil
}

// Save writes a document to a YAML file, creating parent directories
// as needed
func (r *FileRepository) Save(doc *Document, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return errors.Wrap(errors.ErrCodeDirectoryFailed,
			fmt.Sprintf("failed to create directory %s", dir), err)
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileMarshal,
			"failed to marshal mission document", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed,
			fmt.Sprintf("failed to write mission document %s", path), err)
	}
	return nil
}

var defaultRepository = NewFileRepository()

// Load reads a document using the default repository
func Load(path string) (*Document, error) {
	return defaultRepository.Load(path)
}

// Save writes a document using the default repository
func Save(doc *Document, path string) error {
	return defaultRepository.Save(doc, path)
}

// Compile-time interface check
var _ Repository = (*FileRepository)(nil)
