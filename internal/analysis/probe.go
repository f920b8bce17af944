package analysis

import (
	"os"
	"path/filepath"
	"strings"
)

// markerFile ties a file name in the project root to the technologies it
// indicates. Order is significant so probe output is stable.
var markerFiles = []struct {
	name         string
	technologies []string
}{
	{name: "go.mod", technologies: []string{"go"}},
	{name: "package.json", technologies: []string{"javascript", "node"}},
	{name: "tsconfig.json", technologies: []string{"typescript"}},
	{name: "requirements.txt", technologies: []string{"python"}},
	{name: "pyproject.toml", technologies: []string{"python"}},
	{name: "Cargo.toml", technologies: []string{"rust"}},
	{name: "pom.xml", technologies: []string{"java"}},
	{name: "Dockerfile", technologies: []string{"docker"}},
	{name: "docker-compose.yml", technologies: []string{"docker"}},
}

// contentMarkers map substrings of a marker file's content to an extra
// technology, refining the file-level detection
var contentMarkers = []struct {
	file       string
	substring  string
	technology string
}{
	{file: "package.json", substring: "react", technology: "react"},
	{file: "package.json", substring: "vue", technology: "vue"},
	{file: "go.mod", substring: "grpc", technology: "grpc"},
	{file: "docker-compose.yml", substring: "postgres", technology: "postgres"},
	{file: "docker-compose.yml", substring: "redis", technology: "redis"},
}

// DetectStack inspects a project directory for well-known marker files and
// returns the technologies they indicate, in stable order. Missing files
// are skipped silently; only the directory itself must exist.
func DetectStack(dir string) ([]string, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, err
	}

	var detected []string
	seen := make(map[string]bool)

	add := func(tech string) {
		if !seen[tech] {
			detected = append(detected, tech)
			seen[tech] = true
		}
	}

	for _, marker := range markerFiles {
		if _, err := os.Stat(filepath.Join(dir, marker.name)); err != nil {
			continue
		}
		for _, tech := range marker.technologies {
			add(tech)
		}
	}

	for _, marker := range contentMarkers {
		data, err := os.ReadFile(filepath.Join(dir, marker.file))
		if err != nil {
			continue
		}
		if strings.Contains(string(data), marker.substring) {
			add(marker.technology)
		}
	}

	return detected, nil
}

// MergeTechnologies merges probed technologies into a result without
// duplicating entries already present
func MergeTechnologies(r Result, probed []string) Result {
	present := make(map[string]bool, len(r.Technologies))
	for _, tech := range r.Technologies {
		present[tech] = true
	}

	for _, tech := range probed {
		if !present[tech] {
			r.Technologies = append(r.Technologies, tech)
			present[tech] = true
		}
	}

	return r
}
