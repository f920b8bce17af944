package cmd

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/missionmap/internal/analysis"
	"github.com/felixgeelhaar/missionmap/internal/errors"
)

func TestEnrichFromDirNoop(t *testing.T) {
	in := analysis.Result{Domain: "api", Technologies: []string{"go"}}

	out, err := enrichFromDir(in, "")
	if err != nil {
		t.Fatalf("enrichFromDir() error = %v", err)
	}
	if len(out.Technologies) != 1 || out.Technologies[0] != "go" {
		t.Errorf("empty dir should change nothing, got %v", out.Technologies)
	}
}

func TestEnrichFromDirMergesMarkers(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module probe\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	compose := "services:\n  db:\n    image: postgres:16\n"
	if err := os.WriteFile(filepath.Join(dir, "docker-compose.yml"), []byte(compose), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := enrichFromDir(analysis.Result{Domain: "api"}, dir)
	if err != nil {
		t.Fatalf("enrichFromDir() error = %v", err)
	}

	found := make(map[string]bool)
	for _, tech := range out.Technologies {
		found[tech] = true
	}
	for _, want := range []string{"go", "docker", "postgres"} {
		if !found[want] {
			t.Errorf("technologies %v missing %q", out.Technologies, want)
		}
	}
}

func TestEnrichFromDirMissingDir(t *testing.T) {
	_, err := enrichFromDir(analysis.Result{}, filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("expected an error for a missing directory")
	}

	var merr *errors.MissionError
	if !stderrors.As(err, &merr) {
		t.Fatalf("error is %T", err)
	}
	if merr.Code != errors.ErrCodeFileNotFound {
		t.Errorf("Code = %s, want %s", merr.Code, errors.ErrCodeFileNotFound)
	}
}
