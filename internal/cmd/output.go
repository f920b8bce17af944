package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/missionmap/internal/errors"
)

// marshalAs renders v in the requested output format. Both formats use
// the same struct tags, so field names match across them.
func marshalAs(v any, format string) ([]byte, error) {
	switch format {
	case "", "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFileMarshal, "failed to render YAML output", err)
		}
		return data, nil
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFileMarshal, "failed to render JSON output", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, errors.New(errors.ErrCodeSettingsInvalid,
			fmt.Sprintf("unsupported output format %q: must be yaml or json", format))
	}
}

// writeOutput writes data to path, or to stdout when path is empty or "-"
func writeOutput(data []byte, path string) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return errors.Wrap(errors.ErrCodeDirectoryFailed,
				fmt.Sprintf("failed to create directory %s", dir), err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed,
			fmt.Sprintf("failed to write %s", path), err)
	}
	return nil
}

// resolveOutPath expands a directory target into a slugged file name, so
// `--out plans/` drops a document named after the mission inside it.
// Non-directory targets pass through unchanged.
func resolveOutPath(out, name, format string) string {
	if out == "" || out == "-" {
		return out
	}

	dirTarget := strings.HasSuffix(out, "/") || strings.HasSuffix(out, string(os.PathSeparator))
	if !dirTarget {
		if info, err := os.Stat(out); err == nil && info.IsDir() {
			dirTarget = true
		}
	}
	if !dirTarget {
		return out
	}

	base := slug.Make(name)
	if base == "" {
		base = "mission"
	}
	ext := ".yaml"
	if format == "json" {
		ext = ".json"
	}
	return filepath.Join(out, base+ext)
}
