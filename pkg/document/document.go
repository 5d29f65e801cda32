// Package document reads and writes assessments as YAML, TOML or JSON files.
// Every loaded document is validated before it is returned.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/toyinlola/coreiq/pkg/assessment"
)

// Format is an on-disk encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("document: unsupported file extension %q", filepath.Ext(path))
	}
}

// Decode parses and validates an assessment.
func Decode(data []byte, format Format) (*assessment.Assessment, error) {
	a := &assessment.Assessment{}
	if err := unmarshal(data, format, a); err != nil {
		return nil, err
	}
	// Enum names decode to their zero value when absent, so presence is
	// checked on the raw document before the tree is trusted.
	var names nameShape
	if err := unmarshal(data, format, &names); err != nil {
		return nil, err
	}
	if err := errors.Join(names.check(), a.Validate()); err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}
	return a, nil
}

func unmarshal(data []byte, format Format, v any) error {
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, v)
	case FormatTOML:
		err = toml.Unmarshal(data, v)
	case FormatJSON:
		err = json.Unmarshal(data, v)
	default:
		return fmt.Errorf("document: unsupported format %q", format)
	}
	if err != nil {
		return fmt.Errorf("document: parsing %s: %w", format, err)
	}
	return nil
}

// nameShape mirrors the function and component names of a document with
// pointers, so a missing name is distinguishable from OPS or FUNCTIONALITY.
type nameShape struct {
	Functions []struct {
		Name       *string `json:"name" yaml:"name" toml:"name"`
		Components []struct {
			Name *string `json:"name" yaml:"name" toml:"name"`
		} `json:"components" yaml:"components" toml:"components"`
	} `json:"functions" yaml:"functions" toml:"functions"`
}

func (n nameShape) check() error {
	var errs []error
	for i, fn := range n.Functions {
		if fn.Name == nil {
			errs = append(errs, fmt.Errorf("functions[%d]: %w", i, assessment.ErrMissingName))
		}
		for j, c := range fn.Components {
			if c.Name == nil {
				errs = append(errs, fmt.Errorf("functions[%d].components[%d]: %w", i, j, assessment.ErrMissingName))
			}
		}
	}
	return errors.Join(errs...)
}

// Encode serialises an assessment.
func Encode(a *assessment.Assessment, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(a); err != nil {
			return nil, fmt.Errorf("document: encoding yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("document: encoding yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatTOML:
		data, err := toml.Marshal(a)
		if err != nil {
			return nil, fmt.Errorf("document: encoding toml: %w", err)
		}
		return data, nil
	case FormatJSON:
		data, err := json.MarshalIndent(a, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("document: encoding json: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("document: unsupported format %q", format)
	}
}

// Load reads an assessment file, choosing the decoder by extension.
func Load(path string) (*assessment.Assessment, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("document: reading %s: %w", path, err)
	}
	a, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	slog.Debug("assessment loaded", "path", path, "id", a.ID, "format", format)
	return a, nil
}

// Save writes an assessment file. The file is written to a temporary sibling
// and renamed so a watcher never sees a partial document.
func Save(path string, a *assessment.Assessment) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Encode(a, format)
	if err != nil {
		return err
	}

	// CreateTemp opens files 0600; keep the existing file's mode instead.
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".coreiq-*")
	if err != nil {
		return fmt.Errorf("document: creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("document: writing %s: %w", path, err)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("document: writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("document: writing %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("document: replacing %s: %w", path, err)
	}
	slog.Debug("assessment saved", "path", path, "id", a.ID, "format", format)
	return nil
}
