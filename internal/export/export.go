// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export renders hunt results as YAML or JSON. YAML is the
// primary format; JSON is offered for tooling that prefers it.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/gap-hunter/internal/pipeline"
	"github.com/pdiddy/gap-hunter/pkg/types"
)

// Format names an export encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Extension returns the conventional file extension for the format.
func (f Format) Extension() string {
	if f == FormatJSON {
		return ".json"
	}
	return ".yaml"
}

// ContentType returns the MIME type to serve the format under.
func (f Format) ContentType() string {
	if f == FormatJSON {
		return "application/json"
	}
	return "application/x-yaml"
}

// HuntFile is the on-disk representation of one hunt: the topic, the
// gap records, and a summary. A saved hunt can be reloaded later without
// re-querying APIs.
type HuntFile struct {
	Topic   string            `yaml:"topic" json:"topic"`
	Gaps    []types.GapRecord `yaml:"gaps" json:"gaps"`
	Summary HuntSummary       `yaml:"summary" json:"summary"`
}

// HuntSummary stores result statistics and a timestamp.
type HuntSummary struct {
	Total         int       `yaml:"total" json:"total"`
	FallbackUsed  bool      `yaml:"fallback_used,omitempty" json:"fallback_used,omitempty"`
	BackendErrors []string  `yaml:"backend_errors,omitempty" json:"backend_errors,omitempty"`
	Timestamp     time.Time `yaml:"timestamp" json:"timestamp"`
}

// FromResult packages a pipeline result into a HuntFile stamped now.
func FromResult(result pipeline.Result) HuntFile {
	return HuntFile{
		Topic: result.Topic,
		Gaps:  result.Gaps,
		Summary: HuntSummary{
			Total:         len(result.Gaps),
			FallbackUsed:  result.FallbackUsed,
			BackendErrors: result.BackendErrors,
			Timestamp:     time.Now(),
		},
	}
}

// Write encodes the hunt file to w in the given format.
func Write(w io.Writer, hf HuntFile, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(&hf); err != nil {
			return fmt.Errorf("encoding hunt as JSON: %w", err)
		}
	default:
		data, err := yaml.Marshal(&hf)
		if err != nil {
			return fmt.Errorf("encoding hunt as YAML: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
	}
	return nil
}

// WriteHuntFile saves the hunt to a file in the given format.
func WriteHuntFile(path string, hf HuntFile, format Format) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating hunt file: %w", err)
	}
	defer f.Close()

	if err := Write(f, hf, format); err != nil {
		return err
	}
	return f.Close()
}

// ReadHuntFile loads a previously saved YAML hunt file from disk.
func ReadHuntFile(path string) (*HuntFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading hunt file: %w", err)
	}
	var hf HuntFile
	if err := yaml.Unmarshal(data, &hf); err != nil {
		return nil, fmt.Errorf("parsing hunt file: %w", err)
	}
	return &hf, nil
}
