// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/juanvillada/givelit/internal/coverage"
	"github.com/juanvillada/givelit/pkg/types"
)

// Manifest is the YAML record of one radar run: what was asked, how it was
// configured and what came back.
type Manifest struct {
	Query   ManifestQuery     `yaml:"query"`
	Config  map[string]string `yaml:"config"`
	Results []types.Paper     `yaml:"results"`
	Summary ManifestSummary   `yaml:"summary"`
}

// ManifestQuery stores the query parameters.
type ManifestQuery struct {
	Keywords []string `yaml:"keywords"`
	Journals []string `yaml:"journals"`
}

// ManifestSummary stores result statistics and a timestamp.
type ManifestSummary struct {
	Total     int                    `yaml:"total"`
	Journals  []JournalRow           `yaml:"journals,omitempty"`
	Coverage  map[coverage.Level]int `yaml:"coverage,omitempty"`
	Missing   []string               `yaml:"missing_journals,omitempty"`
	Timestamp time.Time              `yaml:"timestamp"`
}

// NewManifest builds the manifest for in.
func NewManifest(in Input) Manifest {
	m := Manifest{
		Query:   ManifestQuery{Keywords: in.Keywords, Journals: in.Journals},
		Config:  in.Options,
		Results: in.Papers,
		Summary: ManifestSummary{
			Total:     len(in.Papers),
			Journals:  Summarise(in.Papers),
			Coverage:  coverage.Counts(in.Coverage),
			Missing:   in.Missing,
			Timestamp: in.Generated.UTC(),
		},
	}
	if m.Results == nil {
		m.Results = []types.Paper{}
	}
	return m
}

// WriteManifest encodes the run manifest as YAML to w.
func WriteManifest(w io.Writer, in Input) error {
	m := NewManifest(in)
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&m); err != nil {
		return fmt.Errorf("encoding run manifest: %w", err)
	}
	return enc.Close()
}

// ReadManifest loads a previously saved manifest from disk.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}

// Input rebuilds the renderer input of a saved run. Coverage tiers are derived
// again from the stored match counts; paper order is kept as saved.
func (m Manifest) Input() Input {
	return Input{
		Papers:    m.Results,
		Keywords:  m.Query.Keywords,
		Journals:  m.Query.Journals,
		Options:   m.Config,
		Missing:   m.Summary.Missing,
		Coverage:  coverage.Group(m.Results, len(m.Query.Keywords)),
		Generated: m.Summary.Timestamp,
	}
}
