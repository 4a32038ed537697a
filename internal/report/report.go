// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report describes a converted mesh as YAML: record counts,
// bounding box, and where the document came from.
package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/playcanvas2obj/internal/mesh"
	"github.com/pdiddy/playcanvas2obj/pkg/types"
)

// Report is the on-disk representation of a conversion.
type Report struct {
	Source      string                  `yaml:"source"`
	Output      string                  `yaml:"output,omitempty"`
	NormalIndex types.NormalIndexScheme `yaml:"normal_index,omitempty"`
	Counts      Counts                  `yaml:"counts"`
	Bounds      *Bounds                 `yaml:"bounds,omitempty"`
	Timestamp   time.Time               `yaml:"timestamp"`
}

// Counts holds the number of records of each kind.
type Counts struct {
	Vertices    int `yaml:"vertices"`
	Normals     int `yaml:"normals"`
	UnitNormals int `yaml:"unit_normals"`
	Faces       int `yaml:"faces"`
}

// Bounds is the axis-aligned bounding box of the vertices.
type Bounds struct {
	Min [3]float64 `yaml:"min,flow"`
	Max [3]float64 `yaml:"max,flow"`
}

// Build summarizes m, read from source.
func Build(source string, m *mesh.Mesh) Report {
	r := Report{
		Source: source,
		Counts: Counts{
			Vertices:    len(m.Vertices),
			Normals:     len(m.Normals),
			UnitNormals: m.UnitNormals(),
			Faces:       len(m.Faces),
		},
		Timestamp: time.Now().UTC(),
	}
	if len(m.Vertices) > 0 {
		lo, hi := m.Bounds()
		r.Bounds = &Bounds{Min: lo, Max: hi}
	}
	return r
}

// Encode writes r to w as YAML.
func Encode(w io.Writer, r Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return enc.Close()
}

// Write saves r to path.
func Write(path string, r Report) error {
	data, err := yaml.Marshal(&r)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Read loads a report previously saved with Write.
func Read(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing report: %w", err)
	}
	return &r, nil
}
