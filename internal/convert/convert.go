// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert drives the document-to-OBJ conversion: it extracts the
// whole mesh first and only then writes it, so a document that fails
// validation produces no output at all.
package convert

import (
	"fmt"
	"io"

	"github.com/pdiddy/playcanvas2obj/internal/mesh"
	"github.com/pdiddy/playcanvas2obj/internal/objfile"
	"github.com/pdiddy/playcanvas2obj/pkg/types"
)

// Options control how a mesh is written.
type Options struct {
	NormalIndex types.NormalIndexScheme
}

// Result holds the outcome of a conversion.
type Result struct {
	Mesh *mesh.Mesh
}

// Vertices returns the number of v records written.
func (r Result) Vertices() int { return len(r.Mesh.Vertices) }

// Normals returns the number of vn records written.
func (r Result) Normals() int { return len(r.Mesh.Normals) }

// Faces returns the number of f records written.
func (r Result) Faces() int { return len(r.Mesh.Faces) }

// Summary formats the record counts for status output.
func (r Result) Summary() string {
	return fmt.Sprintf("%d vertices, %d normals, %d faces", r.Vertices(), r.Normals(), r.Faces())
}

// Convert extracts vertices, normals, and faces from doc and writes them to
// w as OBJ. Nothing is written if extraction fails.
func Convert(doc *types.Document, w io.Writer, opts Options) (*Result, error) {
	scheme := opts.NormalIndex
	if scheme == "" {
		scheme = types.NormalIndexPosition
	}
	if !scheme.Valid() {
		return nil, fmt.Errorf("unknown normal index scheme: %q", scheme)
	}

	m, err := mesh.Extract(doc)
	if err != nil {
		return nil, err
	}

	if err := objfile.Write(w, m, scheme); err != nil {
		return nil, fmt.Errorf("writing OBJ: %w", err)
	}
	return &Result{Mesh: m}, nil
}

// Inspect validates doc without writing anything.
func Inspect(doc *types.Document) (*Result, error) {
	m, err := mesh.Extract(doc)
	if err != nil {
		return nil, err
	}
	return &Result{Mesh: m}, nil
}
