// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mesh extracts vertex coordinates and triangle faces from a
// PlayCanvas model document, validating the document layout on the way.
//
// Only the simplest layout is supported: a single vertex buffer holding
// 3-component position and normal attributes, and a single triangle-list
// mesh that starts at index 0 of that buffer.
package mesh

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pdiddy/playcanvas2obj/internal/batch"
	"github.com/pdiddy/playcanvas2obj/pkg/types"
)

// Coord is a 3D position or normal.
type Coord = mgl64.Vec3

// Face holds the 1-based vertex indices of a triangle.
type Face [3]int

// Mesh is the extracted geometry of a document.
type Mesh struct {
	Vertices []Coord
	Normals  []Coord
	Faces    []Face
}

// Extract reads positions, normals, and faces from doc. Extraction is eager:
// either the whole mesh is returned or the first validation error.
func Extract(doc *types.Document) (*Mesh, error) {
	vertices, err := ExtractCoords(doc, types.AttrPosition)
	if err != nil {
		return nil, err
	}
	normals, err := ExtractCoords(doc, types.AttrNormal)
	if err != nil {
		return nil, err
	}
	faces, err := ExtractFaces(doc, len(vertices))
	if err != nil {
		return nil, err
	}
	return &Mesh{Vertices: vertices, Normals: normals, Faces: faces}, nil
}

// ExtractCoords returns the 3D tuples of the attribute named key
// ("position" or "normal") of the document's vertex buffer.
func ExtractCoords(doc *types.Document, key string) ([]Coord, error) {
	model, err := modelOf(doc)
	if err != nil {
		return nil, err
	}
	if n := len(model.Vertices); n != 1 {
		return nil, structuralf("expected exactly 1 vertex buffer, found %d", n)
	}
	block := model.Vertices[0][key]
	if block == nil {
		return nil, structuralf("vertex buffer has no %q attribute", key)
	}
	if block.Components != 3 {
		return nil, structuralf("%s has %d components, only 3 are supported", key, block.Components)
	}

	coords := make([]Coord, 0, len(block.Data)/block.Components)
	for g, err := range batch.Batches(block.Data, block.Components) {
		if err != nil {
			return nil, fmt.Errorf("%s data: %w", key, err)
		}
		coords = append(coords, Coord{g[0], g[1], g[2]})
	}
	return coords, nil
}

// ExtractFaces returns the triangles of the document's mesh as 1-based
// indices. Every raw index must be below vertexCount.
func ExtractFaces(doc *types.Document, vertexCount int) ([]Face, error) {
	model, err := modelOf(doc)
	if err != nil {
		return nil, err
	}
	if n := len(model.Meshes); n != 1 {
		return nil, structuralf("expected exactly 1 mesh, found %d", n)
	}
	m := model.Meshes[0]
	switch {
	case m.Vertices == nil:
		return nil, structuralf("mesh has no %q field", "vertices")
	case *m.Vertices != 0:
		return nil, structuralf("mesh uses vertex buffer %d, only 0 is supported", *m.Vertices)
	case m.Type != types.TopologyTriangles:
		return nil, structuralf("mesh type %q is not supported, expected %q", m.Type, types.TopologyTriangles)
	case m.Base == nil:
		return nil, structuralf("mesh has no %q field", "base")
	case *m.Base != 0:
		return nil, structuralf("mesh base %d is not supported, expected 0", *m.Base)
	case m.Indices == nil:
		return nil, structuralf("mesh has no %q field", "indices")
	}

	faces := make([]Face, 0, len(m.Indices)/3)
	for g, err := range batch.Batches(m.Indices, 3) {
		if err != nil {
			return nil, fmt.Errorf("mesh indices: %w", err)
		}
		raw, err := integralIndices(g)
		if err != nil {
			return nil, fmt.Errorf("mesh indices: face %d: %w", len(faces), err)
		}
		var f Face
		for k, i := range raw {
			if i < 0 || i >= vertexCount {
				return nil, &IndexError{
					Face:        len(faces),
					Indices:     raw,
					Index:       i,
					VertexCount: vertexCount,
				}
			}
			// OBJ indices are 1-based.
			f[k] = i + 1
		}
		faces = append(faces, f)
	}
	return faces, nil
}

// integralIndices converts a group of raw indices to ints. Values such as
// 2.0 are accepted; fractional or non-finite values are structural errors.
func integralIndices(g []float64) ([]int, error) {
	out := make([]int, len(g))
	for k, v := range g {
		if math.IsInf(v, 0) || math.IsNaN(v) || v != math.Trunc(v) ||
			v > math.MaxInt32 || v < math.MinInt32 {
			return nil, structuralf("index %v is not a valid integer", v)
		}
		out[k] = int(v)
	}
	return out, nil
}

// Bounds returns the axis-aligned bounding box of the mesh vertices. Both
// corners are zero when the mesh has no vertices.
func (m *Mesh) Bounds() (lo, hi Coord) {
	if len(m.Vertices) == 0 {
		return lo, hi
	}
	lo = Coord{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi = Coord{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, v := range m.Vertices {
		for i := range 3 {
			lo[i] = math.Min(lo[i], v[i])
			hi[i] = math.Max(hi[i], v[i])
		}
	}
	return lo, hi
}

// UnitNormals counts the normals whose length is 1 within tolerance.
func (m *Mesh) UnitNormals() int {
	n := 0
	for _, v := range m.Normals {
		if mgl64.FloatEqualThreshold(v.Len(), 1, 1e-4) {
			n++
		}
	}
	return n
}

func modelOf(doc *types.Document) (*types.Model, error) {
	if doc == nil || doc.Model == nil {
		return nil, structuralf("document has no %q object", "model")
	}
	return doc.Model, nil
}
