// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data and configuration types shared across stages.
package types

// Attribute keys used by the converter.
const (
	AttrPosition = "position"
	AttrNormal   = "normal"
)

// TopologyTriangles is the only mesh primitive type the converter accepts.
const TopologyTriangles = "triangles"

// Document is a parsed PlayCanvas JSON model export.
type Document struct {
	Model *Model `json:"model" yaml:"model"`
}

// Model holds the vertex buffers and mesh descriptors of a document.
// Only documents with exactly one of each are convertible.
type Model struct {
	Vertices []VertexBuffer   `json:"vertices" yaml:"vertices"`
	Meshes   []MeshDescriptor `json:"meshes" yaml:"meshes"`
}

// VertexBuffer maps an attribute name ("position", "normal", "texCoord0", ...)
// to its attribute block.
type VertexBuffer map[string]*AttributeBlock

// AttributeBlock is one named vertex attribute: a flat array of numbers
// grouped Components at a time.
type AttributeBlock struct {
	// Type is the storage type reported by the exporter (e.g. "float32").
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	Components int       `json:"components" yaml:"components"`
	Data       []float64 `json:"data" yaml:"data"`
}

// MeshDescriptor describes the topology of a mesh over a vertex buffer.
// Vertices and Base are pointers so a missing key can be told apart from 0.
type MeshDescriptor struct {
	// Vertices is the index of the vertex buffer the mesh draws from.
	Vertices *int `json:"vertices" yaml:"vertices"`

	// Type is the primitive type, e.g. "triangles".
	Type string `json:"type" yaml:"type"`

	// Base is the first index used by the submesh.
	Base *int `json:"base" yaml:"base"`

	// Indices are kept as numbers; some exporters write them as 2.0.
	Indices []float64 `json:"indices" yaml:"indices"`
}
