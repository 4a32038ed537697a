// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mesh

import (
	"errors"
	"fmt"

	"github.com/pdiddy/playcanvas2obj/internal/batch"
)

var (
	// ErrStructural reports a document outside the supported layout: one
	// vertex buffer, one triangle mesh, 3-component attributes.
	ErrStructural = errors.New("unsupported document structure")

	// ErrIndexOutOfBounds reports a face that references a missing vertex.
	ErrIndexOutOfBounds = errors.New("face index out of bounds")

	// ErrShape is batch.ErrShape, re-exported for callers of this package.
	ErrShape = batch.ErrShape
)

// IndexError identifies the face whose raw indices fall outside the vertex
// buffer. It matches ErrIndexOutOfBounds with errors.Is.
type IndexError struct {
	// Face is the 0-based position of the face in the index buffer.
	Face int

	// Indices are the raw 0-based indices of the face.
	Indices []int

	// Index is the first offending raw index.
	Index int

	VertexCount int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("face index %d in %v out of bounds (face %d, %d vertices)",
		e.Index, e.Indices, e.Face, e.VertexCount)
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfBounds
}

func structuralf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrStructural, fmt.Sprintf(format, args...))
}
