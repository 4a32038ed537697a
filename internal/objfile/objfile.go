// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package objfile writes meshes as Wavefront OBJ text: v, vn, and f records,
// each block followed by a count comment and a blank line.
package objfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"syscall"

	"github.com/pdiddy/playcanvas2obj/internal/mesh"
	"github.com/pdiddy/playcanvas2obj/pkg/types"
)

// Record prefixes.
const (
	PrefixVertex = "v"
	PrefixNormal = "vn"
)

// ErrSinkClosed can be returned by a destination writer to signal that its
// consumer has stopped reading. Write treats it like a broken pipe.
var ErrSinkClosed = errors.New("output sink closed")

var coordLabels = map[string]string{
	PrefixVertex: "vertices",
	PrefixNormal: "vertex normals",
}

// IsBrokenPipe reports whether err means the reader of the output went away.
func IsBrokenPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, ErrSinkClosed)
}

// Write renders m to w: vertices, then normals, then faces. Output is
// buffered and flushed before returning. If the destination reports a broken
// pipe, Write stops and returns nil.
func Write(w io.Writer, m *mesh.Mesh, scheme types.NormalIndexScheme) error {
	bw := bufio.NewWriter(w)
	err := writeAll(bw, m, scheme)
	if err == nil {
		err = bw.Flush()
	}
	if IsBrokenPipe(err) {
		return nil
	}
	return err
}

func writeAll(w io.Writer, m *mesh.Mesh, scheme types.NormalIndexScheme) error {
	if err := WriteCoords(w, PrefixVertex, m.Vertices); err != nil {
		return err
	}
	if err := WriteCoords(w, PrefixNormal, m.Normals); err != nil {
		return err
	}
	return WriteFaces(w, m.Faces, scheme)
}

// WriteCoords writes one record per coordinate, "<prefix> x y z", with each
// number printed to six decimals and a leading space or minus sign.
func WriteCoords(w io.Writer, prefix string, coords []mesh.Coord) error {
	label, ok := coordLabels[prefix]
	if !ok {
		return fmt.Errorf("unknown OBJ prefix: %q", prefix)
	}
	for _, c := range coords {
		if _, err := fmt.Fprintf(w, "%s % f % f % f\n", prefix, c[0], c[1], c[2]); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "# %d %s\n\n", len(coords), label)
	return err
}

// WriteFaces writes one "f a//na b//nb c//nc" record per face. The normal
// slots are filled according to scheme; an empty scheme means
// NormalIndexPosition.
//
// NormalIndexPosition does not reference the normal that belongs to each
// vertex. NormalIndexVertex does.
func WriteFaces(w io.Writer, faces []mesh.Face, scheme types.NormalIndexScheme) error {
	if scheme == "" {
		scheme = types.NormalIndexPosition
	}
	if !scheme.Valid() {
		return fmt.Errorf("unknown normal index scheme: %q", scheme)
	}
	for n, f := range faces {
		var normals [3]int
		for k := range f {
			switch scheme {
			case types.NormalIndexPosition:
				normals[k] = k + 1
			case types.NormalIndexVertex:
				normals[k] = f[k]
			case types.NormalIndexFace:
				normals[k] = n + 1
			}
		}
		if _, err := fmt.Fprintf(w, "f %d//%d %d//%d %d//%d\n",
			f[0], normals[0], f[1], normals[1], f[2], normals[2]); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "# %d faces\n\n", len(faces))
	return err
}
