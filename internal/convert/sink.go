// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// outputMode is the permission of newly created output files.
const outputMode os.FileMode = 0o644

// Sink is the destination of a conversion: standard output or a file.
//
// File output goes to a temp file next to the destination and is renamed
// into place by Commit. Close removes the temp file if Commit was not
// reached, so a failed conversion leaves no partial file behind.
type Sink struct {
	w         io.Writer
	file      *os.File
	path      string
	committed bool
	closed    bool
}

// OpenOutput returns a sink for path. An empty path or "-" writes to stdout.
func OpenOutput(path string, stdout io.Writer) (*Sink, error) {
	if path == "" || path == "-" {
		return &Sink{w: stdout}, nil
	}

	f, err := os.CreateTemp(filepath.Dir(path), ".playcanvas2obj-*.tmp")
	if err != nil {
		return nil, fmt.Errorf("opening output %s: %w", path, err)
	}
	return &Sink{w: f, file: f, path: path}, nil
}

// Name returns the destination path, or "-" for stdout.
func (s *Sink) Name() string {
	if s.file == nil {
		return "-"
	}
	return s.path
}

// IsStdout reports whether the sink writes to standard output.
func (s *Sink) IsStdout() bool {
	return s.file == nil
}

// Write implements io.Writer.
func (s *Sink) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

// Commit publishes file output at its destination path. The file keeps the
// permissions of the file it replaces, or gets 0644 if it is new. Commit is a
// no-op for stdout.
func (s *Sink) Commit() error {
	if s.file == nil || s.committed {
		return nil
	}
	tmpPath := s.file.Name()
	s.closed = true

	mode := outputMode
	if fi, err := os.Stat(s.path); err == nil && fi.Mode().IsRegular() {
		mode = fi.Mode().Perm()
	}
	if err := s.file.Chmod(mode); err != nil {
		s.file.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("setting mode of output %s: %w", s.path, err)
	}
	if err := s.file.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing output %s: %w", s.path, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing output %s: %w", s.path, err)
	}
	s.committed = true
	return nil
}

// Close releases the sink. Uncommitted file output is discarded. Standard
// output is left open. Close may be called more than once.
func (s *Sink) Close() error {
	if s.file == nil || s.closed {
		return nil
	}
	s.closed = true
	tmpPath := s.file.Name()
	err := s.file.Close()
	os.Remove(tmpPath)
	return err
}
