// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch splits flat sequences into fixed-size groups.
package batch

import (
	"errors"
	"fmt"
	"iter"
)

var (
	// ErrShape reports a sequence whose length is not a multiple of the
	// batch size.
	ErrShape = errors.New("sequence not evenly divisible by batch size")

	// ErrInvalidArgument reports a non-positive batch size.
	ErrInvalidArgument = errors.New("invalid batch size")
)

// Batches returns a sequence of consecutive groups of size elements taken
// from xs, in order. Each group is a subslice of xs with its capacity capped
// at size, so appending to a group never writes into xs.
//
// If size is not positive the sequence yields a single ErrInvalidArgument.
// If len(xs) is not a multiple of size, every complete group is yielded
// first and the trailing partial group is reported as ErrShape. An empty xs
// yields nothing.
func Batches[T any](xs []T, size int) iter.Seq2[[]T, error] {
	return func(yield func([]T, error) bool) {
		if size <= 0 {
			yield(nil, fmt.Errorf("%w: %d", ErrInvalidArgument, size))
			return
		}
		for start := 0; start < len(xs); start += size {
			end := start + size
			if end > len(xs) {
				yield(nil, fmt.Errorf("%w %d (%d elements, %d left over)",
					ErrShape, size, len(xs), len(xs)-start))
				return
			}
			if !yield(xs[start:end:end], nil) {
				return
			}
		}
	}
}

// Collect materializes Batches(xs, size). It returns the first error the
// sequence reports and no groups.
func Collect[T any](xs []T, size int) ([][]T, error) {
	var groups [][]T
	if size > 0 {
		groups = make([][]T, 0, len(xs)/size)
	}
	for g, err := range Batches(xs, size) {
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}
