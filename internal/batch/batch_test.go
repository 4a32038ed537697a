// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollect(t *testing.T) {
	tests := []struct {
		name    string
		xs      []int
		size    int
		want    [][]int
		wantErr error
	}{
		{"triples", []int{1, 2, 3, 4, 5, 6}, 3, [][]int{{1, 2, 3}, {4, 5, 6}}, nil},
		{"size one", []int{7, 8}, 1, [][]int{{7}, {8}}, nil},
		{"single group", []int{1, 2, 3}, 3, [][]int{{1, 2, 3}}, nil},
		{"empty input", nil, 3, [][]int{}, nil},
		{"partial trailing group", []int{1, 2, 3, 4}, 3, nil, ErrShape},
		{"shorter than size", []int{1, 2}, 3, nil, ErrShape},
		{"zero size", []int{1, 2, 3}, 0, nil, ErrInvalidArgument},
		{"negative size", []int{1, 2, 3}, -2, nil, ErrInvalidArgument},
		{"zero size empty input", nil, 0, nil, ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Collect(tt.xs, tt.size)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBatches_RoundTrip(t *testing.T) {
	for _, size := range []int{1, 2, 3, 4, 7} {
		for k := 0; k < 5; k++ {
			xs := make([]int, k*size)
			for i := range xs {
				xs[i] = i * 10
			}

			groups, err := Collect(xs, size)
			require.NoError(t, err)
			require.Len(t, groups, k)

			var flat []int
			for _, g := range groups {
				assert.Len(t, g, size)
				flat = append(flat, g...)
			}
			assert.True(t, slices.Equal(xs, flat), "size %d, k %d: concatenation differs", size, k)
		}
	}
}

func TestBatches_YieldsCompleteGroupsBeforeShapeError(t *testing.T) {
	var groups [][]int
	var gotErr error
	for g, err := range Batches([]int{1, 2, 3, 4, 5}, 2) {
		if err != nil {
			gotErr = err
			break
		}
		groups = append(groups, g)
	}

	assert.Equal(t, [][]int{{1, 2}, {3, 4}}, groups)
	require.ErrorIs(t, gotErr, ErrShape)
	assert.Contains(t, gotErr.Error(), "batch size 2")
}

func TestBatches_StopsEarly(t *testing.T) {
	calls := 0
	for range Batches([]int{1, 2, 3, 4, 5, 6}, 2) {
		calls++
		break
	}
	assert.Equal(t, 1, calls)
}

func TestBatches_GroupsDoNotAliasOnAppend(t *testing.T) {
	xs := []int{1, 2, 3, 4}
	groups, err := Collect(xs, 2)
	require.NoError(t, err)

	_ = append(groups[0], 99)
	assert.Equal(t, []int{1, 2, 3, 4}, xs)
}
