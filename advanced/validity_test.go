package advanced

// This contains no actual tests. It is just a helper for checking
// triangulation validity.

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validitySamples = 400

// Helper to check the cells of a triangulation of root. The rules are:
// 1. Every cell has D distinct labels known to root, and its vertices are the
// points root gives for those labels.
// 2. No cell has zero volume.
// 3. No sampled point of root is inside two cells.
// 4. When exact is set, every sampled point of root is inside some cell, and
// the cell volumes sum to the volume of root. Otherwise the cell volumes sum
// to at most the volume of root.
func AssertValidTriangulation(t *testing.T, root *Simplex, cells []*Simplex, exact bool) {
	d := root.Dim()
	limit := d + NumEdgePoints(d)

	var volume float64
	for i, cell := range cells {
		labels := cell.Labels()
		require.Len(t, labels, d, "cell %d", i)
		seen := map[int]bool{}
		for j, label := range labels {
			require.True(t, label >= 0 && label < limit, "cell %d has label %d", i, label)
			require.False(t, seen[label], "cell %d repeats label %d", i, label)
			seen[label] = true

			want, ok := root.Point(label)
			require.True(t, ok)
			assert.InDeltaSlice(t, want, cell.vertices[j], 1e-12, "cell %d vertex %d", i, j)
		}
		cellVolume := cell.Volume()
		require.Greater(t, cellVolume, 0.0, "cell %d is degenerate", i)
		volume += cellVolume
	}

	coverage := MeasureCoverage(root, cells, validitySamples, rand.New(rand.NewSource(int64(d))))
	assert.Zero(t, coverage.Overlapping, "cells overlap")
	if exact {
		assert.Zero(t, coverage.Uncovered, "cells leave gaps")
		assert.InDelta(t, root.Volume(), volume, 1e-9, "cell volumes must sum to the simplex volume")
	} else {
		assert.LessOrEqual(t, volume, root.Volume()+1e-9)
	}
}
