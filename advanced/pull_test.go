package advanced

import (
	"fmt"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/markus-wa/quickhull-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEdgeLabel(t *testing.T) {
	s, err := UnitSimplex(6)
	require.NoError(t, err)
	for _, e := range s.EdgePoints() {
		assert.Equal(t, e.Label, s.edgeLabel(e.J, e.K))
		assert.Equal(t, e.Label, s.edgeLabel(e.K, e.J))
	}
}

func TestPullCellCounts(t *testing.T) {
	for d := 3; d <= 10; d++ {
		s, err := UnitSimplex(d)
		require.NoError(t, err)
		set := make([]int, d)
		for i := range set {
			set[i] = i
		}
		cells := s.pullCells(set)
		assert.Len(t, cells, (1<<(d-1))-d, "D=%d", d)
		for _, cell := range cells {
			assert.Len(t, cell, d)
		}
	}
}

func TestPullPartition(t *testing.T) {
	for d := 3; d <= 7; d++ {
		t.Run(fmt.Sprintf("D=%d", d), func(t *testing.T) {
			s, err := UnitSimplex(d, WithStrategy(StrategyPulling))
			require.NoError(t, err)
			cells, err := s.Triangulate()
			require.NoError(t, err)
			AssertValidTriangulation(t, s, cells, true)
		})
	}

	t.Run("wide jitter", func(t *testing.T) {
		s, err := UnitSimplex(6, WithStrategy(StrategyPulling), WithJitter(9), WithJitterRange(0.3, 0.7))
		require.NoError(t, err)
		cells, err := s.Triangulate()
		require.NoError(t, err)
		AssertValidTriangulation(t, s, cells, true)
	})
}

// The unit simplex in 4D lives in the plane where coordinates sum to 1, so
// dropping the last coordinate maps it to 3D without losing anything.
func toR3(points []Point) []r3.Vector {
	out := make([]r3.Vector, len(points))
	for i, p := range points {
		out[i] = r3.Vector{X: p[0], Y: p[1], Z: p[2]}
	}
	return out
}

func TestPullTetrahedra(t *testing.T) {
	s, err := UnitSimplex(4, WithStrategy(StrategyPulling))
	require.NoError(t, err)
	cells, err := s.Triangulate()
	require.NoError(t, err)

	qh := new(quickhull.QuickHull)

	// The edge points of a tetrahedron span an octahedron.
	var edgePoints []Point
	for _, e := range s.EdgePoints() {
		edgePoints = append(edgePoints, e.Point)
	}
	hull := qh.ConvexHull(toR3(edgePoints), true, true, 0)
	assert.Len(t, hull.Indices, 8*3)

	interior := cells[4:]
	require.Len(t, interior, 4)
	for i, cell := range interior {
		hull := qh.ConvexHull(toR3(cell.Vertices()), true, true, 0)
		assert.Len(t, hull.Indices, 4*3, "cell %d", i)
	}
}
