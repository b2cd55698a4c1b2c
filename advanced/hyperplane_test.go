package advanced

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identity(d int) []Point {
	points := make([]Point, d)
	for i := range points {
		points[i] = make(Point, d)
		points[i][i] = 1
	}
	return points
}

func randomPoints(rng *rand.Rand, d int) []Point {
	points := make([]Point, d)
	for i := range points {
		points[i] = make(Point, d)
		for j := range points[i] {
			points[i][j] = rng.Float64()*2 - 1
		}
	}
	return points
}

func TestHyperplaneUnitTriangle(t *testing.T) {
	points := identity(3)
	h, err := NewHyperplane(points)
	require.NoError(t, err)

	normal := h.Normal()
	third := 1 / math.Sqrt(3)
	if normal[0] < 0 {
		third = -third
	}
	assert.InDeltaSlice(t, []float64{third, third, third}, normal, 1e-12)

	// Cross check against the 3D cross product of two edges.
	v := func(p Point) r3.Vector { return r3.Vector{X: p[0], Y: p[1], Z: p[2]} }
	cross := v(points[1]).Sub(v(points[0])).Cross(v(points[2]).Sub(v(points[0]))).Normalize()
	assert.InDelta(t, 1, math.Abs(cross.Dot(v(normal))), 1e-12)
}

func TestHyperplaneNormalIsValid(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for d := 2; d <= 12; d++ {
		t.Run(fmt.Sprintf("D=%d", d), func(t *testing.T) {
			points := randomPoints(rng, d)
			h, err := NewHyperplane(points)
			require.NoError(t, err)
			assert.Equal(t, d, h.Dim())

			normal := h.Normal()
			assert.InDelta(t, 1, norm(normal), 1e-9)
			for i := 1; i < d; i++ {
				assert.InDelta(t, 0, dot(sub(points[i], points[0]), normal), 1e-9)
			}
			for _, p := range points {
				assert.True(t, h.PointInPlane(p))
			}
		})
	}
}

func TestHyperplaneDegenerate(t *testing.T) {
	// Three points on one line do not fix a plane in 3D.
	_, err := NewHyperplane([]Point{{0, 0, 0}, {1, 1, 1}, {2, 2, 2}})
	var geometryErr *GeometryError
	assert.True(t, errors.As(err, &geometryErr), "got %v", err)

	_, err = NewHyperplane([]Point{{1, 0, 0}, {1, 0, 0}, {0, 0, 1}})
	assert.True(t, errors.As(err, &geometryErr), "got %v", err)
}

func TestHyperplaneBadShape(t *testing.T) {
	var dimensionErr *DimensionError

	_, err := NewHyperplane([]Point{{1, 0}, {0, 1}, {0, 0}})
	assert.True(t, errors.As(err, &dimensionErr), "got %v", err)

	_, err = NewHyperplane([]Point{{1}})
	assert.True(t, errors.As(err, &dimensionErr), "got %v", err)
}

func TestHyperplaneSides(t *testing.T) {
	h, err := NewHyperplane(identity(3))
	require.NoError(t, err)
	normal := h.Normal()
	centroid := Point{1.0 / 3, 1.0 / 3, 1.0 / 3}

	above := add(centroid, normal)
	below := sub(centroid, normal)

	assert.True(t, h.PointIsNormalSide(above))
	assert.False(t, h.PointIsNormalSide(below))
	// Points on the plane count as normal side.
	assert.True(t, h.PointIsNormalSide(centroid))

	assert.InDelta(t, 1, h.SignedDistance(above), 1e-12)
	assert.InDelta(t, -1, h.SignedDistance(below), 1e-12)

	assert.True(t, h.HalfplaneTest(above, above))
	assert.False(t, h.HalfplaneTest(above, below))
	assert.True(t, h.HalfplaneTest(above, centroid))
	assert.True(t, h.HalfplaneTest(centroid, below))

	// Noise below the tolerance never separates points.
	nudged := add(centroid, Point{normal[0] * 1e-12, normal[1] * 1e-12, normal[2] * 1e-12})
	assert.True(t, h.HalfplaneTest(nudged, below))
	assert.True(t, h.PointInPlane(nudged))
	assert.False(t, h.PointInPlane(above))
}

func TestPointIsNormalSideOnThePlane(t *testing.T) {
	h, err := NewHyperplane(identity(3))
	require.NoError(t, err)
	normal := h.Normal()

	// A point in the plane whose computed distance is a tiny bit negative is
	// still on the normal side.
	sunk := sub(Point{1.0 / 3, 1.0 / 3, 1.0 / 3}, Point{normal[0] * 1e-12, normal[1] * 1e-12, normal[2] * 1e-12})
	require.Less(t, h.SignedDistance(sunk), 0.0)
	assert.True(t, h.PointInPlane(sunk))
	assert.True(t, h.PointIsNormalSide(sunk))

	for _, v := range identity(3) {
		assert.True(t, h.PointIsNormalSide(v))
	}
	assert.False(t, h.PointIsNormalSide(sub(sunk, Point{normal[0] * 1e-6, normal[1] * 1e-6, normal[2] * 1e-6})))
}

func TestHyperplaneIsImmutable(t *testing.T) {
	points := identity(3)
	h, err := NewHyperplane(points)
	require.NoError(t, err)

	normal := h.Normal()
	points[0][0] = 42
	h.Normal()[0] = 42
	h.Points()[1][1] = 42

	assert.Equal(t, normal, h.Normal())
	assert.Equal(t, identity(3), h.Points())
}

func BenchmarkNewHyperplane(b *testing.B) {
	for _, d := range []int{4, 10, 25} {
		b.Run(fmt.Sprintf("D=%d", d), func(b *testing.B) {
			points := randomPoints(rand.New(rand.NewSource(0)), d)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				NewHyperplane(points)
			}
		})
	}
}
