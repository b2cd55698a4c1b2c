package advanced

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// A Hyperplane passes through D anchor points in D-dimensional space. Its
// normal is the unit vector orthogonal to every difference of two anchors,
// which orients the space into a "normal side" and an "opposite side".
type Hyperplane struct {
	points    []Point
	normal    Point
	tolerance float64
}

// NewHyperplane fits a hyperplane through exactly D points of dimension D.
// It fails with a *GeometryError when the points are affinely dependent, and
// with a *DimensionError when the point matrix is not D x D.
func NewHyperplane(points []Point, opts ...Option) (h *Hyperplane, err error) {
	defer func() {
		if recoveredErr := HandlePanicRecover(recover()); recoveredErr != nil {
			h = nil
			err = recoveredErr
		}
	}()
	return newHyperplane(points, gatherOptions(opts)), nil
}

func newHyperplane(points []Point, o Options) *Hyperplane {
	d := len(points)
	if d < 2 {
		throwDimension(d, "a hyperplane needs at least 2 points, got %d", d)
	}
	for i, p := range points {
		if len(p) != d {
			throwDimension(d, "point %d has %d coordinates, want %d", i, len(p), d)
		}
	}

	// diffs[:, i-1] = points[i] - points[0]. The normal spans the left null
	// space of this D x (D-1) matrix, which is the last column of the full U
	// factor of its SVD.
	diffs := mat.NewDense(d, d-1, nil)
	for i := 1; i < d; i++ {
		for r := 0; r < d; r++ {
			diffs.Set(r, i-1, points[i][r]-points[0][r])
		}
	}
	var svd mat.SVD
	if !svd.Factorize(diffs, mat.SVDFull) {
		throwGeometry("SVD of the %dx%d difference matrix did not converge", d, d-1)
	}
	values := svd.Values(nil)
	if smallest := values[len(values)-1]; smallest <= o.Tolerance {
		throwGeometry("points are affinely dependent (smallest singular value %g)", smallest)
	}
	var u mat.Dense
	svd.UTo(&u)
	normal := make(Point, d)
	for r := 0; r < d; r++ {
		normal[r] = u.At(r, d-1)
	}

	if o.Checks {
		if !Equal(norm(normal), 1.0, o.Tolerance) {
			throwGeometry("normal has norm %g, want 1", norm(normal))
		}
		for i := 0; i < d-1; i++ {
			if p := mat.Dot(diffs.ColView(i), mat.NewVecDense(d, normal)); math.Abs(p) > o.Tolerance {
				throwGeometry("normal is not orthogonal to difference %d (dot %g)", i, p)
			}
		}
	}

	return &Hyperplane{
		points:    clonePoints(points),
		normal:    normal,
		tolerance: o.Tolerance,
	}
}

// Dim is the dimension D of the ambient space.
func (h *Hyperplane) Dim() int {
	return len(h.normal)
}

// Normal returns a copy of the unit normal.
func (h *Hyperplane) Normal() Point {
	return clonePoint(h.normal)
}

// Points returns a copy of the anchor points.
func (h *Hyperplane) Points() []Point {
	return clonePoints(h.points)
}

// SignedDistance is the distance of p from the plane, positive on the side
// the normal points to.
func (h *Hyperplane) SignedDistance(p Point) float64 {
	return dot(sub(p, h.points[0]), h.normal)
}

// PointIsNormalSide reports whether p lies on the side the normal points to.
// Points within tolerance of the plane count as normal side.
func (h *Hyperplane) PointIsNormalSide(p Point) bool {
	return h.SignedDistance(p) >= -h.tolerance
}

// PointInPlane reports whether p lies on the plane within tolerance.
func (h *Hyperplane) PointInPlane(p Point) bool {
	return math.Abs(h.SignedDistance(p)) <= h.tolerance
}

// HalfplaneTest reports whether p1 and p2 are on the same side of the plane.
// A point within tolerance of the plane is on the same side as anything, so
// numerical noise never separates two points.
func (h *Hyperplane) HalfplaneTest(p1, p2 Point) bool {
	d1 := h.SignedDistance(p1)
	d2 := h.SignedDistance(p2)
	if math.Abs(d1) <= h.tolerance || math.Abs(d2) <= h.tolerance {
		return true
	}
	return (d1 > 0) == (d2 > 0)
}
