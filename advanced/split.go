package advanced

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Split partitions points, which must all lie in one (D-1)-flat with the
// given unit normal, into simplices of exactly D points each.
//
// Each step cuts the current point set with a hyperplane through D-1 of its
// points and a pseudo point offset from the first of them along the normal,
// so the hyperplane stands perpendicular to the flat. The most balanced cut
// in a small candidate set wins. Both halves keep the cut's anchor points and
// any point lying on the cut, and are split further until they hold D
// points. Leaf simplices keep the labels of their points.
func Split(points []LabeledPoint, normal Point, opts ...Option) (result []*Simplex, err error) {
	defer func() {
		if recoveredErr := HandlePanicRecover(recover()); recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()
	o := gatherOptions(opts)
	return split(points, normal, o, o.MaxSimplices), nil
}

func split(points []LabeledPoint, normal Point, o Options, budget int) []*Simplex {
	d := len(normal)
	if len(points) < d {
		throwTriangulation(len(points), "need at least %d points to split", d)
	}
	for _, p := range points {
		if len(p.Point) != d {
			throwDimension(d, "point %d has %d coordinates, want %d", p.Label, len(p.Point), d)
		}
	}

	var result []*Simplex
	var stack PointSetStack
	stack.Push(points)
	for !stack.Empty() {
		current := stack.Pop()
		m := len(current)

		if m == d {
			if len(result) >= budget {
				throwTriangulation(m, "more than %d simplices", budget)
			}
			vertices := make([]Point, d)
			labels := make([]int, d)
			for i, p := range current {
				vertices[i] = p.Point
				labels[i] = p.Label
			}
			result = append(result, leaf(vertices, labels, o))
			continue
		}

		c, ok := bestCut(current, normal, o)
		if !ok && o.Fallback {
			c, ok = barycentricCut(current, normal, o)
		}
		if !ok {
			throwTriangulation(m, "no valid split found")
		}

		normalSide := gather(current, c.normalSide, c.anchors, c.onPlane)
		oppositeSide := gather(current, c.oppositeSide, c.anchors, c.onPlane)
		if len(normalSide) >= m || len(oppositeSide) >= m || len(normalSide) < d || len(oppositeSide) < d {
			throwTriangulation(m, "split into %d and %d points does not shrink", len(normalSide), len(oppositeSide))
		}
		// The normal side is split first.
		stack.Push(oppositeSide)
		stack.Push(normalSide)
	}
	return result
}

// leaf builds the simplex for a finished point set. A flat one is a failed
// triangulation, not bad input.
func leaf(vertices []Point, labels []int, o Options) *Simplex {
	defer func() {
		if r := recover(); r != nil {
			var geometryErr *GeometryError
			if err, ok := r.(error); ok && errors.As(err, &geometryErr) {
				throwTriangulation(len(vertices), "simplex %v is degenerate: %s", labels, geometryErr.Reason)
			}
			panic(r)
		}
	}()
	return newSimplex(vertices, labels, o)
}

// A cut is a candidate split of a point set, as indexes into the set.
type cut struct {
	anchors      []int
	normalSide   []int
	oppositeSide []int
	onPlane      []int
}

func (c cut) score() int {
	return min(len(c.normalSide), len(c.oppositeSide))
}

// beats reports whether c is a better cut than best. Between equally
// balanced cuts, one that passes through no point wins, since points on a cut
// go to both halves and add cells.
func (c cut) beats(best cut, found bool) bool {
	s := c.score()
	if s > best.score() {
		return true
	}
	return found && s == best.score() && len(best.onPlane) > 0 && len(c.onPlane) == 0
}

// bestCut searches the bounded candidate set. With one point more than a
// simplex, every pair of points is left out in turn. Otherwise the first D-2
// points are always anchors and the last anchor varies over the rest.
func bestCut(points []LabeledPoint, normal Point, o Options) (best cut, found bool) {
	d := len(normal)
	m := len(points)

	var candidates [][]int
	if m == d+1 {
		for i := 0; i < m; i++ {
			for j := i + 1; j < m; j++ {
				anchors := make([]int, 0, d-1)
				for k := 0; k < m; k++ {
					if k != i && k != j {
						anchors = append(anchors, k)
					}
				}
				candidates = append(candidates, anchors)
			}
		}
	} else {
		for i := d - 2; i < m; i++ {
			anchors := make([]int, 0, d-1)
			for k := 0; k < d-2; k++ {
				anchors = append(anchors, k)
			}
			candidates = append(candidates, append(anchors, i))
		}
	}

	limit := m - (d - 2) - 1
	for _, anchors := range candidates {
		c, ok := classify(points, anchors, normal, o)
		if !ok {
			continue
		}
		if c.score() < limit && c.beats(best, found) {
			best, found = c, true
		}
	}
	return best, found
}

// barycentricCut picks D affinely independent points and looks for another
// point with a negative barycentric coordinate with respect to them. The
// facet opposite the most negative coordinate then has that point on one
// side and the dropped vertex on the other. When the points are in convex
// position such a point always exists.
func barycentricCut(points []LabeledPoint, normal Point, o Options) (best cut, found bool) {
	d := len(normal)
	basis := independentSubset(points, d, o)
	if basis == nil {
		return cut{}, false
	}
	inBasis := make(map[int]bool, d)
	for _, i := range basis {
		inBasis[i] = true
	}

	origin := points[basis[0]].Point
	a := mat.NewDense(d, d-1, nil)
	for c, i := range basis[1:] {
		for r := 0; r < d; r++ {
			a.Set(r, c, points[i].Point[r]-origin[r])
		}
	}

	lambda := make([]float64, d)
	for q := range points {
		if inBasis[q] {
			continue
		}
		var x mat.VecDense
		if err := x.SolveVec(a, mat.NewVecDense(d, sub(points[q].Point, origin))); err != nil {
			continue
		}
		lambda[0] = 1
		for i := 1; i < d; i++ {
			lambda[i] = x.AtVec(i - 1)
			lambda[0] -= lambda[i]
		}
		worst := 0
		for i := range lambda {
			if lambda[i] < lambda[worst] {
				worst = i
			}
		}
		if lambda[worst] >= -o.Tolerance {
			continue
		}

		anchors := make([]int, 0, d-1)
		for i, b := range basis {
			if i != worst {
				anchors = append(anchors, b)
			}
		}
		c, ok := classify(points, anchors, normal, o)
		if ok && c.beats(best, found) {
			best, found = c, true
		}
	}
	return best, found
}

// independentSubset greedily collects D affinely independent points, or
// returns nil when the set spans less than a (D-1)-flat.
func independentSubset(points []LabeledPoint, d int, o Options) []int {
	chosen := []int{0}
	origin := points[0].Point
	for j := 1; j < len(points) && len(chosen) < d; j++ {
		columns := append(append([]int(nil), chosen[1:]...), j)
		a := mat.NewDense(d, len(columns), nil)
		for c, i := range columns {
			for r := 0; r < d; r++ {
				a.Set(r, c, points[i].Point[r]-origin[r])
			}
		}
		var svd mat.SVD
		if !svd.Factorize(a, mat.SVDNone) {
			continue
		}
		values := svd.Values(nil)
		if values[len(values)-1] > o.Tolerance {
			chosen = append(chosen, j)
		}
	}
	if len(chosen) < d {
		return nil
	}
	return chosen
}

// classify fits the hyperplane through the anchors and the first anchor
// moved along the normal, and sorts the other points by side. It reports
// false when the anchors do not determine a hyperplane.
func classify(points []LabeledPoint, anchors []int, normal Point, o Options) (cut, bool) {
	plane := make([]Point, 0, len(anchors)+1)
	for _, a := range anchors {
		plane = append(plane, points[a].Point)
	}
	plane = append(plane, add(points[anchors[0]].Point, normal))
	h := tryHyperplane(plane, o)
	if h == nil {
		return cut{}, false
	}

	isAnchor := make(map[int]bool, len(anchors))
	for _, a := range anchors {
		isAnchor[a] = true
	}
	c := cut{anchors: anchors}
	for j, p := range points {
		if isAnchor[j] {
			continue
		}
		switch dist := h.SignedDistance(p.Point); {
		case dist > o.Tolerance:
			c.normalSide = append(c.normalSide, j)
		case dist < -o.Tolerance:
			c.oppositeSide = append(c.oppositeSide, j)
		default:
			c.onPlane = append(c.onPlane, j)
		}
	}
	return c, true
}

// tryHyperplane is newHyperplane, except that degenerate anchors give nil
// instead of a GeometryError.
func tryHyperplane(points []Point, o Options) (h *Hyperplane) {
	defer func() {
		if r := recover(); r != nil {
			var geometryErr *GeometryError
			if err, ok := r.(error); ok && errors.As(err, &geometryErr) {
				h = nil
				return
			}
			panic(r)
		}
	}()
	return newHyperplane(points, o)
}

func gather(points []LabeledPoint, groups ...[]int) []LabeledPoint {
	var out []LabeledPoint
	for _, group := range groups {
		for _, i := range group {
			out = append(out, points[i])
		}
	}
	return out
}
