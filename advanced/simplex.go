package advanced

import (
	"fmt"
	"math"
	"sync"

	"github.com/logrusorgru/aurora"
	"github.com/osuushi/simplexmesh/dbg"
	"gonum.org/v1/gonum/mat"
)

// LabeledPoint is a point together with its label in the numbering of the
// simplex it was taken from.
type LabeledPoint struct {
	Label int
	Point Point
}

// EdgePoint sits on the edge between vertices J and K at
// Ratio*v[J] + (1-Ratio)*v[K].
type EdgePoint struct {
	Label int
	J, K  int
	Ratio float64
	Point Point
}

// A Simplex is D affinely independent vertices in D-dimensional space.
//
// Within a simplex, vertex i has label i and the edge point of the pair (j,k)
// has label D plus its position in the pair enumeration (j ascending, then
// k > j ascending). A simplex produced by Triangulate additionally remembers
// the labels of its vertices in the numbering of the simplex it was cut
// from, see Labels.
type Simplex struct {
	vertices []Point
	labels   []int
	plane    *Hyperplane
	options  Options

	edgeOnce sync.Once
	edges    []EdgePoint
	// incident[i] lists the indexes into edges of the D-1 edge points on
	// edges touching vertex i, in enumeration order.
	incident [][]int

	faceOnce sync.Once
	faces    []*Hyperplane
}

// NewSimplex builds a simplex from D vertices of dimension D.
func NewSimplex(vertices []Point, opts ...Option) (s *Simplex, err error) {
	defer func() {
		if recoveredErr := HandlePanicRecover(recover()); recoveredErr != nil {
			s = nil
			err = recoveredErr
		}
	}()
	return newSimplex(vertices, nil, gatherOptions(opts)), nil
}

// UnitSimplex builds the simplex whose vertices are the rows of the D x D
// identity matrix.
func UnitSimplex(d int, opts ...Option) (*Simplex, error) {
	if d < 1 {
		return nil, &DimensionError{D: d, Reason: "dimension must be positive"}
	}
	vertices := make([]Point, d)
	for i := range vertices {
		vertices[i] = make(Point, d)
		vertices[i][i] = 1
	}
	return NewSimplex(vertices, opts...)
}

// newSimplex panics on bad input. A nil labels slice numbers the vertices
// 0..D-1.
func newSimplex(vertices []Point, labels []int, o Options) *Simplex {
	d := len(vertices)
	if o.Checks && d < 3 {
		throwDimension(d, "simplices need at least 3 vertices, got %d", d)
	}
	for i, v := range vertices {
		if len(v) != d {
			throwDimension(d, "vertex %d has %d coordinates, want %d", i, len(v), d)
		}
	}
	if labels == nil {
		labels = make([]int, d)
		for i := range labels {
			labels[i] = i
		}
	} else if len(labels) != d {
		throwDimension(d, "got %d labels for %d vertices", len(labels), d)
	}

	vertices = clonePoints(vertices)
	return &Simplex{
		vertices: vertices,
		labels:   append([]int(nil), labels...),
		plane:    newHyperplane(vertices, o),
		options:  o,
	}
}

// Dim is the number of vertices, which is also the ambient dimension.
func (s *Simplex) Dim() int {
	return len(s.vertices)
}

// Vertices returns a copy of the vertex coordinates.
func (s *Simplex) Vertices() []Point {
	return clonePoints(s.vertices)
}

// Labels returns the vertex labels. For a simplex built with NewSimplex these
// are 0..D-1. For a child returned by Triangulate they are the labels of its
// vertices in the parent's numbering.
func (s *Simplex) Labels() []int {
	return append([]int(nil), s.labels...)
}

// Normal is the unit normal of the hyperplane containing the simplex.
func (s *Simplex) Normal() Point {
	return s.plane.Normal()
}

func (s *Simplex) Hyperplane() *Hyperplane {
	return s.plane
}

// Options are the resolved options the simplex was built with. Children of
// the simplex are built with the same options.
func (s *Simplex) Options() Options {
	return s.options
}

func (s *Simplex) Centroid() Point {
	return centroid(s.vertices)
}

// EdgePoints lists the C(D,2) edge points in label order. They are computed on
// first use. Simplices cut from a jittered root share its random generator,
// so they must not compute edge points concurrently.
func (s *Simplex) EdgePoints() []EdgePoint {
	s.edgeOnce.Do(s.computeEdgePoints)
	out := make([]EdgePoint, len(s.edges))
	for i, e := range s.edges {
		out[i] = e
		out[i].Point = clonePoint(e.Point)
	}
	return out
}

func (s *Simplex) computeEdgePoints() {
	d := s.Dim()
	n := NumEdgePoints(d)

	var ratios []float64
	if s.options.Jitter {
		ratios = make([]float64, n)
		lo, hi := s.options.JitterLow, s.options.JitterHigh
		for i := range ratios {
			ratios[i] = lo + (hi-lo)*s.options.Rand.Float64()
		}
	} else {
		ratios = linspace(DefaultRatioLow, DefaultRatioHigh, n)
	}

	s.edges = make([]EdgePoint, 0, n)
	s.incident = make([][]int, d)
	for j := 0; j < d; j++ {
		for k := j + 1; k < d; k++ {
			i := len(s.edges)
			s.edges = append(s.edges, EdgePoint{
				Label: d + i,
				J:     j,
				K:     k,
				Ratio: ratios[i],
				Point: lerp(s.vertices[j], s.vertices[k], ratios[i]),
			})
			s.incident[j] = append(s.incident[j], i)
			s.incident[k] = append(s.incident[k], i)
		}
	}
}

// Point returns the coordinates of a vertex or edge point by its label in
// this simplex's numbering.
func (s *Simplex) Point(label int) (Point, bool) {
	d := s.Dim()
	if label >= 0 && label < d {
		return clonePoint(s.vertices[label]), true
	}
	s.edgeOnce.Do(s.computeEdgePoints)
	if label >= d && label < d+len(s.edges) {
		return clonePoint(s.edges[label-d].Point), true
	}
	return nil, false
}

// Triangulate cuts the simplex into smaller simplices: one corner simplex per
// vertex, made of the vertex and its incident edge points, followed by the
// simplices the configured Strategy splits the edge point polytope into.
//
// Each call returns a fresh slice of fresh simplices. The children carry the
// labels of their vertices in this simplex's numbering, and are built with
// this simplex's options.
func (s *Simplex) Triangulate() (result []*Simplex, err error) {
	defer func() {
		if recoveredErr := HandlePanicRecover(recover()); recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()
	return s.triangulate(), nil
}

func (s *Simplex) triangulate() []*Simplex {
	d := s.Dim()
	s.edgeOnce.Do(s.computeEdgePoints)

	result := make([]*Simplex, 0, d+NumEdgePoints(d)+1)
	for i := 0; i < d; i++ {
		corner := make([]LabeledPoint, 0, d)
		for _, e := range s.incident[i] {
			corner = append(corner, LabeledPoint{Label: s.edges[e].Label, Point: s.edges[e].Point})
		}
		corner = append(corner, LabeledPoint{Label: i, Point: s.vertices[i]})
		result = append(result, s.child(corner))
	}

	budget := s.options.MaxSimplices - len(result)
	switch s.options.Strategy {
	case StrategyPulling:
		result = append(result, s.pull(budget)...)
	default:
		interior := make([]LabeledPoint, len(s.edges))
		for i, e := range s.edges {
			interior[i] = LabeledPoint{Label: e.Label, Point: e.Point}
		}
		result = append(result, split(interior, s.plane.normal, s.options, budget)...)
	}
	return result
}

func (s *Simplex) child(points []LabeledPoint) *Simplex {
	vertices := make([]Point, len(points))
	labels := make([]int, len(points))
	for i, p := range points {
		vertices[i] = p.Point
		labels[i] = p.Label
	}
	return newSimplex(vertices, labels, s.options)
}

// ContainsPoint reports whether p lies inside the prism over the simplex
// along its normal: for every face, p must be on the same side as the
// centroid of the hyperplane through the face and the face offset along the
// normal. Points on a face count as inside.
func (s *Simplex) ContainsPoint(p Point) bool {
	s.faceOnce.Do(s.computeFaces)
	c := s.Centroid()
	for _, face := range s.faces {
		if !face.HalfplaneTest(p, c) {
			return false
		}
	}
	return true
}

func (s *Simplex) computeFaces() {
	d := s.Dim()
	s.faces = make([]*Hyperplane, d)
	for i := 0; i < d; i++ {
		points := make([]Point, 0, d)
		points = append(points, s.vertices[:i]...)
		points = append(points, s.vertices[i+1:]...)
		points = append(points, add(points[0], s.plane.normal))
		s.faces[i] = newHyperplane(points, s.options)
	}
}

// Volume is the (D-1)-dimensional volume of the simplex, from the Gram
// determinant of its edge vectors out of vertex 0.
func (s *Simplex) Volume() float64 {
	d := s.Dim()
	a := mat.NewDense(d, d-1, nil)
	for i := 1; i < d; i++ {
		for r := 0; r < d; r++ {
			a.Set(r, i-1, s.vertices[i][r]-s.vertices[0][r])
		}
	}
	var gram mat.Dense
	gram.Mul(a.T(), a)
	det := mat.Det(&gram)
	if det <= 0 {
		return 0
	}
	return math.Sqrt(det) / factorial(d-1)
}

// MaxLinfNormRatio is the largest L-infinity distance between two vertices,
// divided by base. The unit simplex has base 2.
func (s *Simplex) MaxLinfNormRatio(base float64) float64 {
	var largest float64
	for j := range s.vertices {
		for k := j + 1; k < len(s.vertices); k++ {
			for r := range s.vertices[j] {
				largest = math.Max(largest, math.Abs(s.vertices[j][r]-s.vertices[k][r]))
			}
		}
	}
	return largest / base
}

func factorial(n int) float64 {
	out := 1.0
	for i := 2; i <= n; i++ {
		out *= float64(i)
	}
	return out
}

func (s *Simplex) DbgName() string {
	return aurora.Cyan(dbg.Name(s)).String()
}

func (s *Simplex) String() string {
	return fmt.Sprintf("%s%v", s.DbgName(), s.labels)
}
