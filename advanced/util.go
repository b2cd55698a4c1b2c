package advanced

import "math"

// Point is a vector of D coordinates in the ambient space.
type Point = []float64

// To compensate for imprecision in floats, comparisons against derived
// quantities are tolerance based and absolute, never relative.
func Equal(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func dot(a, b Point) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func sub(a, b Point) Point {
	out := make(Point, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}

func add(a, b Point) Point {
	out := make(Point, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return out
}

func norm(a Point) float64 {
	return math.Sqrt(dot(a, a))
}

// lerp returns ratio*a + (1-ratio)*b.
func lerp(a, b Point, ratio float64) Point {
	out := make(Point, len(a))
	for i := range a {
		out[i] = ratio*a[i] + (1.0-ratio)*b[i]
	}
	return out
}

func clonePoint(p Point) Point {
	out := make(Point, len(p))
	copy(out, p)
	return out
}

func clonePoints(points []Point) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = clonePoint(p)
	}
	return out
}

func centroid(points []Point) Point {
	out := make(Point, len(points[0]))
	for _, p := range points {
		for i, x := range p {
			out[i] += x
		}
	}
	for i := range out {
		out[i] /= float64(len(points))
	}
	return out
}

// NumEdgePoints is C(d,2), the number of edge points of a d-vertex simplex.
func NumEdgePoints(d int) int {
	return d * (d - 1) / 2
}

// linspace mirrors numpy: n evenly spaced values from lo to hi inclusive.
func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

// PointSetStack holds the point sets still waiting to be split.
type PointSetStack [][]LabeledPoint

func (s *PointSetStack) Push(points []LabeledPoint) {
	*s = append(*s, points)
}

func (s *PointSetStack) Pop() []LabeledPoint {
	if len(*s) == 0 {
		return nil
	}
	points := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return points
}

func (s *PointSetStack) Empty() bool {
	return len(*s) == 0
}
