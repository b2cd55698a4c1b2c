// Recursive triangulation of simplices in any dimension.
//
// A D-simplex is subdivided by cutting off its D vertex corners at one point
// on every edge, and then splitting the polytope spanned by the edge points
// into simplices. Every resulting simplex can be subdivided again the same
// way. See the advanced package for the hyperplane and split machinery.
package simplexmesh

import (
	"io"

	"github.com/osuushi/simplexmesh/advanced"
)

type Point = advanced.Point
type Simplex = advanced.Simplex
type Hyperplane = advanced.Hyperplane
type Mesh = advanced.Mesh
type Option = advanced.Option
type Strategy = advanced.Strategy

type GeometryError = advanced.GeometryError
type DimensionError = advanced.DimensionError
type TriangulationError = advanced.TriangulationError

const (
	StrategyHeuristic = advanced.StrategyHeuristic
	StrategyPulling   = advanced.StrategyPulling
)

var (
	WithChecks       = advanced.WithChecks
	WithTolerance    = advanced.WithTolerance
	WithStrategy     = advanced.WithStrategy
	WithMaxSimplices = advanced.WithMaxSimplices
	WithFallback     = advanced.WithFallback
	WithJitter       = advanced.WithJitter
	WithJitterRange  = advanced.WithJitterRange
)

// Triangulate subdivides the unit D-simplex, whose vertices are the rows of
// the D x D identity matrix. The first D simplices are the vertex corners, in
// vertex order.
func Triangulate(d int, opts ...Option) ([]*Simplex, error) {
	s, err := advanced.UnitSimplex(d, opts...)
	if err != nil {
		return nil, err
	}
	return s.Triangulate()
}

// Write triangulates the unit D-simplex and writes it in the mesh file
// format.
func Write(d int, w io.Writer, opts ...Option) error {
	s, err := advanced.UnitSimplex(d, opts...)
	if err != nil {
		return err
	}
	mesh, err := advanced.NewMesh(s)
	if err != nil {
		return err
	}
	_, err = mesh.WriteTo(w)
	return err
}
