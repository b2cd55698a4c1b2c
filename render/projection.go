package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/osuushi/simplexmesh/advanced"
	"gonum.org/v1/gonum/mat"
)

// A Projection flattens the flat of a root simplex onto the plane. Vertex i of
// the root goes to corner i of a regular polygon on the unit circle, and every
// other point follows its barycentric coordinates, so edges stay straight and
// a triangle is drawn exactly.
type Projection struct {
	corners []mgl64.Vec2
	// Root vertices as columns, over a row of ones.
	system *mat.Dense
}

func NewProjection(root *advanced.Simplex) *Projection {
	d := root.Dim()
	p := &Projection{
		corners: make([]mgl64.Vec2, d),
		system:  mat.NewDense(d+1, d, nil),
	}
	for i, v := range root.Vertices() {
		angle := math.Pi/2 + 2*math.Pi*float64(i)/float64(d)
		p.corners[i] = mgl64.Vec2{math.Cos(angle), math.Sin(angle)}
		for r, x := range v {
			p.system.Set(r, i, x)
		}
		p.system.Set(d, i, 1)
	}
	return p
}

// Corners are the images of the root vertices.
func (p *Projection) Corners() []mgl64.Vec2 {
	return append([]mgl64.Vec2(nil), p.corners...)
}

func (p *Projection) Project(point advanced.Point) mgl64.Vec2 {
	d := len(p.corners)
	b := mat.NewVecDense(d+1, nil)
	for r := 0; r < d; r++ {
		b.SetVec(r, point[r])
	}
	b.SetVec(d, 1)

	var out mgl64.Vec2
	var weights mat.VecDense
	if err := weights.SolveVec(p.system, b); err != nil {
		return out
	}
	for i, c := range p.corners {
		out = out.Add(c.Mul(weights.AtVec(i)))
	}
	return out
}

// Pixels outside the unit circle the corners sit on.
const padding = 40

// screen maps the unit circle into a size x size image with y pointing down.
func screen(size int) mgl64.Mat3 {
	half := float64(size) / 2
	radius := half - padding
	return mgl64.Translate2D(half, half).Mul3(mgl64.Scale2D(radius, -radius))
}

func toScreen(m mgl64.Mat3, v mgl64.Vec2) mgl64.Vec2 {
	s := m.Mul3x1(mgl64.Vec3{v[0], v[1], 1})
	return mgl64.Vec2{s[0], s[1]}
}

// A segment is an edge of a cell in screen coordinates.
type segment [2]mgl64.Vec2

// cellSegments projects every edge of every cell.
func cellSegments(p *Projection, m mgl64.Mat3, cell *advanced.Simplex) []segment {
	vertices := cell.Vertices()
	projected := make([]mgl64.Vec2, len(vertices))
	for i, v := range vertices {
		projected[i] = toScreen(m, p.Project(v))
	}
	var out []segment
	for j := range projected {
		for k := j + 1; k < len(projected); k++ {
			out = append(out, segment{projected[j], projected[k]})
		}
	}
	return out
}
