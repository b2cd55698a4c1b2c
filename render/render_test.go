package render

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/JoshVarga/svgparser"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/osuushi/simplexmesh/advanced"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func triangulated(t *testing.T, d int) (*advanced.Simplex, []*advanced.Simplex) {
	root, err := advanced.UnitSimplex(d)
	require.NoError(t, err)
	cells, err := root.Triangulate()
	require.NoError(t, err)
	return root, cells
}

func TestProjection(t *testing.T) {
	root, _ := triangulated(t, 4)
	p := NewProjection(root)
	corners := p.Corners()
	require.Len(t, corners, 4)

	for i, v := range root.Vertices() {
		assert.Less(t, corners[i].Sub(p.Project(v)).Len(), 1e-9, "vertex %d", i)
		assert.InDelta(t, 1, corners[i].Len(), 1e-12)
	}

	// The centroid lands on the center of the polygon.
	assert.Less(t, p.Project(root.Centroid()).Len(), 1e-9)

	// Midpoints map to midpoints.
	mid := p.Project(advanced.Point{0.5, 0.5, 0, 0})
	want := corners[0].Add(corners[1]).Mul(0.5)
	assert.Less(t, mid.Sub(want).Len(), 1e-9)
}

func TestScreen(t *testing.T) {
	m := screen(200)
	assert.Less(t, toScreen(m, mgl64.Vec2{0, 0}).Sub(mgl64.Vec2{100, 100}).Len(), 1e-9)
	// Up in the plane is up on screen.
	assert.Less(t, toScreen(m, mgl64.Vec2{0, 1}).Sub(mgl64.Vec2{100, padding}).Len(), 1e-9)
}

func TestSVG(t *testing.T) {
	for _, d := range []int{3, 5} {
		t.Run(fmt.Sprintf("D=%d", d), func(t *testing.T) {
			root, cells := triangulated(t, d)
			var buf bytes.Buffer
			require.NoError(t, SVG(&buf, root, cells, 300))

			doc, err := svgparser.Parse(&buf, false)
			require.NoError(t, err)
			assert.Equal(t, "300", doc.Attributes["width"])

			groups := doc.FindAll("g")
			require.Len(t, groups, len(cells)+1)
			edges := advanced.NumEdgePoints(d)
			for i, cell := range groups[:len(cells)] {
				assert.Equal(t, fmt.Sprintf("cell-%d", i), cell.Attributes["id"])
				assert.Len(t, cell.FindAll("line"), edges)
			}
			rootGroup := groups[len(cells)]
			assert.Equal(t, "root", rootGroup.Attributes["id"])
			assert.Len(t, rootGroup.FindAll("circle"), d)
		})
	}
}

func TestPNG(t *testing.T) {
	root, cells := triangulated(t, 4)
	path := filepath.Join(t.TempDir(), "mesh.png")
	require.NoError(t, PNG(path, root, cells, 250))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 250, img.Bounds().Dx())
	assert.Equal(t, 250, img.Bounds().Dy())
}
