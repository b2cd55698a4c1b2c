package render

import (
	"os"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/osuushi/simplexmesh/advanced"
	"github.com/pkg/errors"
)

// PNG draws the edges of every cell of a triangulation of root onto a square
// image and saves it to path. The root outline and corners are drawn on top.
func PNG(path string, root *advanced.Simplex, cells []*advanced.Simplex, size int) error {
	p := NewProjection(root)
	m := screen(size)

	c := gg.NewContext(size, size)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(size), float64(size))
	c.Fill()

	c.SetLineWidth(1)
	for _, cell := range cells {
		for _, s := range cellSegments(p, m, cell) {
			c.DrawLine(s[0][0], s[0][1], s[1][0], s[1][1])
		}
	}
	c.SetRGB(0, 1, 1)
	c.Stroke()

	c.SetLineWidth(2)
	for _, s := range cellSegments(p, m, root) {
		c.DrawLine(s[0][0], s[0][1], s[1][0], s[1][1])
	}
	c.SetRGB(1, 1, 1)
	c.Stroke()

	for _, corner := range p.Corners() {
		s := toScreen(m, corner)
		c.DrawCircle(s[0], s[1], 4)
	}
	c.SetRGB(1, 0, 0)
	c.Fill()

	return errors.Wrapf(c.SavePNG(path), "saving %s", path)
}

// Preview prints an image to the terminal (iTerm only).
func Preview(path string) {
	imgcat.CatFile(path, os.Stdout)
}
