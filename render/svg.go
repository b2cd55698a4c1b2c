package render

import (
	"bytes"
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"
	"github.com/osuushi/simplexmesh/advanced"
	"github.com/pkg/errors"
)

const (
	backgroundStyle = "fill:rgb(0,0,0)"
	cellStyle       = "stroke:rgb(0,255,255);stroke-width:1"
	rootStyle       = "stroke:rgb(255,255,255);stroke-width:2"
	cornerStyle     = "fill:rgb(255,0,0)"
)

// SVG writes the picture PNG draws as an SVG document. Each cell is a group
// with id "cell-N" holding one line per edge, and the root outline is the
// group "root".
func SVG(w io.Writer, root *advanced.Simplex, cells []*advanced.Simplex, size int) error {
	p := NewProjection(root)
	m := screen(size)

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(size, size)
	canvas.Rect(0, 0, size, size, backgroundStyle)

	line := func(s segment, style string) {
		canvas.Line(int(s[0][0]), int(s[0][1]), int(s[1][0]), int(s[1][1]), style)
	}
	for i, cell := range cells {
		canvas.Gid(fmt.Sprintf("cell-%d", i))
		for _, s := range cellSegments(p, m, cell) {
			line(s, cellStyle)
		}
		canvas.Gend()
	}

	canvas.Gid("root")
	for _, s := range cellSegments(p, m, root) {
		line(s, rootStyle)
	}
	for _, corner := range p.Corners() {
		s := toScreen(m, corner)
		canvas.Circle(int(s[0]), int(s[1]), 4, cornerStyle)
	}
	canvas.Gend()
	canvas.End()

	_, err := w.Write(buf.Bytes())
	return errors.Wrap(err, "writing svg")
}
