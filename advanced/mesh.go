package advanced

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// A Mesh is a simplex together with the cells of its triangulation.
type Mesh struct {
	Simplex *Simplex
	Cells   []*Simplex
}

// NewMesh triangulates s.
func NewMesh(s *Simplex) (*Mesh, error) {
	cells, err := s.Triangulate()
	if err != nil {
		return nil, err
	}
	return &Mesh{Simplex: s, Cells: cells}, nil
}

// WriteTo writes the mesh in the text format:
//
//	<vertex count>
//	<cell count>
//	<label>               one line per simplex vertex
//	<label> <j> <k> <r>   one line per edge point
//	<label> ... <label>   one line per cell
func (m *Mesh) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var written int64
	printf := func(format string, args ...interface{}) {
		n, _ := fmt.Fprintf(bw, format, args...)
		written += int64(n)
	}

	d := m.Simplex.Dim()
	edges := m.Simplex.EdgePoints()
	printf("%d\n", d+len(edges))
	printf("%d\n", len(m.Cells))
	for i := 0; i < d; i++ {
		printf("%d\n", i)
	}
	for _, e := range edges {
		printf("%d %d %d %s\n", e.Label, e.J, e.K, strconv.FormatFloat(e.Ratio, 'g', -1, 64))
	}
	for _, cell := range m.Cells {
		labels := make([]string, len(cell.labels))
		for i, label := range cell.labels {
			labels[i] = strconv.Itoa(label)
		}
		printf("%s\n", strings.Join(labels, " "))
	}
	return written, errors.Wrap(bw.Flush(), "writing mesh")
}

func (m *Mesh) String() string {
	var sb strings.Builder
	m.WriteTo(&sb)
	return sb.String()
}

// MeshFile is a mesh read back from its text format. It only holds labels
// and ratios. Coordinates come from the vertices it is applied to.
type MeshFile struct {
	D     int
	Edges []EdgePoint
	Cells [][]int
}

// NumVertices counts simplex vertices and edge points.
func (f *MeshFile) NumVertices() int {
	return f.D + len(f.Edges)
}

// ParseMesh reads a mesh written by Mesh.WriteTo and validates its counts,
// labels and ratios.
func ParseMesh(r io.Reader) (*MeshFile, error) {
	scanner := bufio.NewScanner(r)
	var lines [][]string
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		lines = append(lines, fields)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading mesh")
	}
	if len(lines) < 2 {
		return nil, errors.New("mesh: missing header")
	}

	vertexCount, err := parseInts(lines[0], 1)
	if err != nil {
		return nil, errors.Wrap(err, "mesh: vertex count")
	}
	cellCount, err := parseInts(lines[1], 1)
	if err != nil {
		return nil, errors.Wrap(err, "mesh: cell count")
	}
	lines = lines[2:]

	f := &MeshFile{}
	for len(lines) > 0 && len(lines[0]) == 1 {
		label, err := parseInts(lines[0], 1)
		if err != nil {
			return nil, errors.Wrapf(err, "mesh: vertex %d", f.D)
		}
		if label[0] != f.D {
			return nil, errors.Errorf("mesh: vertex %d has label %d", f.D, label[0])
		}
		f.D++
		lines = lines[1:]
	}
	if f.D < 2 {
		return nil, errors.Errorf("mesh: need at least 2 vertices, got %d", f.D)
	}
	if want := f.D + NumEdgePoints(f.D); vertexCount[0] != want {
		return nil, errors.Errorf("mesh: vertex count %d, want %d for %d vertices", vertexCount[0], want, f.D)
	}

	for j := 0; j < f.D; j++ {
		for k := j + 1; k < f.D; k++ {
			label := f.D + len(f.Edges)
			if len(lines) == 0 || len(lines[0]) != 4 {
				return nil, errors.Errorf("mesh: missing edge point %d", label)
			}
			ints, err := parseInts(lines[0][:3], 3)
			if err != nil {
				return nil, errors.Wrapf(err, "mesh: edge point %d", label)
			}
			if ints[0] != label || ints[1] != j || ints[2] != k {
				return nil, errors.Errorf("mesh: edge point %d is %v, want %d %d %d", label, ints, label, j, k)
			}
			ratio, err := strconv.ParseFloat(lines[0][3], 64)
			if err != nil {
				return nil, errors.Wrapf(err, "mesh: edge point %d ratio", label)
			}
			if !(ratio > 0 && ratio < 1) {
				return nil, errors.Errorf("mesh: edge point %d ratio %g outside (0,1)", label, ratio)
			}
			f.Edges = append(f.Edges, EdgePoint{Label: label, J: j, K: k, Ratio: ratio})
			lines = lines[1:]
		}
	}

	if len(lines) != cellCount[0] {
		return nil, errors.Errorf("mesh: cell count %d, found %d cells", cellCount[0], len(lines))
	}
	for i, line := range lines {
		cell, err := parseInts(line, f.D)
		if err != nil {
			return nil, errors.Wrapf(err, "mesh: cell %d", i)
		}
		for _, label := range cell {
			if label < 0 || label >= vertexCount[0] {
				return nil, errors.Errorf("mesh: cell %d has unknown label %d", i, label)
			}
		}
		f.Cells = append(f.Cells, cell)
	}
	return f, nil
}

func parseInts(fields []string, want int) ([]int, error) {
	if len(fields) != want {
		return nil, errors.Errorf("got %d fields, want %d", len(fields), want)
	}
	out := make([]int, want)
	for i, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		out[i] = n
	}
	return out, nil
}

// Points rebuilds the coordinates of every label from the D simplex
// vertices, in label order.
func (f *MeshFile) Points(vertices []Point) ([]Point, error) {
	if len(vertices) != f.D {
		return nil, &DimensionError{D: f.D, Reason: fmt.Sprintf("got %d vertices", len(vertices))}
	}
	out := clonePoints(vertices)
	for _, e := range f.Edges {
		out = append(out, lerp(vertices[e.J], vertices[e.K], e.Ratio))
	}
	return out, nil
}

// Simplices rebuilds the cells as simplices over the given vertices. The
// cells carry their labels from the file.
func (f *MeshFile) Simplices(vertices []Point, opts ...Option) (result []*Simplex, err error) {
	points, err := f.Points(vertices)
	if err != nil {
		return nil, err
	}
	defer func() {
		if recoveredErr := HandlePanicRecover(recover()); recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()
	o := gatherOptions(opts)
	result = make([]*Simplex, len(f.Cells))
	for i, cell := range f.Cells {
		cellVertices := make([]Point, len(cell))
		for j, label := range cell {
			cellVertices[j] = points[label]
		}
		result[i] = newSimplex(cellVertices, cell, o)
	}
	return result, nil
}
