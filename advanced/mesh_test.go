package advanced

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeshString(t *testing.T) {
	s, err := UnitSimplex(3)
	require.NoError(t, err)
	mesh, err := NewMesh(s)
	require.NoError(t, err)

	want := strings.Join([]string{
		"6",
		"4",
		"0",
		"1",
		"2",
		"3 0 1 0.4",
		"4 0 2 0.5",
		"5 1 2 0.6",
		"3 4 0",
		"3 5 1",
		"4 5 2",
		"3 4 5",
	}, "\n") + "\n"
	assert.Equal(t, want, mesh.String())
}

func TestMeshRoundTrip(t *testing.T) {
	for _, opts := range [][]Option{
		{},
		{WithStrategy(StrategyPulling)},
		{WithJitter(13)},
	} {
		s, err := UnitSimplex(6, opts...)
		require.NoError(t, err)
		mesh, err := NewMesh(s)
		require.NoError(t, err)

		var buf bytes.Buffer
		n, err := mesh.WriteTo(&buf)
		require.NoError(t, err)
		assert.Equal(t, int64(buf.Len()), n)

		f, err := ParseMesh(&buf)
		require.NoError(t, err)
		assert.Equal(t, 6, f.D)
		assert.Equal(t, 6+NumEdgePoints(6), f.NumVertices())
		require.Len(t, f.Cells, len(mesh.Cells))
		for i, cell := range mesh.Cells {
			assert.Equal(t, cell.Labels(), f.Cells[i])
		}

		// Rebuilt coordinates match up to rounding, since ratios are
		// written in their shortest round-tripping form.
		points, err := f.Points(s.Vertices())
		require.NoError(t, err)
		for label, p := range points {
			want, ok := s.Point(label)
			require.True(t, ok)
			if diff := cmp.Diff(want, p, cmpopts.EquateApprox(0, 1e-15)); diff != "" {
				t.Errorf("label %d mismatch (-want +got):\n%s", label, diff)
			}
		}

		cells, err := f.Simplices(s.Vertices())
		require.NoError(t, err)
		require.Len(t, cells, len(mesh.Cells))
		for i := range cells {
			assert.InDelta(t, mesh.Cells[i].Volume(), cells[i].Volume(), 1e-15)
		}
	}
}

func TestParseMeshErrors(t *testing.T) {
	valid := "6\n1\n0\n1\n2\n3 0 1 0.4\n4 0 2 0.5\n5 1 2 0.6\n3 4 5\n"
	_, err := ParseMesh(strings.NewReader(valid))
	require.NoError(t, err)

	for name, input := range map[string]string{
		"empty":            "",
		"bad count":        "x\n1\n",
		"wrong total":      "7\n1\n0\n1\n2\n3 0 1 0.4\n4 0 2 0.5\n5 1 2 0.6\n3 4 5\n",
		"vertex order":     "6\n1\n0\n2\n1\n3 0 1 0.4\n4 0 2 0.5\n5 1 2 0.6\n3 4 5\n",
		"edge order":       "6\n1\n0\n1\n2\n3 0 2 0.4\n4 0 1 0.5\n5 1 2 0.6\n3 4 5\n",
		"ratio range":      "6\n1\n0\n1\n2\n3 0 1 1.5\n4 0 2 0.5\n5 1 2 0.6\n3 4 5\n",
		"missing edge":     "6\n1\n0\n1\n2\n3 0 1 0.4\n4 0 2 0.5\n3 4 5\n",
		"cell count":       "6\n2\n0\n1\n2\n3 0 1 0.4\n4 0 2 0.5\n5 1 2 0.6\n3 4 5\n",
		"short cell":       "6\n1\n0\n1\n2\n3 0 1 0.4\n4 0 2 0.5\n5 1 2 0.6\n3 4\n",
		"unknown label":    "6\n1\n0\n1\n2\n3 0 1 0.4\n4 0 2 0.5\n5 1 2 0.6\n3 4 9\n",
		"one vertex":       "1\n0\n0\n",
		"non-integer cell": "6\n1\n0\n1\n2\n3 0 1 0.4\n4 0 2 0.5\n5 1 2 0.6\n3 4 a\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseMesh(strings.NewReader(input))
			assert.Error(t, err)
		})
	}
}

func TestMeshFilePointsWrongVertices(t *testing.T) {
	f := &MeshFile{D: 3}
	_, err := f.Points(identity(4))
	assert.Error(t, err)
}
