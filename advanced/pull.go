package advanced

// The edge points of a simplex span a polytope R whose facets are the corner
// facets C_j (the edge points on edges touching vertex j) and, from four
// vertices up, the polytopes R of the faces opposite each vertex. Pulling
// picks the edge point of the first vertex pair (a,b) as apex and cones it
// over every facet that does not contain it: C_j for j other than a and b,
// and the triangulations of R(S\{a}) and R(S\{b}). A simplex with n vertices
// gives 2^(n-1)-n interior cells this way, which tile R exactly.

func (s *Simplex) pull(budget int) []*Simplex {
	d := s.Dim()
	if d-1 >= 62 || (1<<(d-1))-d > budget {
		throwTriangulation(NumEdgePoints(d), "pulling a %d-vertex simplex exceeds %d simplices", d, budget)
	}

	set := make([]int, d)
	for i := range set {
		set[i] = i
	}
	cells := s.pullCells(set)
	result := make([]*Simplex, len(cells))
	for i, cell := range cells {
		points := make([]LabeledPoint, len(cell))
		for j, label := range cell {
			points[j] = s.labeled(label)
		}
		result[i] = s.child(points)
	}
	return result
}

// pullCells triangulates R(set) and returns each cell as edge point labels,
// apex last.
func (s *Simplex) pullCells(set []int) [][]int {
	n := len(set)
	a, b := set[0], set[1]
	apex := s.edgeLabel(a, b)

	var out [][]int
	for _, j := range set[2:] {
		cell := make([]int, 0, n)
		for _, k := range set {
			if k != j {
				cell = append(cell, s.edgeLabel(j, k))
			}
		}
		out = append(out, append(cell, apex))
	}
	if n < 4 {
		return out
	}
	for _, drop := range []int{a, b} {
		for _, face := range s.pullCells(without(set, drop)) {
			cell := make([]int, 0, n)
			cell = append(cell, face...)
			out = append(out, append(cell, apex))
		}
	}
	return out
}

// edgeLabel is the label of the edge point between vertices j and k, in
// either order.
func (s *Simplex) edgeLabel(j, k int) int {
	if j > k {
		j, k = k, j
	}
	d := s.Dim()
	return d + j*d - j*(j+1)/2 + (k - j - 1)
}

func (s *Simplex) labeled(label int) LabeledPoint {
	d := s.Dim()
	if label < d {
		return LabeledPoint{Label: label, Point: s.vertices[label]}
	}
	return LabeledPoint{Label: label, Point: s.edges[label-d].Point}
}

func without(set []int, drop int) []int {
	out := make([]int, 0, len(set)-1)
	for _, i := range set {
		if i != drop {
			out = append(out, i)
		}
	}
	return out
}
