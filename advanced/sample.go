package advanced

import "math/rand"

// SamplePoint draws a point uniformly from the unit simplex in d dimensions,
// as normalized spacings of exponential variates.
func SamplePoint(rng *rand.Rand, d int) Point {
	out := make(Point, d)
	var sum float64
	for i := range out {
		out[i] = rng.ExpFloat64()
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// SamplePoint draws a point uniformly from the simplex.
func (s *Simplex) SamplePoint(rng *rand.Rand) Point {
	weights := SamplePoint(rng, s.Dim())
	out := make(Point, s.Dim())
	for i, w := range weights {
		for r, x := range s.vertices[i] {
			out[r] += w * x
		}
	}
	return out
}

// Coverage counts how sampled points of a simplex fall into a set of cells.
type Coverage struct {
	Samples int
	// Uncovered points are in no cell, Overlapping points in more than one.
	Uncovered   int
	Overlapping int
}

// Covered is the share of samples inside at least one cell.
func (c Coverage) Covered() float64 {
	if c.Samples == 0 {
		return 0
	}
	return float64(c.Samples-c.Uncovered) / float64(c.Samples)
}

// MeasureCoverage samples points of root and tests each against every cell.
// A partition of root covers every sample exactly once, up to samples that
// land within tolerance of a shared face.
func MeasureCoverage(root *Simplex, cells []*Simplex, samples int, rng *rand.Rand) Coverage {
	c := Coverage{Samples: samples}
	for i := 0; i < samples; i++ {
		p := root.SamplePoint(rng)
		hits := 0
		for _, cell := range cells {
			if cell.ContainsPoint(p) {
				hits++
			}
		}
		switch {
		case hits == 0:
			c.Uncovered++
		case hits > 1:
			c.Overlapping++
		}
	}
	return c
}
