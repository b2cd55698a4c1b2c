package driver

import (
	"io"
	"log"
	"runtime"

	"github.com/osuushi/simplexmesh/advanced"
	"github.com/pkg/errors"
)

// DefaultJitterDims are the dimensions where evenly spaced edge ratios put
// edge points on common hyperplanes, so their first attempt is jittered.
var DefaultJitterDims = []int{13, 18, 23}

const (
	DefaultMinDim  = 4
	DefaultMaxDim  = 25
	DefaultOutDir  = ".cache"
	DefaultRetries = 3
)

// Config drives a batch of triangulations, one per dimension.
type Config struct {
	Dims   []int
	OutDir string

	Strategy     advanced.Strategy
	Checks       bool
	MaxSimplices int

	// JitterDims lists the dimensions whose first attempt already uses
	// jittered edge ratios.
	JitterDims map[int]bool
	// JitterLow and JitterHigh bound jittered ratios. Zero means the
	// library default.
	JitterLow, JitterHigh float64
	// Seed is the base of every per-dimension, per-attempt seed.
	Seed int64
	// Retries is how many more jittered attempts a dimension gets after a
	// TriangulationError or GeometryError.
	Retries int
	// Jobs bounds the number of dimensions triangulated at once.
	Jobs int

	Logger  *log.Logger
	Verbose bool
}

// DefaultConfig triangulates D=4..25 with the reference heuristic.
func DefaultConfig() Config {
	dims := make([]int, 0, DefaultMaxDim-DefaultMinDim+1)
	for d := DefaultMinDim; d <= DefaultMaxDim; d++ {
		dims = append(dims, d)
	}
	return Config{
		Dims:         dims,
		OutDir:       DefaultOutDir,
		Strategy:     advanced.StrategyHeuristic,
		Checks:       true,
		MaxSimplices: advanced.DefaultMaxSimplices,
		JitterDims:   JitterSet(DefaultJitterDims),
		Retries:      DefaultRetries,
		Jobs:         runtime.NumCPU(),
	}
}

func JitterSet(dims []int) map[int]bool {
	out := make(map[int]bool, len(dims))
	for _, d := range dims {
		out[d] = true
	}
	return out
}

func (c Config) logger() *log.Logger {
	if c.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return c.Logger
}

// seed derives the seed of one attempt, distinct for every dimension and
// attempt under the same base seed.
func (c Config) seed(d, attempt int) int64 {
	return c.Seed*1000003 + int64(d)*1009 + int64(attempt)
}

// options builds the simplex options for one attempt. Attempt 0 follows the
// override table, later attempts are always jittered.
func (c Config) options(d, attempt int) ([]advanced.Option, bool) {
	opts := []advanced.Option{
		advanced.WithChecks(c.Checks),
		advanced.WithStrategy(c.Strategy),
	}
	if c.MaxSimplices > 0 {
		opts = append(opts, advanced.WithMaxSimplices(c.MaxSimplices))
	}
	jitter := attempt > 0 || c.JitterDims[d]
	if jitter {
		opts = append(opts, advanced.WithJitter(c.seed(d, attempt)))
		if c.JitterLow != 0 || c.JitterHigh != 0 {
			opts = append(opts, advanced.WithJitterRange(c.JitterLow, c.JitterHigh))
		}
	}
	return opts, jitter
}

// Validate rejects configs that would make the library panic.
func (c Config) Validate() error {
	if len(c.Dims) == 0 {
		return errors.New("no dimensions to triangulate")
	}
	for _, d := range c.Dims {
		if d < 2 {
			return errors.Errorf("dimension %d is too small", d)
		}
	}
	if c.JitterLow != 0 || c.JitterHigh != 0 {
		if !(c.JitterLow > 0 && c.JitterLow < c.JitterHigh && c.JitterHigh < 1) {
			return errors.Errorf("jitter range [%g, %g] must satisfy 0 < low < high < 1", c.JitterLow, c.JitterHigh)
		}
	}
	if c.Retries < 0 {
		return errors.Errorf("retries must not be negative, got %d", c.Retries)
	}
	if c.MaxSimplices < 0 {
		return errors.Errorf("simplex limit must not be negative, got %d", c.MaxSimplices)
	}
	return nil
}
