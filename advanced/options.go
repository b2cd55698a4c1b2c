package advanced

import (
	"math"
	"math/rand"
)

// Strategy selects how the interior polytope left after cutting off the
// vertex corners is split into simplices.
type Strategy int

const (
	// StrategyHeuristic is the balanced hyperplane splitter. It searches a
	// bounded candidate set of separating hyperplanes and yields C(D,2)+1
	// simplices for a D-simplex as long as no chosen cut passes through an
	// edge point. Each point on a cut goes to both halves and adds cells,
	// which happens for some dimensions from D=14 on with evenly spaced
	// ratios. The pieces have disjoint interiors, but for D >= 4 they do not
	// cover the whole interior polytope.
	StrategyHeuristic Strategy = iota
	// StrategyPulling cones the interior polytope from one edge point over
	// the facets that do not contain it. It yields 2^(D-1) simplices for a
	// D-simplex and is a true partition.
	StrategyPulling
)

func (s Strategy) String() string {
	switch s {
	case StrategyHeuristic:
		return "heuristic"
	case StrategyPulling:
		return "pulling"
	}
	return "unknown"
}

// ParseStrategy is the inverse of Strategy.String.
func ParseStrategy(name string) (Strategy, bool) {
	switch name {
	case "heuristic":
		return StrategyHeuristic, true
	case "pulling":
		return StrategyPulling, true
	}
	return 0, false
}

const (
	// DefaultTolerance is the absolute tolerance for every sidedness and
	// orthogonality comparison.
	DefaultTolerance = 1e-9

	// Deterministic edge ratios are spread evenly over this range.
	DefaultRatioLow  = 0.4
	DefaultRatioHigh = 0.6

	// DefaultMaxSimplices caps the number of simplices a single
	// triangulation may produce. The pulling strategy doubles per dimension.
	DefaultMaxSimplices = 1 << 16
)

const (
	panicToleranceInvalid   = "advanced: WithTolerance: tolerance must be finite and positive"
	panicJitterRangeInvalid = "advanced: WithJitterRange: need 0 < lo < hi < 1"
	panicMaxSimplices       = "advanced: WithMaxSimplices: limit must be positive"
	panicNilRand            = "advanced: WithRand: rng must not be nil"
)

// Options carries the numeric policy and edge point configuration shared by
// hyperplanes, simplices and the splitter. Children inherit the options of
// the simplex they were cut from.
type Options struct {
	Checks       bool
	Tolerance    float64
	Strategy     Strategy
	MaxSimplices int
	Fallback     bool

	// Jitter draws edge ratios uniformly from [JitterLow, JitterHigh]
	// instead of spacing them evenly over the default range.
	Jitter     bool
	JitterLow  float64
	JitterHigh float64
	Rand       *rand.Rand
}

// Option mutates Options.
type Option func(*Options)

func defaultOptions() Options {
	return Options{
		Checks:       true,
		Tolerance:    DefaultTolerance,
		Strategy:     StrategyHeuristic,
		MaxSimplices: DefaultMaxSimplices,
		Fallback:     true,
		JitterLow:    DefaultRatioLow,
		JitterHigh:   DefaultRatioHigh,
	}
}

func gatherOptions(opts []Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Jitter && o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(0))
	}
	return o
}

// WithChecks toggles the orthogonality and dimension assertions.
func WithChecks(enabled bool) Option {
	return func(o *Options) { o.Checks = enabled }
}

// WithTolerance sets the absolute tolerance for geometric comparisons.
func WithTolerance(eps float64) Option {
	if !(eps > 0) || math.IsInf(eps, 0) {
		panic(panicToleranceInvalid)
	}
	return func(o *Options) { o.Tolerance = eps }
}

// WithStrategy selects the interior splitting strategy.
func WithStrategy(s Strategy) Option {
	return func(o *Options) { o.Strategy = s }
}

// WithMaxSimplices bounds the size of a single triangulation.
func WithMaxSimplices(n int) Option {
	if n <= 0 {
		panic(panicMaxSimplices)
	}
	return func(o *Options) { o.MaxSimplices = n }
}

// WithFallback toggles the barycentric separator search the heuristic
// splitter uses when none of its bounded candidates splits the point set.
func WithFallback(enabled bool) Option {
	return func(o *Options) { o.Fallback = enabled }
}

// WithJitter draws edge ratios at random from a generator seeded with seed.
func WithJitter(seed int64) Option {
	return func(o *Options) {
		o.Jitter = true
		o.Rand = rand.New(rand.NewSource(seed))
	}
}

// WithRand draws jittered edge ratios from rng. The generator is not safe
// for concurrent use, so it must not be shared between goroutines.
func WithRand(rng *rand.Rand) Option {
	if rng == nil {
		panic(panicNilRand)
	}
	return func(o *Options) {
		o.Jitter = true
		o.Rand = rng
	}
}

// WithJitterRange changes the range jittered ratios are drawn from.
func WithJitterRange(lo, hi float64) Option {
	if !(lo > 0 && lo < hi && hi < 1) {
		panic(panicJitterRangeInvalid)
	}
	return func(o *Options) {
		o.JitterLow = lo
		o.JitterHigh = hi
	}
}
