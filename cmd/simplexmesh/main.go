// Command simplexmesh writes triangulations of the unit simplex to mesh files,
// and checks mesh files it wrote before.
//
//	simplexmesh generate --from 4 --to 25 --out .cache
//	simplexmesh generate -d 5 --strategy pulling --png /tmp/mesh.png --imgcat
//	simplexmesh check .cache/5_triangulation.txt --samples 10000
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/osuushi/simplexmesh/advanced"
	"github.com/osuushi/simplexmesh/internal/driver"
	"github.com/osuushi/simplexmesh/render"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"
)

type cli struct {
	app *kingpin.Application

	generate struct {
		cmd        *kingpin.CmdClause
		dims       *[]int
		from, to   *int
		out        *string
		strategy   *string
		jitterDims *[]int
		jitterLow  *float64
		jitterHigh *float64
		seed       *int64
		retries    *int
		jobs       *int
		maxCells   *int
		checks     *bool
		png        *string
		svg        *string
		size       *int
		imgcat     *bool
		verbose    *bool
	}

	check struct {
		cmd     *kingpin.CmdClause
		file    *string
		dim     *int
		samples *int
		seed    *int64
	}
}

func newCLI() *cli {
	c := &cli{app: kingpin.New("simplexmesh", "Recursive triangulation of the unit simplex.")}
	defaults := driver.DefaultConfig()

	g := &c.generate
	g.cmd = c.app.Command("generate", "Triangulate the unit simplex and write one mesh file per dimension.")
	g.dims = g.cmd.Flag("dim", "Dimension to triangulate (repeatable). Overrides --from and --to.").Short('d').Ints()
	g.from = g.cmd.Flag("from", "Smallest dimension.").Default(fmt.Sprint(driver.DefaultMinDim)).Int()
	g.to = g.cmd.Flag("to", "Largest dimension.").Default(fmt.Sprint(driver.DefaultMaxDim)).Int()
	g.out = g.cmd.Flag("out", "Output directory.").Short('o').Default(driver.DefaultOutDir).String()
	g.strategy = g.cmd.Flag("strategy", "How the edge point polytope is split.").Default(advanced.StrategyHeuristic.String()).
		Enum(advanced.StrategyHeuristic.String(), advanced.StrategyPulling.String())
	g.jitterDims = g.cmd.Flag("jitter-dims", "Dimensions whose first attempt uses jittered edge ratios (repeatable).").
		Default(intStrings(driver.DefaultJitterDims)...).Ints()
	g.jitterLow = g.cmd.Flag("jitter-low", "Lower bound of jittered edge ratios.").Default(fmt.Sprint(advanced.DefaultRatioLow)).Float64()
	g.jitterHigh = g.cmd.Flag("jitter-high", "Upper bound of jittered edge ratios.").Default(fmt.Sprint(advanced.DefaultRatioHigh)).Float64()
	g.seed = g.cmd.Flag("seed", "Base seed for jittered edge ratios.").Int64()
	g.retries = g.cmd.Flag("retries", "Jittered retries after a failed split.").Default(fmt.Sprint(driver.DefaultRetries)).Int()
	g.jobs = g.cmd.Flag("jobs", "Dimensions triangulated at once.").Short('j').Default(fmt.Sprint(defaults.Jobs)).Int()
	g.maxCells = g.cmd.Flag("max-simplices", "Largest triangulation allowed per dimension.").Default(fmt.Sprint(advanced.DefaultMaxSimplices)).Int()
	g.checks = g.cmd.Flag("checks", "Check every hyperplane normal (disable with --no-checks).").Default("true").Bool()
	g.png = g.cmd.Flag("png", "Draw each triangulation to this PNG file.").String()
	g.svg = g.cmd.Flag("svg", "Draw each triangulation to this SVG file.").String()
	g.size = g.cmd.Flag("size", "Image size in pixels.").Default("800").Int()
	g.imgcat = g.cmd.Flag("imgcat", "Print PNGs to the terminal (iTerm only).").Bool()
	g.verbose = g.cmd.Flag("verbose", "List every cell.").Short('v').Bool()

	k := &c.check
	k.cmd = c.app.Command("check", "Read a mesh file back and report on it.")
	k.file = k.cmd.Arg("file", "Mesh file.").Required().String()
	k.dim = k.cmd.Flag("dim", "Expected dimension.").Short('d').Int()
	k.samples = k.cmd.Flag("samples", "Sample this many points of the unit simplex and report how many the mesh covers.").Int()
	k.seed = k.cmd.Flag("seed", "Seed for sampling.").Default("1").Int64()

	return c
}

func intStrings(values []int) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = fmt.Sprint(v)
	}
	return out
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	logger := log.New(os.Stderr, "simplexmesh: ", 0)
	os.Exit(run(ctx, os.Args[1:], os.Stdout, logger))
}

// run executes one command line and returns the exit status.
func run(ctx context.Context, args []string, stdout io.Writer, logger *log.Logger) int {
	c := newCLI()
	command, err := c.app.Parse(args)
	if err != nil {
		logger.Print(err)
		return 2
	}

	switch command {
	case c.generate.cmd.FullCommand():
		err = c.runGenerate(ctx, stdout, logger)
	case c.check.cmd.FullCommand():
		err = c.runCheck(stdout)
	}
	if err != nil {
		logger.Print(err)
		return 1
	}
	return 0
}

func (c *cli) config(logger *log.Logger) driver.Config {
	g := &c.generate
	cfg := driver.DefaultConfig()

	cfg.Dims = *g.dims
	if len(cfg.Dims) == 0 {
		cfg.Dims = nil
		for d := *g.from; d <= *g.to; d++ {
			cfg.Dims = append(cfg.Dims, d)
		}
	}
	cfg.OutDir = *g.out
	cfg.Strategy, _ = advanced.ParseStrategy(*g.strategy)
	cfg.Checks = *g.checks
	cfg.MaxSimplices = *g.maxCells
	cfg.JitterDims = driver.JitterSet(*g.jitterDims)
	cfg.JitterLow, cfg.JitterHigh = *g.jitterLow, *g.jitterHigh
	cfg.Seed = *g.seed
	cfg.Retries = *g.retries
	cfg.Jobs = *g.jobs
	cfg.Logger = logger
	cfg.Verbose = *g.verbose
	return cfg
}

func (c *cli) runGenerate(ctx context.Context, stdout io.Writer, logger *log.Logger) error {
	g := &c.generate
	cfg := c.config(logger)
	results, err := driver.Run(ctx, cfg)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(stdout, "%s D=%d: %v\n", aurora.Red("failed"), r.D, r.Err)
			continue
		}
		jitter := ""
		if r.Jittered {
			jitter = ", jittered"
		}
		fmt.Fprintf(stdout, "%s D=%d: %d simplices -> %s (%d attempts%s, max linf ratio %.4f)\n",
			aurora.Green("ok"), r.D, r.Cells, r.Path, r.Attempts, jitter, r.MaxLinfNormRatio)

		if *g.png != "" {
			path := imagePath(*g.png, r.D, len(results))
			if err := render.PNG(path, r.Mesh.Simplex, r.Mesh.Cells, *g.size); err != nil {
				return err
			}
			if *g.imgcat {
				render.Preview(path)
			}
		}
		if *g.svg != "" {
			if err := writeSVG(imagePath(*g.svg, r.D, len(results)), r.Mesh, *g.size); err != nil {
				return err
			}
		}
	}
	if failed > 0 {
		return errors.Errorf("%d of %d dimensions failed", failed, len(results))
	}
	return nil
}

// imagePath adds the dimension to the file name when several dimensions
// would otherwise draw over each other.
func imagePath(path string, d, count int) string {
	if count == 1 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s_%d%s", strings.TrimSuffix(path, ext), d, ext)
}

func writeSVG(path string, mesh *advanced.Mesh, size int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = errors.WithStack(closeErr)
		}
	}()
	return render.SVG(f, mesh.Simplex, mesh.Cells, size)
}

func (c *cli) runCheck(stdout io.Writer) error {
	k := &c.check
	f, err := os.Open(*k.file)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()

	mesh, err := advanced.ParseMesh(f)
	if err != nil {
		return errors.Wrap(err, *k.file)
	}
	if *k.dim != 0 && *k.dim != mesh.D {
		return errors.Errorf("%s: mesh has dimension %d, want %d", *k.file, mesh.D, *k.dim)
	}

	root, err := advanced.UnitSimplex(mesh.D, advanced.WithChecks(false))
	if err != nil {
		return err
	}
	cells, err := mesh.Simplices(root.Vertices(), advanced.WithChecks(false))
	if err != nil {
		return errors.Wrap(err, *k.file)
	}
	fmt.Fprintf(stdout, "D=%d: %d vertices, %d simplices\n", mesh.D, mesh.NumVertices(), len(cells))

	if *k.samples > 0 {
		coverage := advanced.MeasureCoverage(root, cells, *k.samples, rand.New(rand.NewSource(*k.seed)))
		status := aurora.Green("partition")
		if coverage.Uncovered > 0 || coverage.Overlapping > 0 {
			status = aurora.Yellow("partial")
		}
		fmt.Fprintf(stdout, "%s: %.2f%% of %d samples covered, %d uncovered, %d overlapping\n",
			status, 100*coverage.Covered(), coverage.Samples, coverage.Uncovered, coverage.Overlapping)
	}
	return nil
}
