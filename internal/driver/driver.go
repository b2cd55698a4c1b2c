// Package driver triangulates the unit simplex for a batch of dimensions and
// writes one mesh file per dimension.
package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/osuushi/simplexmesh/advanced"
	"github.com/pkg/errors"
)

// Result reports what happened to one dimension.
type Result struct {
	D        int
	Path     string
	Cells    int
	Attempts int
	Jittered bool
	// MaxLinfNormRatio is the largest MaxLinfNormRatio(2) over all cells.
	MaxLinfNormRatio float64
	Mesh             *advanced.Mesh
	Err              error
}

// FileName is the mesh file name for dimension d.
func FileName(d int) string {
	return fmt.Sprintf("%d_triangulation.txt", d)
}

// Run triangulates every dimension of the config on a pool of workers and
// returns the results in the order of cfg.Dims. A failed dimension writes
// nothing and does not stop the others.
func Run(ctx context.Context, cfg Config) ([]Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating %s", cfg.OutDir)
	}

	jobs := cfg.Jobs
	if jobs < 1 {
		jobs = 1
	}
	if jobs > len(cfg.Dims) {
		jobs = len(cfg.Dims)
	}

	results := make([]Result, len(cfg.Dims))
	indexes := make(chan int)
	var wg sync.WaitGroup
	wg.Add(jobs)
	for w := 0; w < jobs; w++ {
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = Generate(ctx, cfg, cfg.Dims[i])
			}
		}()
	}
	for i := range cfg.Dims {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return results, nil
}

// Generate triangulates the unit simplex of dimension d and writes its mesh
// to cfg.OutDir. Failures that jitter may fix are retried with fresh seeds.
func Generate(ctx context.Context, cfg Config, d int) Result {
	logger := cfg.logger()
	result := Result{D: d}

	for attempt := 0; attempt <= cfg.Retries; attempt++ {
		if err := ctx.Err(); err != nil {
			result.Err = errors.Wrapf(err, "D=%d", d)
			return result
		}
		result.Attempts = attempt + 1

		opts, jittered := cfg.options(d, attempt)
		result.Jittered = jittered
		mesh, err := triangulate(d, opts)
		if err != nil {
			result.Err = errors.Wrapf(err, "D=%d attempt %d", d, attempt+1)
			if !retryable(err) {
				return result
			}
			logger.Printf("D=%d attempt %d failed: %v", d, attempt+1, err)
			continue
		}

		result.Err = nil
		result.Mesh = mesh
		result.Cells = len(mesh.Cells)
		for _, cell := range mesh.Cells {
			if r := cell.MaxLinfNormRatio(2); r > result.MaxLinfNormRatio {
				result.MaxLinfNormRatio = r
			}
		}
		if cfg.Verbose {
			for i, cell := range mesh.Cells {
				logger.Printf("D=%d cell %d: %s", d, i, cell)
			}
		}

		result.Path = filepath.Join(cfg.OutDir, FileName(d))
		if err := writeAtomic(result.Path, mesh); err != nil {
			result.Path = ""
			result.Err = errors.Wrapf(err, "D=%d", d)
		}
		return result
	}
	return result
}

func triangulate(d int, opts []advanced.Option) (*advanced.Mesh, error) {
	root, err := advanced.UnitSimplex(d, opts...)
	if err != nil {
		return nil, err
	}
	return advanced.NewMesh(root)
}

func retryable(err error) bool {
	var (
		triangulationErr *advanced.TriangulationError
		geometryErr      *advanced.GeometryError
	)
	return errors.As(err, &triangulationErr) || errors.As(err, &geometryErr)
}
