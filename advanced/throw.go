package advanced

import (
	"fmt"

	"github.com/pkg/errors"
)

// Threading errors through every hyperplane fit and every level of the
// splitting recursion would bury the geometry under error plumbing. Instead,
// deep code panics with one of the typed errors below, and every exported
// entry point recovers the panic and returns it as an ordinary error.

// GeometryError reports a hyperplane that cannot be fit: the anchor points
// are affinely dependent, or the computed normal fails the orthogonality
// check.
type GeometryError struct {
	Reason string
}

func (e *GeometryError) Error() string {
	return "geometry error: " + e.Reason
}

// DimensionError reports a point matrix of the wrong shape, or a simplex
// requested below the supported dimension.
type DimensionError struct {
	D      int
	Reason string
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("dimension error (D=%d): %s", e.D, e.Reason)
}

// TriangulationError reports a point set the splitter could not partition.
type TriangulationError struct {
	Points int
	Reason string
}

func (e *TriangulationError) Error() string {
	return fmt.Sprintf("triangulation error (%d points): %s", e.Points, e.Reason)
}

func throwGeometry(format string, args ...interface{}) {
	panic(errors.WithStack(&GeometryError{Reason: fmt.Sprintf(format, args...)}))
}

func throwDimension(d int, format string, args ...interface{}) {
	panic(errors.WithStack(&DimensionError{D: d, Reason: fmt.Sprintf(format, args...)}))
}

func throwTriangulation(points int, format string, args ...interface{}) {
	panic(errors.WithStack(&TriangulationError{Points: points, Reason: fmt.Sprintf(format, args...)}))
}

// HandlePanicRecover converts a recovered panic value back into an error when
// it was thrown by this package. Anything else is a genuine bug, and is
// re-panicked.
func HandlePanicRecover(r interface{}) error {
	if r == nil {
		return nil
	}
	if err, ok := r.(error); ok && isThrown(err) {
		return err
	}
	panic(r)
}

func isThrown(err error) bool {
	var (
		geometryErr      *GeometryError
		dimensionErr     *DimensionError
		triangulationErr *TriangulationError
	)
	return errors.As(err, &geometryErr) ||
		errors.As(err, &dimensionErr) ||
		errors.As(err, &triangulationErr)
}
