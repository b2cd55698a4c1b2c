package driver

import (
	"os"
	"path/filepath"

	"github.com/osuushi/simplexmesh/advanced"
	"github.com/pkg/errors"
)

// writeAtomic writes the mesh next to path and renames it into place, so a
// reader never sees a partial file.
func writeAtomic(path string, mesh *advanced.Mesh) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	if _, err = mesh.WriteTo(f); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}
	return errors.Wrap(os.Rename(f.Name(), path), "renaming temp file")
}
