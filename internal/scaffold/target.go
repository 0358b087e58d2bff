package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/shopify-pipeline/create-shopify-pipeline/internal/naming"
	"github.com/spf13/afero"
)

// ErrTargetExists is returned when the target directory is already present.
var ErrTargetExists = errors.New("the given directory already exists")

// Target is the validated name of a new project and its absolute directory.
type Target struct {
	Name string
	Dir  string
}

// NewTarget validates name and resolves it against baseDir. An empty
// baseDir means the current working directory.
func NewTarget(baseDir, name string) (Target, error) {
	if err := naming.Check(name); err != nil {
		return Target{}, err
	}

	dir, err := filepath.Abs(filepath.Join(baseDir, name))
	if err != nil {
		return Target{}, fmt.Errorf("resolving target directory: %w", err)
	}
	return Target{Name: name, Dir: dir}, nil
}

// CheckTarget returns nil if dir does not exist, ErrTargetExists if it does,
// and the underlying error if it cannot be inspected.
func CheckTarget(fsys afero.Fs, dir string) error {
	_, err := fsys.Stat(dir)
	switch {
	case err == nil:
		return fmt.Errorf("%w: %s", ErrTargetExists, dir)
	case errors.Is(err, fs.ErrNotExist):
		return nil
	default:
		return fmt.Errorf("checking %s: %w", dir, err)
	}
}
