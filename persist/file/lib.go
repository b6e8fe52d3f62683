// Package file stores paramtree snapshots as files in a directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jrhy/paramtree/snapshot"
)

// Persist implements the snapshot.Persist interface for storing and
// loading snapshots from files.
type Persist struct {
	basepath string
}

var _ snapshot.Persist = Persist{}

// fileName resolves name inside the base directory, refusing names that
// would reach outside it.
func (p Persist) fileName(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q is not a plain file name", snapshot.ErrInvalidLink, name)
	}
	return filepath.Join(p.basepath, name), nil
}

// Load loads the bytes persisted in the named file.
func (p Persist) Load(ctx context.Context, name string) ([]byte, error) {
	path, err := p.fileName(name)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %v", snapshot.ErrNotFound, err)
	}
	return b, err
}

// Store persists the given bytes in a file of the given name, if it
// doesn't exist already. The file is written under a temporary name and
// renamed into place so readers never see a partial snapshot.
func (p Persist) Store(ctx context.Context, name string, bytes []byte) error {
	path, err := p.fileName(name)
	if err != nil {
		return err
	}
	_, err = os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}
	tmp, err := os.CreateTemp(p.basepath, name+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(bytes); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// NewPersistForPath returns a Persist that loads and stores snapshots as
// files in the directory at the given path, creating it if needed.
//
//	p, err := NewPersistForPath("/var/db/settings")
//	b, err := p.Load(ctx, "mF3p2x...")
func NewPersistForPath(path string) (Persist, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return Persist{}, fmt.Errorf("create %s: %w", path, err)
	}
	return Persist{path}, nil
}
