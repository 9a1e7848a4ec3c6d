// Package contents abstracts how working-tree file content is read. The
// backing store may be the local filesystem, a remote contents service, or a
// test double; the git façade only ever sees the Store interface.
package contents

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store reads working-tree file content by root-relative path.
type Store interface {
	Get(path string) (string, error)
}

// Dir is a Store rooted at a directory on the local filesystem.
type Dir struct {
	Root string
}

// NewDir creates a Store rooted at root.
func NewDir(root string) Dir {
	return Dir{Root: root}
}

func (d Dir) Get(path string) (string, error) {
	data, err := os.ReadFile(filepath.Join(d.Root, path))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
