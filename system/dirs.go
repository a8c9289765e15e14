package system

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Tree describes the desired state of the data directory hierarchy. Reconcile
// computes the diff against the disk and only creates what is missing, so
// running it twice leaves the same state as running it once.
type Tree struct {
	Root    string
	Subdirs []string
	Marker  string // relative to Root

	DirMode    os.FileMode
	MarkerMode os.FileMode

	Owner *Account
}

// Reconcile creates missing directories, then normalizes ownership and
// permissions on every directory under the root. The marker file is created
// empty if absent and always gets its stricter mode.
func (t Tree) Reconcile() error {
	if err := os.MkdirAll(t.Root, t.DirMode); err != nil {
		return fmt.Errorf("unable to create %s: %w", t.Root, err)
	}

	for _, sub := range t.Subdirs {
		dir := filepath.Join(t.Root, sub)
		if err := os.MkdirAll(dir, t.DirMode); err != nil {
			return fmt.Errorf("unable to create %s: %w", dir, err)
		}
	}

	err := filepath.WalkDir(t.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := os.Chmod(path, t.DirMode); err != nil {
				return err
			}
		}
		return t.Owner.Own(path)
	})
	if err != nil {
		return fmt.Errorf("unable to normalize %s: %w", t.Root, err)
	}

	if t.Marker != "" {
		if err := t.reconcileMarker(); err != nil {
			return err
		}
	}

	return nil
}

func (t Tree) reconcileMarker() error {
	marker := filepath.Join(t.Root, t.Marker)

	if _, err := os.Stat(marker); os.IsNotExist(err) {
		file, err := os.OpenFile(marker, os.O_WRONLY|os.O_CREATE, t.MarkerMode)
		if err != nil {
			return fmt.Errorf("unable to create %s: %w", marker, err)
		}
		file.Close()
	} else if err != nil {
		return err
	}

	if err := os.Chmod(marker, t.MarkerMode); err != nil {
		return err
	}

	return t.Owner.Own(marker)
}
