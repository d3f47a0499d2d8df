// Package finder locates Vagrant projects on disk.
package finder

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
)

// VagrantfileName is the file that marks a Vagrant project directory.
const VagrantfileName = "Vagrantfile"

// Find walks root and calls fn with the absolute path of every regular file
// named Vagrantfile. Symlinked directories are not followed. Unreadable
// directories below root are skipped.
func Find(root string, logger *slog.Logger, fn func(path string) error) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", root, err)
	}

	return filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == absRoot {
				return err
			}
			if logger != nil {
				logger.Debug("skipping unreadable path", "path", path, "error", err)
			}
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || d.Name() != VagrantfileName {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		return fn(path)
	})
}

// All returns every Vagrantfile under root in walk order.
func All(root string, logger *slog.Logger) ([]string, error) {
	var found []string
	err := Find(root, logger, func(path string) error {
		found = append(found, path)
		return nil
	})
	return found, err
}
