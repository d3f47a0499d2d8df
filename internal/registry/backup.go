package registry

import (
	"fmt"
	"io"
	"os"
	"time"
)

// BackupTimeFormat is the suffix layout appended to backup file names.
const BackupTimeFormat = "2006-01-02-150405"

// BackupName returns the sibling path a backup of path taken at now is
// written to, e.g. config.toml.2026-10-16-093012.
func BackupName(path string, now time.Time) string {
	return path + "." + now.Format(BackupTimeFormat)
}

// Backup copies the file at path byte for byte to BackupName(path, now)
// and returns the backup path. An existing backup with the same name is
// never overwritten; the call fails and the caller may retry later.
func Backup(path string, now time.Time) (string, error) {
	dst := BackupName(path, now)

	src, err := os.Open(path)
	if err != nil {
		return "", &PersistenceError{Op: "backup", Path: path, Err: err}
	}
	defer src.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", &PersistenceError{Op: "backup", Path: dst, Err: err}
	}

	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return "", &PersistenceError{Op: "backup", Path: dst, Err: fmt.Errorf("failed to copy: %w", err)}
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return "", &PersistenceError{Op: "backup", Path: dst, Err: fmt.Errorf("failed to fsync: %w", err)}
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return "", &PersistenceError{Op: "backup", Path: dst, Err: err}
	}
	return dst, nil
}
