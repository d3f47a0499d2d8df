package registry

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidName indicates an empty entry name
	ErrInvalidName = errors.New("invalid name")
	// ErrInvalidPath indicates an empty or unresolvable entry path
	ErrInvalidPath = errors.New("invalid path")
)

// PersistenceError reports a failure reading, writing, decoding or copying
// the registry file.
type PersistenceError struct {
	Op   string // "load", "save" or "backup"
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// ErrNotFound matches any *NotFoundError via errors.Is.
var ErrNotFound = errors.New("entry not found")

// NotFoundError reports a name with no registered entry.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s is not found in vm_list", e.Name)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }
