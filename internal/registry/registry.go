package registry

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/BurntSushi/toml"
)

// DefaultVagrantPath returns the executable name used when the config file
// does not name one.
func DefaultVagrantPath() string {
	if runtime.GOOS == "windows" {
		return "vagrant.exe"
	}
	return "vagrant"
}

// Registry holds the named entries and the vagrant executable to invoke.
// It is not safe for concurrent use.
type Registry struct {
	VagrantPath string
	entries     map[string]*Entry
}

// New returns an empty Registry with the platform default vagrant path.
func New() *Registry {
	return &Registry{
		VagrantPath: DefaultVagrantPath(),
		entries:     make(map[string]*Entry),
	}
}

// Load reads the registry from path. A missing file yields an empty
// Registry; that is the first-run case, not an error.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(), nil
		}
		return nil, &PersistenceError{Op: "load", Path: path, Err: err}
	}

	var fd fileData
	if _, err := toml.Decode(string(data), &fd); err != nil {
		return nil, &PersistenceError{Op: "load", Path: path, Err: fmt.Errorf("failed to decode registry: %w", err)}
	}

	r := New()
	if fd.VagrantPath != "" {
		r.VagrantPath = fd.VagrantPath
	}
	for name, p := range fd.VMList {
		if name == "" {
			return nil, &PersistenceError{Op: "load", Path: path, Err: ErrInvalidName}
		}
		r.entries[name] = &Entry{Name: name, Path: p}
	}
	return r, nil
}

// Encode renders the registry in its on-disk form. Keys are sorted, so
// equal registries encode to equal bytes.
func (r *Registry) Encode() ([]byte, error) {
	fd := fileData{
		VagrantPath: r.VagrantPath,
		VMList:      make(map[string]string, len(r.entries)),
	}
	for name, e := range r.entries {
		fd.VMList[name] = e.Path
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(fd); err != nil {
		return nil, fmt.Errorf("failed to encode registry: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the registry to path through a temp file in the same
// directory, so a failed write never leaves a partial file behind.
func (r *Registry) Save(path string) error {
	data, err := r.Encode()
	if err != nil {
		return &PersistenceError{Op: "save", Path: path, Err: err}
	}
	if err := writeFileAtomic(path, data); err != nil {
		return &PersistenceError{Op: "save", Path: path, Err: err}
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.CreateTemp(dir, ".config-*.toml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmp := f.Name()
	// No-op after a successful rename
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write registry: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to fsync registry: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close registry file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace registry: %w", err)
	}

	if dirf, err := os.Open(dir); err == nil {
		_ = dirf.Sync()
		_ = dirf.Close()
	}
	return nil
}

// Add stores name -> path, resolving path against the current working
// directory. It returns the entry it replaced, if any.
func (r *Registry) Add(name, path string) (*Entry, error) {
	if name == "" {
		return nil, ErrInvalidName
	}
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: path=%s: %v", ErrInvalidPath, path, err)
	}

	prev := r.entries[name]
	r.entries[name] = &Entry{Name: name, Path: absPath}
	return prev, nil
}

// Remove deletes name and returns the removed entry, or nil if absent.
func (r *Registry) Remove(name string) *Entry {
	e, ok := r.entries[name]
	if !ok {
		return nil
	}
	delete(r.entries, name)
	return e
}

// Get returns the entry for name, or nil.
func (r *Registry) Get(name string) *Entry {
	return r.entries[name]
}

// Len returns the number of entries.
func (r *Registry) Len() int { return len(r.entries) }

// List returns all entries sorted by name.
func (r *Registry) List() []*Entry {
	entries := make([]*Entry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// LoadOrCreate loads the registry at path and, when no file exists yet,
// writes one with the defaults so the user has something to edit.
func LoadOrCreate(path string) (*Registry, error) {
	r, err := Load(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := r.Save(path); err != nil {
			return nil, err
		}
	}
	return r, nil
}
