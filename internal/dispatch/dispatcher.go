// Package dispatch executes one parsed request against the registry.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gurisko/vm/internal/finder"
	"github.com/gurisko/vm/internal/registry"
	"github.com/gurisko/vm/internal/vagrant"
	"gopkg.in/yaml.v3"
)

// Exit codes returned by Dispatch. A forwarded vagrant run returns the
// child's own code instead.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// Config wires a Dispatcher to its collaborators.
type Config struct {
	ConfigPath string
	Runner     vagrant.Runner
	Confirmer  Confirmer
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Now        func() time.Time
}

// Dispatcher runs a single request. It holds no state between requests
// beyond the registry it was given.
type Dispatcher struct {
	configPath string
	reg        *registry.Registry
	runner     vagrant.Runner
	confirmer  Confirmer
	stdout     io.Writer
	stderr     io.Writer
	logger     *slog.Logger
	now        func() time.Time
}

// New returns a Dispatcher for reg. Unset streams default to the process's
// standard streams and an unset Confirmer reads one byte from stdin.
func New(cfg Config, reg *registry.Registry) *Dispatcher {
	d := &Dispatcher{
		configPath: cfg.ConfigPath,
		reg:        reg,
		runner:     cfg.Runner,
		confirmer:  cfg.Confirmer,
		stdout:     cfg.Stdout,
		stderr:     cfg.Stderr,
		logger:     cfg.Logger,
		now:        cfg.Now,
	}
	if d.stdout == nil {
		d.stdout = os.Stdout
	}
	if d.stderr == nil {
		d.stderr = os.Stderr
	}
	if d.confirmer == nil {
		d.confirmer = ByteConfirmer{R: os.Stdin}
	}
	if d.logger == nil {
		d.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if d.now == nil {
		d.now = time.Now
	}
	return d
}

// Dispatch executes req and returns the process exit code. A non-nil error
// is fatal and has not been printed yet.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (int, error) {
	d.logger.Debug("dispatching request", "request", fmt.Sprintf("%T", req))

	switch r := req.(type) {
	case List:
		return d.list(r)
	case Add:
		return d.add(r)
	case Remove:
		return d.remove(r)
	case BackupConfig:
		return d.backup()
	case FindVagrantfiles:
		return d.find(r)
	case ConfigFilePath:
		fmt.Fprintln(d.stdout, d.configPath)
		return ExitOK, nil
	case RunVagrant:
		return d.run(ctx, r.Name, func(dir string) (vagrant.Status, error) {
			return d.runner.Subcommand(ctx, dir, r.Command, r.Options)
		})
	case RawVagrant:
		return d.run(ctx, r.Name, func(dir string) (vagrant.Status, error) {
			return d.runner.Raw(ctx, dir, r.Options)
		})
	case GlobalVagrant:
		st, err := d.runner.Raw(ctx, "", r.Options)
		if err != nil {
			return ExitFailure, err
		}
		return exitCode(st), nil
	default:
		return ExitUsage, fmt.Errorf("unsupported request %T", req)
	}
}

type listOutput struct {
	VagrantPath string            `json:"vagrant_path" yaml:"vagrant_path"`
	Entries     []*registry.Entry `json:"entries" yaml:"entries"`
}

func (d *Dispatcher) list(r List) (int, error) {
	entries := d.reg.List()

	switch r.Format {
	case "json":
		enc := json.NewEncoder(d.stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(listOutput{VagrantPath: d.reg.VagrantPath, Entries: entries}); err != nil {
			return ExitFailure, err
		}
	case "yaml":
		enc := yaml.NewEncoder(d.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(listOutput{VagrantPath: d.reg.VagrantPath, Entries: entries}); err != nil {
			return ExitFailure, err
		}
		if err := enc.Close(); err != nil {
			return ExitFailure, err
		}
	case "":
		for _, e := range entries {
			fmt.Fprintf(d.stdout, "%s: %s\n", e.Name, e.Path)
		}
	default:
		return ExitUsage, fmt.Errorf("unknown list format %q (want json or yaml)", r.Format)
	}
	return ExitOK, nil
}

func (d *Dispatcher) add(r Add) (int, error) {
	prev, err := d.reg.Add(r.Name, r.Path)
	if err != nil {
		return ExitFailure, err
	}
	if prev != nil {
		fmt.Fprintf(d.stderr, "overwrote entry { name: %s, path: %s }\n", prev.Name, prev.Path)
	}
	if err := d.reg.Save(d.configPath); err != nil {
		return ExitFailure, err
	}

	e := d.reg.Get(r.Name)
	d.logger.Debug("entry added", "name", e.Name, "path", e.Path)
	fmt.Fprintf(d.stdout, "Added %s: %s\n", e.Name, e.Path)
	return ExitOK, nil
}

func (d *Dispatcher) remove(r Remove) (int, error) {
	e := d.reg.Get(r.Name)
	if e == nil {
		fmt.Fprintln(d.stderr, (&registry.NotFoundError{Name: r.Name}).Error())
		return ExitOK, nil
	}

	if !r.Force {
		fmt.Fprintf(d.stdout, "Delete this entry { name: %s, path: %s } (y/N) ", e.Name, e.Path)
		ok, err := d.confirmer.Confirm()
		if err != nil {
			fmt.Fprintln(d.stdout)
			return ExitFailure, fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !ok {
			fmt.Fprintln(d.stdout, "aborted")
			return ExitOK, nil
		}
	}

	d.reg.Remove(r.Name)
	if err := d.reg.Save(d.configPath); err != nil {
		return ExitFailure, err
	}
	d.logger.Debug("entry removed", "name", e.Name, "path", e.Path)
	fmt.Fprintln(d.stdout, "Removed", e.Name)
	return ExitOK, nil
}

func (d *Dispatcher) backup() (int, error) {
	dst, err := registry.Backup(d.configPath, d.now())
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return ExitFailure, fmt.Errorf("%w (a backup was already taken this second; retry)", err)
		}
		return ExitFailure, err
	}
	fmt.Fprintf(d.stdout, "Backed up %s to %s\n", d.configPath, dst)
	return ExitOK, nil
}

func (d *Dispatcher) find(r FindVagrantfiles) (int, error) {
	err := finder.Find(r.BasePath, d.logger, func(path string) error {
		_, err := fmt.Fprintln(d.stdout, path)
		return err
	})
	if err != nil {
		return ExitFailure, err
	}
	return ExitOK, nil
}

func (d *Dispatcher) run(ctx context.Context, name string, invoke func(dir string) (vagrant.Status, error)) (int, error) {
	if err := ctx.Err(); err != nil {
		return ExitFailure, err
	}
	e := d.reg.Get(name)
	if e == nil {
		return ExitFailure, &registry.NotFoundError{Name: name}
	}

	st, err := invoke(e.Path)
	if err != nil {
		return ExitFailure, err
	}
	return exitCode(st), nil
}

// exitCode maps a child status to the tool's exit code, falling back to
// ExitFailure when the child produced none.
func exitCode(st vagrant.Status) int {
	if code, ok := st.Code(); ok {
		return code
	}
	return ExitFailure
}
