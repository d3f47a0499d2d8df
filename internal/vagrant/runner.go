// Package vagrant runs the vagrant executable on behalf of a registry entry.
package vagrant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"strings"
)

// Runner invokes vagrant in a working directory. Implementations hand the
// terminal to the child and block until it exits.
type Runner interface {
	// Subcommand runs `vagrant <command> <options...>`.
	Subcommand(ctx context.Context, dir, command string, options []string) (Status, error)
	// Raw runs `vagrant <options...>` with no injected subcommand.
	Raw(ctx context.Context, dir string, options []string) (Status, error)
}

// Status is how a vagrant process terminated.
type Status struct {
	code   int
	exited bool
}

// ExitStatus returns a Status for a process that exited with code.
func ExitStatus(code int) Status { return Status{code: code, exited: true} }

// SignaledStatus returns a Status for a process that ended without an exit
// code, e.g. killed by a signal.
func SignaledStatus() Status { return Status{} }

// Code returns the exit code and whether the process produced one.
func (s Status) Code() (int, bool) { return s.code, s.exited }

// Success reports whether the process exited with code 0.
func (s Status) Success() bool { return s.exited && s.code == 0 }

func (s Status) String() string {
	if !s.exited {
		return "terminated without exit code"
	}
	return fmt.Sprintf("exit status %d", s.code)
}

// ProcessError reports that the vagrant executable could not be found or
// started. A nonzero exit is not a ProcessError.
type ProcessError struct {
	Path string
	Err  error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("cannot run %s: %v", e.Path, e.Err)
}

func (e *ProcessError) Unwrap() error { return e.Err }

// Exec runs the real vagrant executable.
type Exec struct {
	Path   string // Executable name or path, resolved through PATH
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// NewExec returns an Exec wired to the process's standard streams.
func NewExec(path string, logger *slog.Logger) *Exec {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Exec{
		Path:   path,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: logger,
	}
}

func (x *Exec) Subcommand(ctx context.Context, dir, command string, options []string) (Status, error) {
	argv := make([]string, 0, 1+len(options))
	argv = append(argv, command)
	argv = append(argv, options...)
	return x.run(ctx, dir, argv)
}

func (x *Exec) Raw(ctx context.Context, dir string, options []string) (Status, error) {
	return x.run(ctx, dir, options)
}

func (x *Exec) run(ctx context.Context, dir string, argv []string) (Status, error) {
	bin, err := exec.LookPath(x.Path)
	if err != nil {
		return Status{}, &ProcessError{Path: x.Path, Err: err}
	}

	cmd := exec.CommandContext(ctx, bin, argv...)
	cmd.Dir = dir
	cmd.Stdin = x.Stdin
	cmd.Stdout = x.Stdout
	cmd.Stderr = x.Stderr

	x.Logger.Debug("running vagrant",
		"path", bin,
		"args", strings.Join(argv, " "),
		"dir", dir,
	)

	// The child owns the terminal; let it handle Ctrl-C while we wait.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	defer signal.Stop(sigs)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			st := statusFromState(exitErr.ProcessState)
			x.Logger.Debug("vagrant finished", "status", st.String())
			return st, nil
		}
		return Status{}, &ProcessError{Path: bin, Err: err}
	}

	st := statusFromState(cmd.ProcessState)
	x.Logger.Debug("vagrant finished", "status", st.String())
	return st, nil
}

func statusFromState(ps *os.ProcessState) Status {
	if ps == nil {
		return SignaledStatus()
	}
	// ExitCode is -1 when the process was killed by a signal
	if code := ps.ExitCode(); code >= 0 {
		return ExitStatus(code)
	}
	return SignaledStatus()
}
