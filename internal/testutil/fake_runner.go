// Package testutil holds test doubles shared across packages.
package testutil

import (
	"context"

	"github.com/gurisko/vm/internal/vagrant"
)

// Call is one recorded runner invocation. Command is empty for Raw calls.
type Call struct {
	Dir     string
	Command string
	Options []string
	Raw     bool
}

// FakeRunner records invocations instead of spawning vagrant.
type FakeRunner struct {
	Calls  []Call
	Status vagrant.Status // Returned from every call
	Err    error          // Returned from every call when set
}

// NewFakeRunner returns a runner whose calls succeed with exit code 0.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{Status: vagrant.ExitStatus(0)}
}

func (f *FakeRunner) Subcommand(_ context.Context, dir, command string, options []string) (vagrant.Status, error) {
	f.Calls = append(f.Calls, Call{Dir: dir, Command: command, Options: append([]string(nil), options...)})
	if f.Err != nil {
		return vagrant.Status{}, f.Err
	}
	return f.Status, nil
}

func (f *FakeRunner) Raw(_ context.Context, dir string, options []string) (vagrant.Status, error) {
	f.Calls = append(f.Calls, Call{Dir: dir, Options: append([]string(nil), options...), Raw: true})
	if f.Err != nil {
		return vagrant.Status{}, f.Err
	}
	return f.Status, nil
}

var _ vagrant.Runner = (*FakeRunner)(nil)
