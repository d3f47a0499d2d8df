package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gurisko/vm/internal/dispatch"
	"github.com/spf13/cobra"
)

// exitError carries the exit code of a command that ran. err is nil when
// the code came from a forwarded vagrant process.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func newRootCmd(version string) *cobra.Command {
	a := newApp()
	var cmdline string

	rootCmd := &cobra.Command{
		Use:   "vm [flags] NAME [VAGRANT_ARGS...]",
		Short: "A vagrant wrapper for working directory independent execution",
		Long: `vm runs vagrant against a registered project directory from anywhere.

Examples:
  vm add web ~/projects/web        # register a Vagrant project
  vm web up                        # vagrant up, run in ~/projects/web
  vm web ssh -L 8080:localhost:80  # options are passed through untouched
  vm web -c 'ssh -- -A'            # one shell-quoted vagrant command line
  vm -- global-status --prune      # run vagrant in the current directory`,
		Version: version,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && cmdline == "" && cmd.ArgsLenAtDash() < 0 {
				return cmd.Help()
			}
			req, err := parseForward(args, cmd.ArgsLenAtDash(), cmdline)
			if err != nil {
				return err
			}
			return a.dispatch(cmd, req)
		},
	}

	// Everything after NAME belongs to vagrant.
	rootCmd.Flags().SetInterspersed(false)
	rootCmd.Flags().StringVarP(&cmdline, "command", "c", "", "vagrant arguments as a single shell-quoted string")
	a.bindFlags(rootCmd)

	rootCmd.AddCommand(
		newListCmd(a),
		newAddCmd(a),
		newRemoveCmd(a),
		newBackupCmd(a),
		newFindCmd(a),
		newConfigPathCmd(a),
	)
	return rootCmd
}

// Execute runs the CLI with the process arguments and returns the exit code.
func Execute(version string) int {
	return run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, version)
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer, version string) int {
	if args == nil {
		args = []string{}
	}
	rootCmd := newRootCmd(version)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	// Silence usage and errors to avoid cluttering output with Cobra defaults
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	err := rootCmd.Execute()
	if err == nil {
		return dispatch.ExitOK
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintf(stderr, "vm: %v\n", ee.err)
		}
		return ee.code
	}

	// Anything not produced by a dispatched request is an argument error.
	fmt.Fprintf(stderr, "vm: %v\nRun 'vm --help' for usage.\n", err)
	return dispatch.ExitUsage
}
