package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/shlex"
	"github.com/gurisko/vm/internal/dispatch"
)

// parseForward turns the root command's positional arguments into a
// forwarding request. atDash is the index of a leading "--" (or -1) and
// cmdline is the value of -c given before NAME.
//
//	vm -- ARGS...          run vagrant ARGS in the current directory
//	vm NAME                run bare vagrant in NAME's directory
//	vm NAME CMD ARGS...    run vagrant CMD ARGS in NAME's directory
//	vm NAME -- ARGS...     run vagrant ARGS in NAME's directory
//	vm NAME -c 'LINE'      split LINE shell-style and run it there
func parseForward(args []string, atDash int, cmdline string) (dispatch.Request, error) {
	if atDash == 0 {
		if cmdline != "" {
			return nil, errors.New("-c cannot be combined with a global '--' invocation")
		}
		return dispatch.GlobalVagrant{Options: args}, nil
	}
	if len(args) == 0 {
		return nil, errors.New("no VM name given")
	}

	name, rest := args[0], args[1:]
	if name == "" || strings.HasPrefix(name, "-") {
		return nil, fmt.Errorf("invalid VM name %q", name)
	}

	if len(rest) > 0 {
		switch {
		case rest[0] == "-c" || rest[0] == "--command":
			if len(rest) != 2 {
				return nil, fmt.Errorf("%s takes exactly one quoted argument", rest[0])
			}
			if cmdline != "" {
				return nil, errors.New("-c given twice")
			}
			cmdline = rest[1]
			rest = nil
		case strings.HasPrefix(rest[0], "-c=") || strings.HasPrefix(rest[0], "--command="):
			if len(rest) != 1 {
				return nil, errors.New("unexpected arguments after -c")
			}
			if cmdline != "" {
				return nil, errors.New("-c given twice")
			}
			cmdline = rest[0][strings.Index(rest[0], "=")+1:]
			rest = nil
		case rest[0] == "--":
			if cmdline != "" {
				return nil, errors.New("-c cannot be combined with '--'")
			}
			return dispatch.RawVagrant{Name: name, Options: rest[1:]}, nil
		}
	}

	if cmdline != "" {
		if len(rest) > 0 {
			return nil, errors.New("unexpected arguments after -c")
		}
		options, err := shlex.Split(cmdline)
		if err != nil {
			return nil, fmt.Errorf("invalid -c value: %w", err)
		}
		return dispatch.RawVagrant{Name: name, Options: options}, nil
	}

	if len(rest) == 0 {
		return dispatch.RawVagrant{Name: name}, nil
	}
	return dispatch.RunVagrant{Name: name, Command: rest[0], Options: rest[1:]}, nil
}
