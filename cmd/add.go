package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/gurisko/vm/internal/dispatch"
	"github.com/spf13/cobra"
)

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME PATH",
		Short: "Add an entry to vm_list of the config file",
		Long: `Register NAME for the Vagrant project directory PATH.

PATH is stored as an absolute path. An existing entry with the same name is
replaced and reported on stderr.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			path := strings.TrimSpace(args[1])
			if name == "" || path == "" {
				return errors.New("NAME and PATH must not be empty")
			}
			if strings.HasPrefix(name, "-") {
				return errors.New("NAME must not start with '-'")
			}
			return a.dispatch(cmd, dispatch.Add{Name: name, Path: expandHome(path)})
		},
	}
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	if home, _ := os.UserHomeDir(); home != "" {
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
