package cmd

import (
	"strings"

	"github.com/gurisko/vm/internal/dispatch"
	"github.com/spf13/cobra"
)

func newRemoveCmd(a *app) *cobra.Command {
	var force bool

	removeCmd := &cobra.Command{
		Use:   "remove NAME",
		Short: "Remove an entry from vm_list of the config file",
		Long: `Remove the entry NAME after a (y/N) confirmation.

Only a single 'y' or 'Y' confirms. Use --force to skip the prompt.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.dispatch(cmd, dispatch.Remove{Name: strings.TrimSpace(args[0]), Force: force})
		},
	}

	removeCmd.Flags().BoolVarP(&force, "force", "f", false, "remove without confirmation")
	return removeCmd
}
