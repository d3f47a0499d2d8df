package cmd

import (
	"errors"

	"github.com/gurisko/vm/internal/dispatch"
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	var asJSON, asYAML bool

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Show entries in vm_list of the config file",
		Long: `Print every registered name and its directory, sorted by name.

Examples:
  vm list          # name: path, one per line
  vm list --json   # JSON for piping
  vm list --yaml   # YAML`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON && asYAML {
				return errors.New("--json and --yaml are mutually exclusive")
			}
			req := dispatch.List{}
			switch {
			case asJSON:
				req.Format = "json"
			case asYAML:
				req.Format = "yaml"
			}
			return a.dispatch(cmd, req)
		},
	}

	listCmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	listCmd.Flags().BoolVar(&asYAML, "yaml", false, "print YAML")
	return listCmd
}
