package cmd

import (
	"github.com/gurisko/vm/internal/dispatch"
	"github.com/spf13/cobra"
)

func newBackupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "backup-config-file",
		Aliases: []string{"backup_config_file"},
		Short:   "Back up the config file",
		Long: `Copy the config file to a sibling named after the current local time,
e.g. config.toml.2026-10-16-093012. An existing backup is never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.dispatch(cmd, dispatch.BackupConfig{})
		},
	}
}

func newConfigPathCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "config-file-path",
		Aliases: []string{"config_file_path"},
		Short:   "Print the absolute path of the config file",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.dispatch(cmd, dispatch.ConfigFilePath{})
		},
	}
}

func newFindCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "find-vagrantfile [PATH]",
		Aliases: []string{"find-vagrantfiles", "find_vagrantfiles"},
		Short:   "Find Vagrantfiles below PATH",
		Long: `Print the absolute path of every file named Vagrantfile below PATH
(default: the current directory). Symlinked directories are not followed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base := "."
			if len(args) == 1 {
				base = expandHome(args[0])
			}
			return a.dispatch(cmd, dispatch.FindVagrantfiles{BasePath: base})
		},
	}
}
