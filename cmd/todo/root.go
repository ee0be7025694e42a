package main

import (
	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	file       string
	backend    string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "todo",
		Short: "Manage a to-do list from the terminal",
		Long: `todo keeps a list of tasks with a category, a priority and an optional
due date. Run it without a subcommand to open the interactive list.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (TOML or YAML)")
	flags.StringVar(&opts.file, "file", "", "task store path for the selected backend")
	flags.StringVar(&opts.backend, "backend", "", "storage backend: file or sqlite")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		newUICmd(opts),
		newAddCmd(opts),
		newListCmd(opts),
		newDoneCmd(opts),
		newDeleteCmd(opts),
		newEditCmd(opts),
		newExportCmd(opts),
	)
	return root
}
