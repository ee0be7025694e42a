package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/query"
	"github.com/sandeepkv93/todo/internal/storage"
	"github.com/sandeepkv93/todo/internal/update"
)

func newUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive task list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd, opts)
		},
	}
}

func runUI(cmd *cobra.Command, opts *rootOptions) error {
	a, err := openApp(cmd, opts, true)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := commandContext(cmd)
	sortMode, _ := query.ParseSortMode(a.cfg.DefaultSort)
	m := update.NewModel(a.store, update.Options{
		Context:         ctx,
		Logger:          a.logger,
		Categories:      a.cfg.Categories,
		DefaultCategory: model.Category(a.cfg.DefaultCategory),
		DefaultPriority: model.Priority(a.cfg.DefaultPriority),
		Sort:            sortMode,
	})

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if a.cfg.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	if _, err := tea.NewProgram(m, programOpts...).Run(); err != nil {
		return fmt.Errorf("todo ui: %w", err)
	}
	return nil
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write all tasks to stdout in the flat-file format",
		Long: `Write all tasks to stdout, one per line, in the same format the file
backend stores. Useful for moving a list from the sqlite backend to a file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts, false)
			if err != nil {
				return err
			}
			defer a.Close()
			return storage.Encode(cmd.OutOrStdout(), a.store.Tasks())
		},
	}
}
