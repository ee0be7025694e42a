package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/todo/internal/store"
	"github.com/sandeepkv93/todo/internal/views"
)

func newAddCmd(opts *rootOptions) *cobra.Command {
	var title, category, priority, due string
	cmd := &cobra.Command{
		Use:   "add [title words]",
		Short: "Add a task",
		Long: `Add a task. The title comes from --title or the positional words.
Category and priority default to the configured values; --due takes MM/DD/YYYY.`,
		Example: `  todo add --title "Pay rent" --priority high --due 03/01/2026
  todo add Call mom --category Personal`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" {
				title = strings.Join(args, " ")
			}
			a, err := openApp(cmd, opts, false)
			if err != nil {
				return err
			}
			defer a.Close()

			d, err := a.resolve(a.defaults(), store.Input{Title: title, Category: category, Priority: priority, DueDate: due})
			if err != nil {
				return err
			}
			task, err := a.store.Add(commandContext(cmd), d)
			if err != nil {
				return err
			}
			if err := a.saved(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added: %s\n", views.TaskLine(task))
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "task title")
	cmd.Flags().StringVarP(&category, "category", "c", "", "task category")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "Low, Medium or High")
	cmd.Flags().StringVarP(&due, "due", "d", "", "due date MM/DD/YYYY")
	return cmd
}
