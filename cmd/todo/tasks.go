package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/todo/internal/store"
	"github.com/sandeepkv93/todo/internal/views"
)

func newDoneCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "done N",
		Aliases: []string{"toggle"},
		Short:   "Toggle completion of task N from `todo list`",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts, false)
			if err != nil {
				return err
			}
			defer a.Close()

			task, err := a.taskByNumber(args[0])
			if err != nil {
				return err
			}
			toggled, err := a.store.ToggleCompleted(commandContext(cmd), task.ID)
			if err != nil {
				return err
			}
			if err := a.saved(); err != nil {
				return err
			}
			verb := "Reopened"
			if toggled.Completed {
				verb = "Completed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", verb, toggled.Title)
			return nil
		},
	}
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "delete N",
		Aliases: []string{"rm"},
		Short:   "Delete task N from `todo list`",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts, false)
			if err != nil {
				return err
			}
			defer a.Close()

			task, err := a.taskByNumber(args[0])
			if err != nil {
				return err
			}
			a.store.Delete(commandContext(cmd), task.ID)
			if err := a.saved(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted: %s\n", task.Title)
			return nil
		},
	}
}

func newEditCmd(opts *rootOptions) *cobra.Command {
	var title, category, priority, due string
	var clearDue bool
	cmd := &cobra.Command{
		Use:   "edit N",
		Short: "Update the fields of task N from `todo list`",
		Long:  `Update the fields of task N. Only the flags given change; completion and creation time are kept.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts, false)
			if err != nil {
				return err
			}
			defer a.Close()

			task, err := a.taskByNumber(args[0])
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			in := store.Input{Title: task.Title, DueDate: task.DueDate}
			if flags.Changed("title") {
				in.Title = title
			}
			if flags.Changed("category") {
				in.Category = category
			}
			if flags.Changed("priority") {
				in.Priority = priority
			}
			if flags.Changed("due") {
				in.DueDate = due
			}
			if clearDue {
				in.DueDate = ""
			}

			d, err := a.resolve(store.DraftOf(task), in)
			if err != nil {
				return err
			}
			updated, err := a.store.Update(commandContext(cmd), task.ID, d)
			if err != nil {
				return err
			}
			if err := a.saved(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated: %s\n", views.TaskLine(updated))
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&category, "category", "c", "", "new category")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "new priority")
	cmd.Flags().StringVarP(&due, "due", "d", "", "new due date MM/DD/YYYY")
	cmd.Flags().BoolVar(&clearDue, "clear-due", false, "remove the due date")
	cmd.MarkFlagsMutuallyExclusive("due", "clear-due")
	return cmd
}
