package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/query"
	"github.com/sandeepkv93/todo/internal/views"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var search, status, category, sortBy string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long:    `List tasks filtered by search text, completion status and category, in the chosen order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts, false)
			if err != nil {
				return err
			}
			defer a.Close()

			p := query.DefaultParams()
			p.Search = search
			if p.Completion, err = model.ParseCompletion(status); err != nil {
				return err
			}
			if sortBy == "" {
				sortBy = a.cfg.DefaultSort
			}
			if p.Sort, err = query.ParseSortMode(sortBy); err != nil {
				return err
			}
			p.Category = matchCategory(query.Categories(a.store.Tasks(), a.cfg.Categories), category)

			tasks := a.store.Tasks()
			printListing(cmd.OutOrStdout(), query.Run(tasks, p), query.Summarize(tasks))
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "only titles containing this text")
	cmd.Flags().StringVar(&status, "status", "all", "all, completed or pending")
	cmd.Flags().StringVarP(&category, "category", "c", "", "only this category (default all)")
	cmd.Flags().StringVar(&sortBy, "sort", "", "recent, priority or date (default from config)")
	return cmd
}

// matchCategory maps a flag value onto a known category choice, keeping
// unknown names as given so they simply match nothing.
func matchCategory(choices []string, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return query.CategoryAll
	}
	for _, c := range choices {
		if strings.EqualFold(c, raw) {
			return c
		}
	}
	return raw
}

func printListing(w io.Writer, tasks []model.Task, stats query.Stats) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found.")
	}
	for i, t := range tasks {
		fmt.Fprintf(w, "%d. %s\n", i+1, views.TaskLine(t))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, stats.String())
}
