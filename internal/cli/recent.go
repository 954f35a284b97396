package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
	"github.com/artpar/ccol/internal/history"
)

// RecentOptions holds options for the recent command.
type RecentOptions struct {
	Limit  int
	Search string
	Clear  bool
}

func newRecentCommand(rt *runtime) *cobra.Command {
	opts := &RecentOptions{}

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show recently picked commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecent(cmd, rt, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 10, "Number of entries to show")
	cmd.Flags().StringVarP(&opts.Search, "search", "s", "", "Only show entries matching this text")
	cmd.Flags().BoolVar(&opts.Clear, "clear", false, "Delete all recorded entries")

	return cmd
}

func runRecent(cmd *cobra.Command, rt *runtime, opts *RecentOptions) error {
	store, err := rt.openHistory(rt.settings.HistoryFile)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	ctx := context.Background()
	out := cmd.OutOrStdout()

	if opts.Clear {
		if err := store.Clear(ctx); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		fmt.Fprintln(out, "History cleared.")
		return nil
	}

	entries, err := store.List(ctx, history.QueryOptions{
		Search: opts.Search,
		Limit:  opts.Limit,
	})
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No commands picked yet.")
		return nil
	}

	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("TIME"), bold.Sprint("IDENTIFIER"), bold.Sprint("COMMAND"), bold.Sprint("COPIED"))
	for _, e := range entries {
		copied := "yes"
		if !e.Copied {
			copied = "no"
		}
		tbl.AddRow(
			faint.Sprint(e.Timestamp.Format("2006-01-02 15:04")),
			e.Identifier,
			green.Sprint(e.Command),
			copied,
		)
	}
	fmt.Fprintln(out, tbl)
	return nil
}
