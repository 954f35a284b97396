package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
	"github.com/artpar/ccol/internal/core"
)

// ListOptions holds options for the list command.
type ListOptions struct {
	Leaves bool
}

func newListCommand(rt *runtime) *cobra.Command {
	opts := &ListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every command in the collection",
		Long:  "List the collection in display order, one identifier per row with its command.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog(rt.settings.ConfigFile)
			if err != nil {
				return err
			}
			writeList(cmd, catalog, opts)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.Leaves, "leaves", false, "Only list commands, not groups")

	return cmd
}

func writeList(cmd *cobra.Command, catalog *core.Catalog, opts *ListOptions) {
	out := cmd.OutOrStdout()
	if catalog.Len() == 0 {
		fmt.Fprintln(out, "No commands configured.")
		return
	}

	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("IDENTIFIER"), bold.Sprint("COMMAND"))

	for _, n := range catalog.Nodes() {
		if !n.IsLeaf() {
			if !opts.Leaves {
				tbl.AddRow(strings.Repeat("  ", n.Depth)+n.ID+"/", "")
			}
			continue
		}
		sel, ok := catalog.ResolveCommand(n.ID)
		if !ok {
			continue
		}
		id := n.ID
		if !opts.Leaves {
			id = strings.Repeat("  ", n.Depth) + id
		}
		tbl.AddRow(id, green.Sprint(sel.Command))
	}

	fmt.Fprintln(out, tbl)
}
