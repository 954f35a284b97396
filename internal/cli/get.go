package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/spf13/cobra"
	"github.com/artpar/ccol/internal/core"
)

const maxSuggestions = 5

// ErrGroupSelected is returned when an identifier names a group instead of a
// command.
var ErrGroupSelected = errors.New("identifier names a group, not a command")

// ErrUnknownIdentifier is returned when no node matches an identifier.
var ErrUnknownIdentifier = errors.New("no command with that identifier")

// GetOptions holds options for the get command.
type GetOptions struct {
	Print bool
}

func newGetCommand(rt *runtime) *cobra.Command {
	opts := &GetOptions{}

	cmd := &cobra.Command{
		Use:   "get IDENTIFIER",
		Short: "Copy a command by identifier without opening the menu",
		Long: `Copy the command at IDENTIFIER (for example /git/status) to the clipboard.
The leading slash may be omitted. Use --print to write the bare command to
stdout instead, e.g. eval "$(ccol get --print git/status)".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog(rt.settings.ConfigFile)
			if err != nil {
				return err
			}

			sel, err := lookup(catalog, args[0])
			if err != nil {
				if errors.Is(err, ErrUnknownIdentifier) {
					writeSuggestions(cmd, catalog, args[0])
				}
				return err
			}

			if opts.Print {
				fmt.Fprintln(cmd.OutOrStdout(), sel.Command)
				return nil
			}

			rt.deliver(sel)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&opts.Print, "print", "p", false, "Print the command instead of copying it")

	return cmd
}

// normalizeIdentifier trims whitespace and ensures a single leading slash.
func normalizeIdentifier(identifier string) string {
	identifier = strings.TrimSpace(identifier)
	identifier = strings.TrimSuffix(identifier, "/")
	if !strings.HasPrefix(identifier, "/") {
		identifier = "/" + identifier
	}
	return identifier
}

// lookup resolves identifier to a command.
func lookup(catalog *core.Catalog, identifier string) (core.Selection, error) {
	id := normalizeIdentifier(identifier)

	node, ok := catalog.Resolve(id)
	if !ok {
		return core.Selection{}, fmt.Errorf("%w: %s", ErrUnknownIdentifier, id)
	}
	if !node.IsLeaf() {
		return core.Selection{}, fmt.Errorf("%w: %s", ErrGroupSelected, id)
	}

	sel, ok := catalog.ResolveCommand(id)
	if !ok {
		return core.Selection{}, fmt.Errorf("%w: %s", ErrUnknownIdentifier, id)
	}
	return sel, nil
}

// suggest ranks the leaf identifiers closest to identifier.
func suggest(catalog *core.Catalog, identifier string) []string {
	var leaves []string
	for _, n := range catalog.Nodes() {
		if n.IsLeaf() {
			leaves = append(leaves, n.ID)
		}
	}

	query := strings.Trim(strings.TrimSpace(identifier), "/")
	if query == "" {
		return nil
	}

	ranks := fuzzy.RankFindNormalizedFold(query, leaves)
	if len(ranks) == 0 {
		return nil
	}
	sort.Sort(ranks)

	out := make([]string, 0, maxSuggestions)
	for _, r := range ranks {
		out = append(out, r.Target)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

func writeSuggestions(cmd *cobra.Command, catalog *core.Catalog, identifier string) {
	matches := suggest(catalog, identifier)
	if len(matches) == 0 {
		return
	}
	w := cmd.ErrOrStderr()
	fmt.Fprintln(w, "Did you mean:")
	for _, m := range matches {
		fmt.Fprintf(w, "  %s\n", m)
	}
}
