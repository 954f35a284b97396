package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newPathCommand prints where ccol reads its configuration from.
func newPathCommand(rt *runtime) *cobra.Command {
	var dirOnly bool

	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dirOnly {
				fmt.Fprintln(cmd.OutOrStdout(), rt.settings.ConfigDir)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), rt.settings.ConfigFile)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dirOnly, "dir", false, "Print the configuration directory instead")

	return cmd
}
