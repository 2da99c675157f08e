package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stablegraph/pkg/buildinfo"
)

func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(c.out, buildinfo.String())
			return err
		},
	}
}
