// ABOUTME: Version command
// ABOUTME: Prints the build version
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/voxdeck/voxdeck-go/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return nil
		},
	}
}
