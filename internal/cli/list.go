// ABOUTME: List command
// ABOUTME: Prints library recordings newest first with transcript status
package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newListCmd(state *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recordings in the library",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			a, err := state.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			files, err := a.Files()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(state.out, 0, 4, 2, ' ', 0)
			for _, f := range files {
				status := ""
				if _, err := a.Store.Get(f.Path); err == nil {
					status = "transcribed"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", f.Timestamp.Format("2006-01-02 15:04"), f.Name, status)
			}
			return w.Flush()
		},
	}
}
