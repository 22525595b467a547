// ABOUTME: Search command
// ABOUTME: Finds transcripts by word and prints previews
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

const previewLength = 100

func newSearchCmd(state *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search transcripts (queries under 3 characters list everything)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			a, err := state.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			results, err := a.Search(strings.Join(args, " "))
			if err != nil {
				return err
			}

			for _, r := range results {
				fmt.Fprintf(state.out, "%s\t%s\n", r.Path, preview(r.Transcript))
			}
			return nil
		},
	}
}

func preview(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if len(text) <= previewLength {
		return text
	}
	return text[:previewLength] + "..."
}
