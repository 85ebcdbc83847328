package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"octotube/internal/model"
	"octotube/internal/resolver"
	"octotube/internal/selector"
	"octotube/internal/util"
)

// newInspectCmd resolves a URL and prints what a download run would see,
// without downloading anything.
func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "inspect <url>",
		Short:         "Resolve a URL and list its items and available qualities",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := util.ValidateYouTubeURL(args[0]); err != nil {
				return &ExitError{Code: ExitFailure, Err: err}
			}

			desc := resolver.New().Resolve(cmd.Context(), args[0])
			out := cmd.OutOrStdout()

			switch desc.Kind {
			case model.ContentError:
				return &ExitError{Code: ExitFailure, Err: fmt.Errorf("%s", desc.ErrorMessage)}
			case model.ContentPlaylist:
				fmt.Fprintf(out, "Playlist: %s (%d videos)\n", desc.Title, len(desc.Items))
				for i, item := range desc.Items {
					fmt.Fprintf(out, "%3d. %s\n", i+1, item.Title())
				}
			case model.ContentSingle:
				fmt.Fprintf(out, "Video: %s\n", desc.Title)
			}

			if len(desc.Items) == 0 {
				return nil
			}
			first := desc.Items[0]
			if err := first.Load(cmd.Context()); err != nil {
				fmt.Fprintf(out, "Qualities: unavailable (%v)\n", err)
				return nil
			}
			qualities := selector.Qualities(first)
			if len(qualities) == 0 {
				fmt.Fprintln(out, "Qualities: none (no progressive streams)")
				return nil
			}
			fmt.Fprintf(out, "Qualities: %v\n", qualities)
			return nil
		},
	}
}
