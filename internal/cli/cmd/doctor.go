package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"octotube/internal/util/deps"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "doctor",
		Short:         "Diagnose external dependencies (ffmpeg)",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ff, err := deps.FindFFmpeg(getPersistentString(cmd, "ffmpeg-path", ""))
			if err != nil {
				return &ExitError{Code: ExitFailure, Err: err}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "FFmpeg: %s\n", ff)
			return nil
		},
	}
}
