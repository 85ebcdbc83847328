// Package cmd wires the cobra command tree: the interactive root flow plus
// inspect, doctor, version, and completion subcommands.
package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"octotube/internal/config"
)

const (
	ExitOK      = 0
	ExitFailure = 1
)

// ExitError wraps an error with a process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "octotube [url]",
		Short:         "Menu-driven YouTube video and playlist downloader",
		Long:          "OctoTube downloads YouTube videos or whole playlists, converts them to MP3, MP4, WAV, or MKV with ffmpeg, and tags the result with title, artist, and cover art. Run it bare for the interactive menu flow, or seed answers with flags and an optional URL argument.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, args)
		},
	}

	bindGlobalFlags(root.PersistentFlags())

	root.AddCommand(newInspectCmd())
	root.AddCommand(newDoctorCmd())
	root.AddCommand(newVersionCmd())
	root.AddCommand(newCompletionCmd())

	return root
}

// bindGlobalFlags registers the flags shared by every subcommand. Empty
// defaults keep the interactive prompts in charge unless explicitly seeded.
func bindGlobalFlags(fs *pflag.FlagSet) {
	fs.StringP("out-dir", "o", "", "Output directory (skips the folder prompt)")
	fs.BoolP("verbose", "v", false, "Show full subprocess commands/output")
	fs.String("ffmpeg-path", "", "Path to the ffmpeg binary")
	fs.Int("jobs", 4, "Worker pool size for concurrent downloads")
	fs.Bool("concurrent", false, "Download batch items concurrently")
	fs.Bool("no-ui", false, "Disable the live dashboard; plain line output")
}

// Execute runs the CLI with the provided context.
func Execute(ctx context.Context) error {
	root := newRootCmd()
	_ = config.Init(root)
	return root.ExecuteContext(ctx)
}

// Helpers

func getPersistentString(cmd *cobra.Command, name, def string) string {
	v, err := cmd.InheritedFlags().GetString(name)
	if err != nil {
		if v, err = cmd.Flags().GetString(name); err != nil {
			return def
		}
	}
	if v == "" {
		return def
	}
	return v
}

func ensureDir(path string) error {
	if path == "" {
		path = "."
	}
	return os.MkdirAll(filepath.Clean(path), 0o755)
}
