package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"octotube/internal/batch"
	"octotube/internal/model"
	"octotube/internal/pipeline"
	"octotube/internal/progress"
	"octotube/internal/resolver"
	"octotube/internal/selector"
	"octotube/internal/shell"
	"octotube/internal/tagger"
	"octotube/internal/thumbnail"
	"octotube/internal/transcoder"
	"octotube/internal/ui"
	"octotube/internal/util"
	"octotube/internal/util/deps"
)

// runInteractive drives the full menu flow: URL, destination, format, cover
// image, playlist slicing, quality, then the batch itself.
func runInteractive(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	opts := assembleCLIOptions(cmd)

	// Missing ffmpeg is a startup failure, checked before any prompting.
	ffmpegPath, err := deps.FindFFmpeg(opts.FFmpegPath)
	if err != nil {
		return &ExitError{Code: ExitFailure, Err: err}
	}
	opts.FFmpegPath = ffmpegPath

	styles := shell.DefaultStyles()
	if !isTerminal() {
		styles = shell.PlainStyles()
	}
	session := shell.NewSession(cmd.InOrStdin(), cmd.OutOrStdout(), styles)
	session.Header(Version)

	url, err := promptURL(ctx, session, args)
	if err != nil {
		return finishPrompt(err)
	}

	outputDir, err := promptOutputDir(ctx, session, opts.OutputDir)
	if err != nil {
		return finishPrompt(err)
	}

	desc := resolver.New().Resolve(ctx, url)
	if desc.Kind == model.ContentError {
		session.Println(styles.Error.Render("❌ " + desc.ErrorMessage))
		return nil
	}
	session.DescribeContent(desc)

	mediaType, err := promptMediaType(ctx, session)
	if err != nil {
		return finishPrompt(err)
	}

	downloadThumb, err := session.SelectYesNo(ctx, "Download cover image (JPG)?")
	if err != nil {
		return finishPrompt(err)
	}

	items := desc.Items
	if desc.Kind == model.ContentPlaylist {
		items, outputDir, err = promptPlaylistScope(ctx, session, desc, outputDir)
		if err != nil {
			return finishPrompt(err)
		}
	}
	if len(items) == 0 {
		session.Println(styles.Warning.Render("⚠ No videos to download"))
		return nil
	}

	var quality string
	if mediaType.NeedsQuality() {
		quality, err = promptQuality(ctx, session, items[0])
		if err != nil {
			return finishPrompt(err)
		}
	}

	if err := ensureDir(outputDir); err != nil {
		return &ExitError{Code: ExitFailure, Err: fmt.Errorf("create output dir: %w", err)}
	}

	dlOpts := model.DownloadOptions{
		OutputDir:         outputDir,
		MediaType:         mediaType,
		Quality:           quality,
		DownloadThumbnail: downloadThumb,
	}
	session.Println("")
	session.Println(styles.Info.Render(fmt.Sprintf("Starting download of %d items...", len(items))))

	report := runBatch(ctx, session, items, dlOpts, opts)
	session.FinalBar(report)
	session.Report(report)
	return nil
}

func assembleCLIOptions(cmd *cobra.Command) model.CLIOptions {
	opts := model.CLIOptions{
		OutputDir:  viper.GetString("out_dir"),
		Jobs:       viper.GetInt("jobs"),
		Concurrent: viper.GetBool("concurrent"),
		Verbose:    viper.GetBool("verbose"),
		FFmpegPath: viper.GetString("ffmpeg_path"),
		NoUI:       viper.GetBool("no_ui"),
	}
	if opts.Jobs <= 0 {
		opts.Jobs = batch.DefaultWorkers
	}
	// Flags always win over env/config.
	if cmd.Flags().Changed("out-dir") {
		opts.OutputDir = getPersistentString(cmd, "out-dir", opts.OutputDir)
	}
	return opts
}

// finishPrompt maps prompt-layer errors: cancellation is a clean exit, an
// exhausted input stream is a usage failure.
func finishPrompt(err error) error {
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "\n⛔ Operation canceled by user")
		return nil
	}
	return &ExitError{Code: ExitFailure, Err: fmt.Errorf("read input: %w", err)}
}

func promptURL(ctx context.Context, session *shell.Session, args []string) (string, error) {
	if len(args) == 1 {
		if _, err := util.ValidateYouTubeURL(args[0]); err != nil {
			return "", err
		}
		return args[0], nil
	}
	return session.ReadValidated(ctx, "YouTube URL (video/playlist): ", func(raw string) bool {
		_, err := util.ValidateYouTubeURL(raw)
		return err == nil
	})
}

func promptOutputDir(ctx context.Context, session *shell.Session, seeded string) (string, error) {
	if seeded != "" {
		return filepath.Clean(seeded), nil
	}
	answer, err := session.ReadLine(ctx, "Download folder (leave empty for current): ")
	if err != nil {
		return "", err
	}
	if answer == "" {
		return ".", nil
	}
	return filepath.Clean(answer), nil
}

func promptMediaType(ctx context.Context, session *shell.Session) (model.MediaType, error) {
	choice, err := session.SelectMenu(ctx, "Download format", []string{
		"MP3 (Audio only)",
		"MP4 (Full video)",
		"WAV (Uncompressed audio)",
		"MKV (Uncompressed video)",
	})
	if err != nil {
		return "", err
	}
	return []model.MediaType{model.MediaMP3, model.MediaMP4, model.MediaWAV, model.MediaMKV}[choice-1], nil
}

// promptPlaylistScope asks whether to take the whole playlist or a prefix,
// and moves the destination into a per-playlist subfolder.
func promptPlaylistScope(ctx context.Context, session *shell.Session, desc model.ContentDescriptor, outputDir string) ([]model.Video, string, error) {
	items := desc.Items
	session.Println(fmt.Sprintf("Playlist detected with %d videos.", len(items)))
	all, err := session.SelectMenu(ctx, "Download all videos?", []string{"Yes", "No"})
	if err != nil {
		return nil, "", err
	}
	if all == 2 {
		prompt := fmt.Sprintf("How many videos to download? (1-%d): ", len(items))
		n, cerr := session.ReadCount(ctx, prompt, len(items))
		if cerr != nil {
			return nil, "", cerr
		}
		items = items[:n]
	}
	return items, filepath.Join(outputDir, desc.Title), nil
}

// promptQuality enumerates the first item's progressive qualities and applies
// the chosen label to the whole batch.
func promptQuality(ctx context.Context, session *shell.Session, first model.Video) (string, error) {
	if err := first.Load(ctx); err != nil {
		return "", fmt.Errorf("inspect first item: %w", err)
	}
	qualities := selector.Qualities(first)
	if len(qualities) == 0 {
		return "", errors.New("no video qualities available")
	}
	choice, err := session.SelectMenu(ctx, "Select video quality", qualities)
	if err != nil {
		return "", err
	}
	return qualities[choice-1], nil
}

// runBatch picks the execution surface: sequential lines, concurrent lines,
// or the live dashboard for concurrent runs on a terminal.
func runBatch(ctx context.Context, session *shell.Session, items []model.Video, dlOpts model.DownloadOptions, opts model.CLIOptions) model.RunReport {
	if opts.Concurrent && !opts.NoUI && isTerminal() {
		return runDashboard(ctx, items, dlOpts, opts)
	}

	factory := func(jobID string, _ int) batch.Processor {
		return newService(jobID, nil, opts)
	}
	runner := batch.NewRunner(factory, opts.Jobs)
	onItem := func(p batch.ItemProgress) { session.ItemLine(p) }

	if opts.Concurrent {
		return runner.RunConcurrent(ctx, items, dlOpts, onItem)
	}
	return runner.RunSequential(ctx, items, dlOpts, onItem)
}

func runDashboard(ctx context.Context, items []model.Video, dlOpts model.DownloadOptions, opts model.CLIOptions) model.RunReport {
	factory := func(jobID string, rep progress.Reporter) ui.Processor {
		return newService(jobID, rep, opts)
	}
	results, elapsed, err := ui.Run(ctx, items, dlOpts, opts.Jobs, factory)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	report := model.RunReport{TotalItems: len(items), TotalElapsed: elapsed}
	for _, res := range results {
		if res.OK() {
			report.SuccessCount++
			report.TotalBytes += res.SizeBytes
		}
	}
	return report
}

func newService(jobID string, rep progress.Reporter, opts model.CLIOptions) *pipeline.Service {
	transOpts := []transcoder.Option{transcoder.WithVerbose(opts.Verbose)}
	if rep != nil {
		transOpts = append(transOpts, transcoder.WithProgress(func(p transcoder.ConvertProgress) {
			rep.Update(progress.Update{
				JobID:   jobID,
				Stage:   progress.StageConverting,
				Percent: p.Percent,
				Bytes:   p.Bytes,
				Message: "Converting",
			})
		}))
	}
	return pipeline.NewService(
		pipeline.WithJobID(jobID),
		pipeline.WithReporter(rep),
		pipeline.WithTranscoder(transcoder.NewFFmpeg(opts.FFmpegPath, transOpts...)),
		pipeline.WithTagger(tagger.NewFileTagger(opts.FFmpegPath, tagger.WithVerbose(opts.Verbose))),
		pipeline.WithThumbnailFetcher(thumbnail.NewFetcher()),
	)
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
