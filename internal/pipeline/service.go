// Package pipeline implements the per-item download and assembly state
// machine: select streams, download, transcode or mux, attach metadata, and
// classify the outcome.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"octotube/internal/model"
	"octotube/internal/progress"
	"octotube/internal/resolver"
	"octotube/internal/selector"
	"octotube/internal/tagger"
	"octotube/internal/transcoder"
	"octotube/internal/util"
)

// ThumbnailFetcher downloads a cover image to a local path.
type ThumbnailFetcher interface {
	Fetch(ctx context.Context, thumbURL, destPath string) error
}

// Service processes one video at a time. Construct one per item when a
// per-item job ID is needed for progress reporting.
type Service struct {
	transcoder transcoder.Transcoder
	tagger     tagger.Tagger
	thumbs     ThumbnailFetcher
	reporter   progress.Reporter
	jobID      string
}

// Option configures a Service.
type Option func(*Service)

// WithTranscoder sets the transcoder/muxer implementation.
func WithTranscoder(t transcoder.Transcoder) Option {
	return func(s *Service) {
		s.transcoder = t
	}
}

// WithTagger sets the metadata tagger.
func WithTagger(t tagger.Tagger) Option {
	return func(s *Service) {
		s.tagger = t
	}
}

// WithThumbnailFetcher sets the cover image fetcher.
func WithThumbnailFetcher(f ThumbnailFetcher) Option {
	return func(s *Service) {
		s.thumbs = f
	}
}

// WithReporter attaches a progress reporter (used by the TUI).
func WithReporter(r progress.Reporter) Option {
	return func(s *Service) {
		s.reporter = r
	}
}

// WithJobID sets the job ID associated with reporter events.
func WithJobID(id string) Option {
	return func(s *Service) {
		s.jobID = id
	}
}

// NewService constructs a Service with the provided options.
func NewService(opts ...Option) *Service {
	s := &Service{}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Process runs the full state machine for one video. It never returns a Go
// error: every outcome, including unexpected ones, is folded into the
// ItemResult so one item can never abort its siblings.
//
// A success result guarantees the artifact exists at FilePath with metadata
// attach attempted. Any other result guarantees no temporary files remain.
func (s *Service) Process(ctx context.Context, video model.Video, opts model.DownloadOptions) model.ItemResult {
	if s.transcoder == nil {
		return s.fail(model.StatusError, video.Title(), "no transcoder configured")
	}

	s.update(progress.StageResolving, -1, "Resolving streams")
	if err := video.Load(ctx); err != nil {
		status := model.StatusError
		if errors.Is(err, resolver.ErrVideoUnavailable) {
			status = model.StatusUnavailable
		}
		return s.fail(status, video.Title(), err.Error())
	}

	title := util.SanitizeName(video.Title())
	finalPath := filepath.Join(opts.OutputDir, title+"."+opts.MediaType.Ext())

	thumbPath := s.fetchThumbnail(ctx, video, opts, title)

	sel, err := selector.SelectStreams(video, opts.MediaType, opts.Quality)
	if err != nil {
		return s.fail(model.StatusError, title, err.Error())
	}

	if err := s.assemble(ctx, video, sel, opts.MediaType, finalPath); err != nil {
		status := model.StatusError
		if errors.Is(err, resolver.ErrVideoUnavailable) {
			status = model.StatusUnavailable
		}
		return s.fail(status, title, err.Error())
	}

	s.update(progress.StageTagging, -1, "Attaching metadata")
	if s.tagger != nil {
		meta := tagger.Metadata{Title: title, Artist: video.Author()}
		if terr := s.tagger.Tag(ctx, finalPath, meta, thumbPath); terr != nil {
			// Metadata failures never demote a finished artifact.
			s.log(fmt.Sprintf("warning: metadata not attached: %v", terr))
		}
	}

	size := util.FileSize(finalPath)
	s.update(progress.StageCompleted, 100, "Completed")
	s.emitResult(finalPath, size, nil)
	return model.ItemResult{
		Status:    model.StatusSuccess,
		Title:     title,
		FilePath:  finalPath,
		SizeBytes: size,
	}
}

// fetchThumbnail is best-effort; it returns the sidecar path or "".
func (s *Service) fetchThumbnail(ctx context.Context, video model.Video, opts model.DownloadOptions, title string) string {
	if !opts.DownloadThumbnail || s.thumbs == nil {
		return ""
	}
	s.update(progress.StageThumbnail, -1, "Fetching cover image")
	dest := filepath.Join(opts.OutputDir, title+".jpg")
	if err := s.thumbs.Fetch(ctx, video.ThumbnailURL(), dest); err != nil {
		s.log(fmt.Sprintf("warning: cover image skipped: %v", err))
		return ""
	}
	return dest
}

// assemble downloads the selected streams and produces the final artifact.
// Intermediates live in a per-item temp workdir removed on every path.
func (s *Service) assemble(ctx context.Context, video model.Video, sel model.StreamSelection, mediaType model.MediaType, finalPath string) error {
	switch mediaType {
	case model.MediaMP4:
		// Progressive stream: container already matches, no transcode.
		if err := s.downloadStream(ctx, video, sel.Progressive, finalPath); err != nil {
			return err
		}
		return nil

	case model.MediaMP3, model.MediaWAV:
		workdir, err := util.MakeTempWorkdir("item")
		if err != nil {
			return fmt.Errorf("create temp dir: %w", err)
		}
		defer os.RemoveAll(workdir)

		src := filepath.Join(workdir, "audio-source.mp4")
		if err := s.downloadStream(ctx, video, sel.Audio, src); err != nil {
			return err
		}
		s.update(progress.StageConverting, -1, "Converting audio")
		profile := transcoder.ProfileMP3
		if mediaType == model.MediaWAV {
			profile = transcoder.ProfileWAV
		}
		return s.transcoder.ExtractAudio(ctx, src, finalPath, profile, video.Duration())

	case model.MediaMKV:
		workdir, err := util.MakeTempWorkdir("item")
		if err != nil {
			return fmt.Errorf("create temp dir: %w", err)
		}
		defer os.RemoveAll(workdir)

		videoSrc := filepath.Join(workdir, "video.mp4")
		audioSrc := filepath.Join(workdir, "audio.mp4")
		if err := s.downloadStream(ctx, video, sel.Video, videoSrc); err != nil {
			return err
		}
		if err := s.downloadStream(ctx, video, sel.Audio, audioSrc); err != nil {
			return err
		}
		s.update(progress.StageConverting, -1, "Muxing tracks")
		return s.transcoder.Mux(ctx, videoSrc, audioSrc, finalPath, video.Duration())

	default:
		return fmt.Errorf("unsupported media type %q", mediaType)
	}
}

// downloadStream writes one stream to dest, removing the partial file on
// failure.
func (s *Service) downloadStream(ctx context.Context, video model.Video, stream model.Stream, dest string) error {
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}

	var w io.Writer = f
	if s.reporter != nil {
		w = io.MultiWriter(f, &progressWriter{
			reporter: s.reporter,
			jobID:    s.jobID,
			total:    stream.ContentLength,
		})
	}

	_, derr := video.Download(ctx, stream, w)
	cerr := f.Close()
	if derr != nil {
		_ = os.Remove(dest)
		return derr
	}
	if cerr != nil {
		_ = os.Remove(dest)
		return fmt.Errorf("finish %s: %w", dest, cerr)
	}
	return nil
}

func (s *Service) fail(status model.ItemStatus, title, message string) model.ItemResult {
	s.update(progress.StageError, -1, message)
	s.emitResult("", 0, errors.New(message))
	return model.ItemResult{
		Status:  status,
		Title:   util.SanitizeName(title),
		Message: message,
	}
}

func (s *Service) update(stage progress.Stage, percent float64, msg string) {
	if s.reporter == nil {
		return
	}
	s.reporter.Update(progress.Update{
		JobID:   s.jobID,
		Stage:   stage,
		Percent: percent,
		Message: msg,
	})
}

func (s *Service) log(line string) {
	if s.reporter == nil {
		fmt.Fprintln(os.Stderr, line)
		return
	}
	s.reporter.Log(progress.Log{JobID: s.jobID, Line: line})
}

func (s *Service) emitResult(path string, bytes int64, err error) {
	if s.reporter == nil {
		return
	}
	s.reporter.Result(progress.Result{
		JobID:      s.jobID,
		OutputPath: path,
		Bytes:      bytes,
		Err:        err,
	})
}
