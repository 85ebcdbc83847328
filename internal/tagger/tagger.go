// Package tagger attaches title/artist metadata and cover art to finished
// artifacts. Tagging is best-effort: a failure is reported to the caller for
// logging but never turns a successful download into a failed item.
package tagger

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"

	"octotube/internal/util"
)

// Metadata is the tag set written into artifacts.
type Metadata struct {
	Title  string
	Artist string
}

// Tagger writes metadata into a finished media file. coverPath may be empty.
type Tagger interface {
	Tag(ctx context.Context, filePath string, meta Metadata, coverPath string) error
}

// FileTagger tags by container: ID3v2 frames for mp3, an ffmpeg stream-copy
// remux with -metadata for mp4 and mkv. wav has no portable tag support and
// is left untouched.
type FileTagger struct {
	ffmpegPath string
	runner     util.CmdRunner
	verbose    bool
}

// Option configures a FileTagger.
type Option func(*FileTagger)

// WithRunner injects a custom command runner (useful for testing).
func WithRunner(r util.CmdRunner) Option {
	return func(t *FileTagger) {
		t.runner = r
	}
}

// WithVerbose streams ffmpeg output to the terminal.
func WithVerbose(v bool) Option {
	return func(t *FileTagger) {
		t.verbose = v
	}
}

// NewFileTagger returns a Tagger that uses ffmpegPath for container remuxes.
func NewFileTagger(ffmpegPath string, opts ...Option) *FileTagger {
	t := &FileTagger{ffmpegPath: ffmpegPath}
	for _, o := range opts {
		o(t)
	}
	if t.runner == nil {
		t.runner = util.NewDefaultRunner()
	}
	return t
}

func (t *FileTagger) Tag(ctx context.Context, filePath string, meta Metadata, coverPath string) error {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".mp3":
		return tagMP3(filePath, meta, coverPath)
	case ".mp4", ".mkv":
		return t.remuxWithTags(ctx, filePath, meta, coverPath)
	default:
		// wav and anything else: nothing portable to write.
		return nil
	}
}

func tagMP3(filePath string, meta Metadata, coverPath string) error {
	tag, err := id3v2.Open(filePath, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open id3 tag: %w", err)
	}
	defer tag.Close()

	tag.SetTitle(meta.Title)
	tag.SetArtist(meta.Artist)

	if coverPath != "" {
		if artwork, rerr := os.ReadFile(coverPath); rerr == nil {
			tag.AddAttachedPicture(id3v2.PictureFrame{
				Encoding:    id3v2.EncodingUTF8,
				MimeType:    "image/jpeg",
				PictureType: id3v2.PTFrontCover,
				Description: "Cover",
				Picture:     artwork,
			})
		}
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("save id3 tag: %w", err)
	}
	return nil
}

// remuxWithTags rewrites the container with metadata via a stream-copy pass
// into a sibling temp file, then replaces the original.
func (t *FileTagger) remuxWithTags(ctx context.Context, filePath string, meta Metadata, coverPath string) error {
	tmpPath := tempSibling(filePath)
	args := BuildTagArgs(filePath, tmpPath, meta, coverPath)

	res, runErr := t.runner.Run(ctx, util.CmdSpec{
		Path:    t.ffmpegPath,
		Args:    args,
		Verbose: t.verbose,
	})
	if runErr != nil {
		_ = util.RemoveIfExists(tmpPath)
		return fmt.Errorf("ffmpeg tag remux failed (exit %d): %w", res.Code, runErr)
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		_ = util.RemoveIfExists(tmpPath)
		return fmt.Errorf("replace tagged file: %w", err)
	}
	return nil
}

func tempSibling(filePath string) string {
	ext := filepath.Ext(filePath)
	return strings.TrimSuffix(filePath, ext) + ".tagged" + ext
}
