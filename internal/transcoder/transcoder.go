// Package transcoder wraps the external ffmpeg binary behind a narrow
// interface so the pipeline never manages subprocess lifecycles itself.
package transcoder

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"octotube/internal/util"
)

// AudioProfile names a fixed re-encode target.
type AudioProfile string

const (
	ProfileMP3 AudioProfile = "mp3" // 192 kbps CBR, 44.1 kHz
	ProfileWAV AudioProfile = "wav" // 44.1 kHz stereo PCM
)

// Transcoder converts downloaded stream files into final artifacts.
// sourceDuration is the input's play length and drives progress percentages;
// zero reports indeterminate progress.
type Transcoder interface {
	// ExtractAudio re-encodes the audio track of inputPath into the profile's
	// codec/container at outputPath.
	ExtractAudio(ctx context.Context, inputPath, outputPath string, profile AudioProfile, sourceDuration time.Duration) error

	// Mux stream-copies separate video and audio tracks into one container at
	// outputPath, without re-encoding.
	Mux(ctx context.Context, videoPath, audioPath, outputPath string, sourceDuration time.Duration) error
}

// TranscodeError reports a failed ffmpeg invocation.
type TranscodeError struct {
	Op     string
	Code   int
	Stderr string
	Err    error
}

func (e *TranscodeError) Error() string {
	return fmt.Sprintf("ffmpeg %s failed (exit %d)", e.Op, e.Code)
}

func (e *TranscodeError) Unwrap() error {
	return e.Err
}

// FFmpeg implements Transcoder by shelling out.
type FFmpeg struct {
	path       string
	runner     util.CmdRunner
	verbose    bool
	onProgress func(ConvertProgress)
}

// Option configures an FFmpeg transcoder.
type Option func(*FFmpeg)

// WithRunner injects a custom command runner (useful for testing).
func WithRunner(r util.CmdRunner) Option {
	return func(f *FFmpeg) {
		f.runner = r
	}
}

// WithVerbose streams ffmpeg output to the terminal.
func WithVerbose(v bool) Option {
	return func(f *FFmpeg) {
		f.verbose = v
	}
}

// WithProgress enables ffmpeg's machine-readable -progress output and calls
// fn on each snapshot. fn runs on the subprocess capture goroutine.
func WithProgress(fn func(ConvertProgress)) Option {
	return func(f *FFmpeg) {
		f.onProgress = fn
	}
}

// NewFFmpeg returns a Transcoder using the binary at path.
func NewFFmpeg(path string, opts ...Option) *FFmpeg {
	f := &FFmpeg{path: path}
	for _, o := range opts {
		o(f)
	}
	if f.runner == nil {
		f.runner = util.NewDefaultRunner()
	}
	return f
}

func (f *FFmpeg) ExtractAudio(ctx context.Context, inputPath, outputPath string, profile AudioProfile, sourceDuration time.Duration) error {
	args, err := BuildAudioArgs(inputPath, outputPath, profile)
	if err != nil {
		return err
	}
	return f.run(ctx, "audio extract", args, outputPath, sourceDuration)
}

func (f *FFmpeg) Mux(ctx context.Context, videoPath, audioPath, outputPath string, sourceDuration time.Duration) error {
	return f.run(ctx, "mux", BuildMuxArgs(videoPath, audioPath, outputPath), outputPath, sourceDuration)
}

func (f *FFmpeg) run(ctx context.Context, op string, args []string, outputPath string, sourceDuration time.Duration) error {
	if err := util.EnsureDir(filepath.Dir(outputPath)); err != nil {
		return fmt.Errorf("ensure output dir: %w", err)
	}
	spec := util.CmdSpec{
		Path:    f.path,
		Args:    args,
		Verbose: f.verbose,
	}
	if f.onProgress != nil {
		spec.Args = append([]string{"-progress", "pipe:1", "-nostats"}, args...)
		state := &ProgressState{DurationSec: sourceDuration.Seconds()}
		spec.OnStdoutLine = func(line string) {
			if p, ok := state.UpdateFromLine(line); ok {
				f.onProgress(p)
			}
		}
	}
	res, runErr := f.runner.Run(ctx, spec)
	if runErr != nil {
		// Delete the incomplete artifact.
		_ = util.RemoveIfExists(outputPath)
		return &TranscodeError{Op: op, Code: res.Code, Stderr: string(res.Stderr), Err: runErr}
	}
	return nil
}
