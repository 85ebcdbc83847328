package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"octotube/internal/model"
	"octotube/internal/resolver"
	"octotube/internal/tagger"
	"octotube/internal/transcoder"
)

// fakeVideo is a loaded, fully controllable catalog.
type fakeVideo struct {
	title       string
	author      string
	thumbURL    string
	duration    time.Duration
	loadErr     error
	progressive []model.Stream
	audio       *model.Stream
	videoOnly   *model.Stream
	payload     string
	downloadErr error
}

func (f *fakeVideo) Load(context.Context) error { return f.loadErr }
func (f *fakeVideo) ID() string                 { return "vid123" }
func (f *fakeVideo) Title() string              { return f.title }
func (f *fakeVideo) Author() string             { return f.author }
func (f *fakeVideo) ThumbnailURL() string       { return f.thumbURL }
func (f *fakeVideo) Duration() time.Duration    { return f.duration }

func (f *fakeVideo) ProgressiveStreams(string) []model.Stream { return f.progressive }

func (f *fakeVideo) BestAudioStream() (model.Stream, bool) {
	if f.audio == nil {
		return model.Stream{}, false
	}
	return *f.audio, true
}

func (f *fakeVideo) BestVideoOnlyStream() (model.Stream, bool) {
	if f.videoOnly == nil {
		return model.Stream{}, false
	}
	return *f.videoOnly, true
}

func (f *fakeVideo) Download(_ context.Context, _ model.Stream, w io.Writer) (int64, error) {
	if f.downloadErr != nil {
		return 0, f.downloadErr
	}
	n, err := io.WriteString(w, f.payload)
	return int64(n), err
}

// fakeTranscoder records calls and writes outputs like a successful ffmpeg.
type fakeTranscoder struct {
	extractCalls int
	muxCalls     int
	lastProfile  transcoder.AudioProfile
	lastDuration time.Duration
	err          error
}

func (f *fakeTranscoder) ExtractAudio(_ context.Context, inputPath, outputPath string, profile transcoder.AudioProfile, sourceDuration time.Duration) error {
	f.extractCalls++
	f.lastProfile = profile
	f.lastDuration = sourceDuration
	if f.err != nil {
		return f.err
	}
	if _, err := os.Stat(inputPath); err != nil {
		return fmt.Errorf("input missing: %w", err)
	}
	return os.WriteFile(outputPath, []byte("audio"), 0o644)
}

func (f *fakeTranscoder) Mux(_ context.Context, videoPath, audioPath, outputPath string, sourceDuration time.Duration) error {
	f.muxCalls++
	f.lastDuration = sourceDuration
	if f.err != nil {
		return f.err
	}
	for _, p := range []string{videoPath, audioPath} {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("input missing: %w", err)
		}
	}
	return os.WriteFile(outputPath, []byte("muxed"), 0o644)
}

type fakeTagger struct {
	calls  int
	covers []string
	err    error
}

func (f *fakeTagger) Tag(_ context.Context, _ string, _ tagger.Metadata, coverPath string) error {
	f.calls++
	f.covers = append(f.covers, coverPath)
	return f.err
}

type fakeThumbs struct {
	err   error
	calls int
}

func (f *fakeThumbs) Fetch(_ context.Context, _ string, destPath string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(destPath, []byte("jpeg"), 0o644)
}

func progressiveVideo() *fakeVideo {
	return &fakeVideo{
		title:    "My Clip",
		author:   "Uploader",
		thumbURL: "https://i.ytimg.com/vi/vid123/hqdefault.jpg",
		duration: 3 * time.Minute,
		progressive: []model.Stream{
			{Itag: 22, QualityLabel: "720p", Container: "mp4", ContentLength: 7},
		},
		audio:   &model.Stream{Itag: 251, Bitrate: 160000},
		payload: "mp4data",
	}
}

func TestProcessMP4WritesArtifact(t *testing.T) {
	dir := t.TempDir()
	trans := &fakeTranscoder{}
	tag := &fakeTagger{}
	svc := NewService(WithTranscoder(trans), WithTagger(tag))

	res := svc.Process(context.Background(), progressiveVideo(), model.DownloadOptions{
		OutputDir: dir,
		MediaType: model.MediaMP4,
	})

	if !res.OK() {
		t.Fatalf("result = %+v, want success", res)
	}
	want := filepath.Join(dir, "My Clip.mp4")
	if res.FilePath != want {
		t.Errorf("FilePath = %q, want %q", res.FilePath, want)
	}
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("artifact missing: %v", err)
	}
	if string(data) != "mp4data" {
		t.Errorf("artifact content = %q", data)
	}
	if res.SizeBytes != int64(len("mp4data")) {
		t.Errorf("SizeBytes = %d", res.SizeBytes)
	}
	if trans.extractCalls != 0 || trans.muxCalls != 0 {
		t.Errorf("mp4 should not invoke ffmpeg: %+v", trans)
	}
	if tag.calls != 1 {
		t.Errorf("Tag calls = %d, want 1", tag.calls)
	}
}

func TestProcessMP4OverwritesExistingFile(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "My Clip.mp4")
	if err := os.WriteFile(existing, []byte("stale old contents"), 0o644); err != nil {
		t.Fatal(err)
	}

	svc := NewService(WithTranscoder(&fakeTranscoder{}), WithTagger(&fakeTagger{}))
	res := svc.Process(context.Background(), progressiveVideo(), model.DownloadOptions{
		OutputDir: dir,
		MediaType: model.MediaMP4,
	})

	if !res.OK() {
		t.Fatalf("result = %+v", res)
	}
	data, _ := os.ReadFile(existing)
	if string(data) != "mp4data" {
		t.Errorf("existing file not replaced, content = %q", data)
	}
}

func TestProcessMP3ExtractsAudio(t *testing.T) {
	dir := t.TempDir()
	trans := &fakeTranscoder{}
	svc := NewService(WithTranscoder(trans), WithTagger(&fakeTagger{}))

	res := svc.Process(context.Background(), progressiveVideo(), model.DownloadOptions{
		OutputDir: dir,
		MediaType: model.MediaMP3,
	})

	if !res.OK() {
		t.Fatalf("result = %+v", res)
	}
	if trans.extractCalls != 1 || trans.lastProfile != transcoder.ProfileMP3 {
		t.Errorf("transcoder = %+v", trans)
	}
	if trans.lastDuration != 3*time.Minute {
		t.Errorf("source duration = %v, want the video's length", trans.lastDuration)
	}
	if _, err := os.Stat(filepath.Join(dir, "My Clip.mp3")); err != nil {
		t.Errorf("artifact missing: %v", err)
	}
}

func TestProcessMKVMuxesPair(t *testing.T) {
	dir := t.TempDir()
	v := progressiveVideo()
	v.videoOnly = &model.Stream{Itag: 137, Height: 1080}
	trans := &fakeTranscoder{}
	svc := NewService(WithTranscoder(trans), WithTagger(&fakeTagger{}))

	res := svc.Process(context.Background(), v, model.DownloadOptions{
		OutputDir: dir,
		MediaType: model.MediaMKV,
	})

	if !res.OK() {
		t.Fatalf("result = %+v", res)
	}
	if trans.muxCalls != 1 {
		t.Errorf("mux calls = %d", trans.muxCalls)
	}
}

func TestProcessUnavailableVideo(t *testing.T) {
	v := progressiveVideo()
	v.loadErr = fmt.Errorf("%w: private video", resolver.ErrVideoUnavailable)
	svc := NewService(WithTranscoder(&fakeTranscoder{}))

	res := svc.Process(context.Background(), v, model.DownloadOptions{
		OutputDir: t.TempDir(),
		MediaType: model.MediaMP4,
	})

	if res.Status != model.StatusUnavailable {
		t.Errorf("Status = %q, want unavailable", res.Status)
	}
	if res.Message == "" {
		t.Error("Message empty")
	}
}

func TestProcessSelectionFailureLeavesNoFiles(t *testing.T) {
	dir := t.TempDir()
	v := progressiveVideo()
	v.progressive = nil
	svc := NewService(WithTranscoder(&fakeTranscoder{}))

	res := svc.Process(context.Background(), v, model.DownloadOptions{
		OutputDir: dir,
		MediaType: model.MediaMP4,
	})

	if res.Status != model.StatusError {
		t.Fatalf("result = %+v", res)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("output dir not empty: %v", entries)
	}
}

func TestProcessDownloadFailureRemovesPartial(t *testing.T) {
	dir := t.TempDir()
	v := progressiveVideo()
	v.downloadErr = errors.New("network reset")
	svc := NewService(WithTranscoder(&fakeTranscoder{}))

	res := svc.Process(context.Background(), v, model.DownloadOptions{
		OutputDir: dir,
		MediaType: model.MediaMP4,
	})

	if res.Status != model.StatusError {
		t.Fatalf("result = %+v", res)
	}
	if !strings.Contains(res.Message, "network reset") {
		t.Errorf("Message = %q", res.Message)
	}
	if _, err := os.Stat(filepath.Join(dir, "My Clip.mp4")); !os.IsNotExist(err) {
		t.Errorf("partial artifact left behind, stat err = %v", err)
	}
}

func TestProcessThumbnailFailureIsNonFatal(t *testing.T) {
	dir := t.TempDir()
	tag := &fakeTagger{}
	svc := NewService(
		WithTranscoder(&fakeTranscoder{}),
		WithTagger(tag),
		WithThumbnailFetcher(&fakeThumbs{err: errors.New("404")}),
	)

	res := svc.Process(context.Background(), progressiveVideo(), model.DownloadOptions{
		OutputDir:         dir,
		MediaType:         model.MediaMP4,
		DownloadThumbnail: true,
	})

	if !res.OK() {
		t.Fatalf("result = %+v, want success despite thumbnail failure", res)
	}
	if len(tag.covers) != 1 || tag.covers[0] != "" {
		t.Errorf("cover path passed to tagger = %v, want empty", tag.covers)
	}
}

func TestProcessThumbnailSidecarFeedsTagger(t *testing.T) {
	dir := t.TempDir()
	tag := &fakeTagger{}
	thumbs := &fakeThumbs{}
	svc := NewService(
		WithTranscoder(&fakeTranscoder{}),
		WithTagger(tag),
		WithThumbnailFetcher(thumbs),
	)

	res := svc.Process(context.Background(), progressiveVideo(), model.DownloadOptions{
		OutputDir:         dir,
		MediaType:         model.MediaMP4,
		DownloadThumbnail: true,
	})

	if !res.OK() {
		t.Fatalf("result = %+v", res)
	}
	wantCover := filepath.Join(dir, "My Clip.jpg")
	if len(tag.covers) != 1 || tag.covers[0] != wantCover {
		t.Errorf("cover path = %v, want %q", tag.covers, wantCover)
	}
	if _, err := os.Stat(wantCover); err != nil {
		t.Errorf("sidecar missing: %v", err)
	}
}

func TestProcessTaggerFailureIsNonFatal(t *testing.T) {
	svc := NewService(
		WithTranscoder(&fakeTranscoder{}),
		WithTagger(&fakeTagger{err: errors.New("no write access")}),
	)

	res := svc.Process(context.Background(), progressiveVideo(), model.DownloadOptions{
		OutputDir: t.TempDir(),
		MediaType: model.MediaMP4,
	})

	if !res.OK() {
		t.Errorf("result = %+v, want success despite tag failure", res)
	}
}

func TestProcessTranscodeFailure(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(WithTranscoder(&fakeTranscoder{err: errors.New("codec error")}))

	res := svc.Process(context.Background(), progressiveVideo(), model.DownloadOptions{
		OutputDir: dir,
		MediaType: model.MediaMP3,
	})

	if res.Status != model.StatusError {
		t.Fatalf("result = %+v", res)
	}
	if _, err := os.Stat(filepath.Join(dir, "My Clip.mp3")); !os.IsNotExist(err) {
		t.Errorf("artifact should not exist, stat err = %v", err)
	}
}
