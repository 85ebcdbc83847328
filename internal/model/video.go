package model

import (
	"context"
	"io"
	"time"
)

// Stream describes one downloadable rendition from a video's catalog.
type Stream struct {
	Itag          int
	MimeType      string
	Container     string // "mp4", "webm", ...
	QualityLabel  string // "1080p", "720p", ... empty for audio-only
	Width         int
	Height        int
	Bitrate       int
	AudioChannels int
	ContentLength int64
}

// Progressive reports whether the stream carries both audio and video.
func (s Stream) Progressive() bool {
	return s.AudioChannels > 0 && s.Height > 0
}

// AudioOnly reports whether the stream carries audio and no video.
func (s Stream) AudioOnly() bool {
	return s.AudioChannels > 0 && s.Height == 0 && s.Width == 0
}

// VideoOnly reports whether the stream carries video and no audio.
func (s Stream) VideoOnly() bool {
	return s.AudioChannels == 0 && s.Height > 0
}

// Video is the capability interface over a resolvable video handle.
// Implementations own the underlying catalog; callers treat it as read-only.
type Video interface {
	// Load fetches the stream catalog if it has not been fetched yet.
	// It is safe to call repeatedly; the result is cached.
	Load(ctx context.Context) error

	ID() string
	Title() string
	Author() string
	ThumbnailURL() string

	// Duration is the source length, zero when unknown.
	Duration() time.Duration

	// ProgressiveStreams lists progressive streams in the given container,
	// ordered by resolution descending; ties keep catalog order.
	ProgressiveStreams(container string) []Stream

	// BestAudioStream returns the highest-bitrate audio-only stream.
	BestAudioStream() (Stream, bool)

	// BestVideoOnlyStream returns the highest-resolution video-only stream.
	BestVideoOnlyStream() (Stream, bool)

	// Download copies the raw stream bytes to w, returning the byte count.
	Download(ctx context.Context, s Stream, w io.Writer) (int64, error)
}

// SelectionKind discriminates the populated shape of a StreamSelection.
type SelectionKind int

const (
	SelectionProgressive SelectionKind = iota
	SelectionAdaptivePair
	SelectionAudioOnly
)

// StreamSelection is the stream set needed to produce one output artifact.
// Exactly the fields implied by Kind are meaningful.
type StreamSelection struct {
	Kind        SelectionKind
	Progressive Stream // SelectionProgressive
	Video       Stream // SelectionAdaptivePair
	Audio       Stream // SelectionAdaptivePair, SelectionAudioOnly
}
