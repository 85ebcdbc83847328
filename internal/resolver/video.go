package resolver

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/kkdai/youtube/v2"

	"octotube/internal/model"
)

// ytVideo implements model.Video over the delegate library. Videos resolved
// directly carry their catalog from the start; playlist entries resolve
// lazily on first Load so that enumerating a large playlist stays cheap.
type ytVideo struct {
	yt    youtubeAPI
	entry *youtube.PlaylistEntry // nil when resolved directly

	mu      sync.Mutex
	video   *youtube.Video
	streams []model.Stream
	loadErr error
}

func newResolvedVideo(yt youtubeAPI, v *youtube.Video) *ytVideo {
	return &ytVideo{yt: yt, video: v, streams: catalogOf(v)}
}

func newPlaylistVideo(yt youtubeAPI, entry *youtube.PlaylistEntry) *ytVideo {
	return &ytVideo{yt: yt, entry: entry}
}

// Load fetches the stream catalog for lazily-constructed handles. The
// outcome (including failure) is cached; repeated calls are cheap.
func (v *ytVideo) Load(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.video != nil || v.loadErr != nil {
		return v.loadErr
	}
	resolved, err := v.yt.VideoFromPlaylistEntryContext(ctx, v.entry)
	if err != nil {
		v.loadErr = classifyResolveError(err)
		return v.loadErr
	}
	v.video = resolved
	v.streams = catalogOf(resolved)
	return nil
}

func (v *ytVideo) ID() string {
	if v.video != nil {
		return v.video.ID
	}
	return v.entry.ID
}

func (v *ytVideo) Title() string {
	if v.video != nil {
		return v.video.Title
	}
	return v.entry.Title
}

func (v *ytVideo) Author() string {
	if v.video != nil {
		return v.video.Author
	}
	return v.entry.Author
}

func (v *ytVideo) Duration() time.Duration {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.video != nil {
		return v.video.Duration
	}
	return v.entry.Duration
}

func (v *ytVideo) ThumbnailURL() string {
	thumbs := v.thumbnails()
	best := ""
	var bestW uint
	for _, t := range thumbs {
		if best == "" || t.Width > bestW {
			best = t.URL
			bestW = t.Width
		}
	}
	return best
}

func (v *ytVideo) thumbnails() youtube.Thumbnails {
	if v.video != nil {
		return v.video.Thumbnails
	}
	return v.entry.Thumbnails
}

// ProgressiveStreams lists progressive streams in the given container,
// resolution descending, ties kept in catalog order.
func (v *ytVideo) ProgressiveStreams(container string) []model.Stream {
	var out []model.Stream
	for _, s := range v.catalog() {
		if s.Progressive() && s.Container == container {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Height > out[j].Height
	})
	return out
}

// BestAudioStream returns the highest-bitrate audio-only stream.
func (v *ytVideo) BestAudioStream() (model.Stream, bool) {
	var best model.Stream
	found := false
	for _, s := range v.catalog() {
		if !s.AudioOnly() {
			continue
		}
		if !found || s.Bitrate > best.Bitrate {
			best = s
			found = true
		}
	}
	return best, found
}

// BestVideoOnlyStream returns the highest-resolution video-only stream,
// bitrate breaking resolution ties.
func (v *ytVideo) BestVideoOnlyStream() (model.Stream, bool) {
	var best model.Stream
	found := false
	for _, s := range v.catalog() {
		if !s.VideoOnly() {
			continue
		}
		if !found || s.Height > best.Height ||
			(s.Height == best.Height && s.Bitrate > best.Bitrate) {
			best = s
			found = true
		}
	}
	return best, found
}

func (v *ytVideo) catalog() []model.Stream {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.streams
}

// Download copies the stream's bytes to w. The stream must come from this
// video's catalog.
func (v *ytVideo) Download(ctx context.Context, s model.Stream, w io.Writer) (int64, error) {
	v.mu.Lock()
	video := v.video
	v.mu.Unlock()
	if video == nil {
		return 0, fmt.Errorf("video %s: catalog not loaded", v.ID())
	}

	var format *youtube.Format
	for i := range video.Formats {
		if video.Formats[i].ItagNo == s.Itag {
			format = &video.Formats[i]
			break
		}
	}
	if format == nil {
		return 0, fmt.Errorf("stream itag %d not in catalog of %s", s.Itag, v.ID())
	}

	rc, _, err := v.yt.GetStreamContext(ctx, video, format)
	if err != nil {
		return 0, fmt.Errorf("open stream: %w", classifyResolveError(err))
	}
	defer rc.Close()

	n, err := io.Copy(w, rc)
	if err != nil {
		return n, fmt.Errorf("download stream: %w", err)
	}
	return n, nil
}

func catalogOf(v *youtube.Video) []model.Stream {
	out := make([]model.Stream, 0, len(v.Formats))
	for _, f := range v.Formats {
		out = append(out, model.Stream{
			Itag:          f.ItagNo,
			MimeType:      f.MimeType,
			Container:     containerOf(f.MimeType),
			QualityLabel:  f.QualityLabel,
			Width:         f.Width,
			Height:        f.Height,
			Bitrate:       f.Bitrate,
			AudioChannels: f.AudioChannels,
			ContentLength: f.ContentLength,
		})
	}
	return out
}

// containerOf extracts the container from a MIME type like
// "video/mp4; codecs=\"avc1.42001E, mp4a.40.2\"".
func containerOf(mimeType string) string {
	mt := mimeType
	if i := strings.Index(mt, ";"); i >= 0 {
		mt = mt[:i]
	}
	if i := strings.Index(mt, "/"); i >= 0 {
		mt = mt[i+1:]
	}
	return strings.TrimSpace(mt)
}
