// Package resolver adapts the external YouTube resolution library into the
// narrow content-descriptor and video-handle contracts the rest of octotube
// consumes.
package resolver

import (
	"context"
	"fmt"
	"io"

	"github.com/kkdai/youtube/v2"

	"octotube/internal/model"
	"octotube/internal/util"
)

// youtubeAPI is the slice of the delegate library the adapter uses.
// Narrowed to an interface so tests can fake resolution and streams.
type youtubeAPI interface {
	GetVideoContext(ctx context.Context, url string) (*youtube.Video, error)
	GetPlaylistContext(ctx context.Context, url string) (*youtube.Playlist, error)
	VideoFromPlaylistEntryContext(ctx context.Context, entry *youtube.PlaylistEntry) (*youtube.Video, error)
	GetStreamContext(ctx context.Context, video *youtube.Video, format *youtube.Format) (io.ReadCloser, int64, error)
}

// Client resolves YouTube URLs into content descriptors. It performs no
// retries of its own; transient failures surface as error descriptors.
type Client struct {
	yt youtubeAPI
}

// New returns a Client backed by the real YouTube delegate.
func New() *Client {
	return &Client{yt: &youtube.Client{}}
}

// Resolve turns a URL into a ContentDescriptor. It never returns a Go error:
// any resolution failure yields a descriptor with Kind == ContentError and a
// human-readable message.
func (c *Client) Resolve(ctx context.Context, rawURL string) model.ContentDescriptor {
	if _, err := util.ValidateYouTubeURL(rawURL); err != nil {
		return errorDescriptor(err)
	}

	if util.IsPlaylistURL(rawURL) {
		pl, err := c.yt.GetPlaylistContext(ctx, rawURL)
		if err != nil {
			return errorDescriptor(fmt.Errorf("could not resolve playlist: %w", err))
		}
		items := make([]model.Video, 0, len(pl.Videos))
		for _, entry := range pl.Videos {
			items = append(items, newPlaylistVideo(c.yt, entry))
		}
		return model.ContentDescriptor{
			Kind:  model.ContentPlaylist,
			Title: util.SanitizeName(pl.Title),
			Items: items,
		}
	}

	v, err := c.yt.GetVideoContext(ctx, rawURL)
	if err != nil {
		return errorDescriptor(fmt.Errorf("could not resolve video: %w", err))
	}
	return model.ContentDescriptor{
		Kind:  model.ContentSingle,
		Title: util.SanitizeName(v.Title),
		Items: []model.Video{newResolvedVideo(c.yt, v)},
	}
}

func errorDescriptor(err error) model.ContentDescriptor {
	return model.ContentDescriptor{
		Kind:         model.ContentError,
		ErrorMessage: err.Error(),
	}
}
