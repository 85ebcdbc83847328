package util

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateYouTubeURL checks that the raw string parses as a URL pointing at a
// YouTube host. A missing scheme is tolerated (https assumed).
func ValidateYouTubeURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err == nil && (u.Scheme == "" || u.Host == "") {
		if u2, e2 := url.Parse("https://" + raw); e2 == nil {
			u = u2
		}
	}
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid URL %q", raw)
	}

	host := strings.ToLower(strings.TrimPrefix(u.Host, "www."))
	switch host {
	case "youtube.com", "m.youtube.com", "music.youtube.com", "youtu.be":
		return u, nil
	default:
		return nil, fmt.Errorf("unsupported URL %q: only YouTube video or playlist links are supported", raw)
	}
}

// IsPlaylistURL reports whether the URL carries a playlist marker.
func IsPlaylistURL(raw string) bool {
	return strings.Contains(raw, "list=")
}
