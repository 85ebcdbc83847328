package model

import (
	"fmt"
	"strings"
)

// MediaType is the requested output container/codec.
type MediaType string

const (
	MediaMP3 MediaType = "mp3"
	MediaMP4 MediaType = "mp4"
	MediaWAV MediaType = "wav"
	MediaMKV MediaType = "mkv"
)

// ParseMediaType validates a user-supplied media type string.
func ParseMediaType(s string) (MediaType, error) {
	switch m := MediaType(strings.ToLower(strings.TrimSpace(s))); m {
	case MediaMP3, MediaMP4, MediaWAV, MediaMKV:
		return m, nil
	default:
		return "", fmt.Errorf("invalid media type %q (valid: mp3|mp4|wav|mkv)", s)
	}
}

// Ext returns the output file extension, without the dot.
func (m MediaType) Ext() string {
	return string(m)
}

// AudioOnly reports whether the media type carries no video track.
func (m MediaType) AudioOnly() bool {
	return m == MediaMP3 || m == MediaWAV
}

// NeedsQuality reports whether a resolution choice applies to this type.
func (m MediaType) NeedsQuality() bool {
	return m == MediaMP4 || m == MediaMKV
}
