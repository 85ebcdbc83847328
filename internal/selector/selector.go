// Package selector picks the stream set needed to produce a requested output
// format from a video's catalog. Selection is pure and deterministic: given
// the same catalog and request it always returns the same streams.
package selector

import (
	"fmt"

	"octotube/internal/model"
)

// progressiveContainer is the container progressive downloads come in.
const progressiveContainer = "mp4"

// SelectionError reports that no stream in the catalog satisfies the request.
// It is scoped to one item; the batch continues past it.
type SelectionError struct {
	Reason string
}

func (e *SelectionError) Error() string {
	return e.Reason
}

// SelectStreams chooses the streams for the requested media type. The
// qualityHint is a resolution label ("720p") and only applies to mp4.
func SelectStreams(v model.Video, mediaType model.MediaType, qualityHint string) (model.StreamSelection, error) {
	switch mediaType {
	case model.MediaMP3, model.MediaWAV:
		audio, ok := v.BestAudioStream()
		if !ok {
			return model.StreamSelection{}, &SelectionError{Reason: "no audio stream available"}
		}
		return model.StreamSelection{Kind: model.SelectionAudioOnly, Audio: audio}, nil

	case model.MediaMP4:
		streams := v.ProgressiveStreams(progressiveContainer)
		if qualityHint != "" {
			for _, s := range streams {
				if s.QualityLabel == qualityHint {
					return model.StreamSelection{Kind: model.SelectionProgressive, Progressive: s}, nil
				}
			}
			return model.StreamSelection{}, &SelectionError{
				Reason: fmt.Sprintf("no video stream matches quality %s", qualityHint),
			}
		}
		if len(streams) == 0 {
			return model.StreamSelection{}, &SelectionError{Reason: "no video stream available"}
		}
		// Catalog order is resolution-descending; first is highest.
		return model.StreamSelection{Kind: model.SelectionProgressive, Progressive: streams[0]}, nil

	case model.MediaMKV:
		video, vok := v.BestVideoOnlyStream()
		audio, aok := v.BestAudioStream()
		if !vok || !aok {
			return model.StreamSelection{}, &SelectionError{Reason: "no separate video/audio streams available"}
		}
		return model.StreamSelection{Kind: model.SelectionAdaptivePair, Video: video, Audio: audio}, nil

	default:
		return model.StreamSelection{}, &SelectionError{
			Reason: fmt.Sprintf("unsupported media type %q", mediaType),
		}
	}
}

// Qualities enumerates the progressive resolution labels available for
// interactive selection, highest first. Duplicate labels collapse to one.
func Qualities(v model.Video) []string {
	var out []string
	seen := map[string]bool{}
	for _, s := range v.ProgressiveStreams(progressiveContainer) {
		if s.QualityLabel == "" || seen[s.QualityLabel] {
			continue
		}
		seen[s.QualityLabel] = true
		out = append(out, s.QualityLabel)
	}
	return out
}
