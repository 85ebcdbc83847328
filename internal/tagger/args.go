package tagger

import (
	"path/filepath"
	"strings"
)

// BuildTagArgs constructs the ffmpeg arguments for a stream-copy remux that
// injects metadata, plus cover art when coverPath is set. mp4 embeds the
// cover as an attached-picture video stream; mkv carries it as an attachment.
func BuildTagArgs(inputPath, outputPath string, meta Metadata, coverPath string) []string {
	ext := strings.ToLower(filepath.Ext(inputPath))

	args := []string{"-y", "-i", inputPath}

	switch {
	case coverPath != "" && ext == ".mp4":
		args = append(args,
			"-i", coverPath,
			"-map", "0", "-map", "1",
			"-c", "copy",
			"-disposition:v:1", "attached_pic",
		)
	case coverPath != "" && ext == ".mkv":
		args = append(args,
			"-c", "copy",
			"-attach", coverPath,
			"-metadata:s:t:0", "mimetype=image/jpeg",
		)
	default:
		args = append(args, "-c", "copy")
	}

	if meta.Title != "" {
		args = append(args, "-metadata", "title="+meta.Title)
	}
	if meta.Artist != "" {
		args = append(args, "-metadata", "artist="+meta.Artist)
	}

	return append(args, outputPath)
}
