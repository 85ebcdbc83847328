package transcoder

import "fmt"

// BuildAudioArgs constructs ffmpeg arguments for re-encoding a downloaded
// stream file into the given audio profile.
func BuildAudioArgs(inputPath, outputPath string, profile AudioProfile) ([]string, error) {
	switch profile {
	case ProfileMP3:
		return []string{
			"-y",
			"-i", inputPath,
			"-vn",
			"-ab", "192k",
			"-ar", "44100",
			"-f", "mp3",
			outputPath,
		}, nil
	case ProfileWAV:
		return []string{
			"-y",
			"-i", inputPath,
			"-vn",
			"-ar", "44100",
			"-ac", "2",
			"-f", "wav",
			outputPath,
		}, nil
	default:
		return nil, fmt.Errorf("unknown audio profile %q", profile)
	}
}

// BuildMuxArgs constructs ffmpeg arguments for stream-copying separate video
// and audio tracks into one container.
func BuildMuxArgs(videoPath, audioPath, outputPath string) []string {
	return []string{
		"-y",
		"-i", videoPath,
		"-i", audioPath,
		"-c", "copy",
		outputPath,
	}
}
