package transcoder

import (
	"strconv"
	"strings"
)

// ConvertProgress is a snapshot of a running ffmpeg conversion, taken each
// time ffmpeg flushes a -progress block.
type ConvertProgress struct {
	Percent float64 // 0..100 when the source duration is known, else -1
	Bytes   int64   // bytes written so far, 0 when unreported
	Speed   string  // e.g. "1.5x", empty when unreported
}

// ProgressState accumulates key=value lines from ffmpeg's -progress output.
// A snapshot is emitted on each "progress" marker line.
type ProgressState struct {
	OutTimeUs   int64
	SpeedStr    string
	TotalSize   int64
	DurationSec float64 // source duration; <= 0 means percent is unknown
}

// UpdateFromLine consumes one -progress line. ok is true only on the block
// terminator ("progress=continue" / "progress=end").
func (ps *ProgressState) UpdateFromLine(line string) (ConvertProgress, bool) {
	kv := strings.SplitN(line, "=", 2)
	if len(kv) != 2 {
		return ConvertProgress{}, false
	}

	key := strings.TrimSpace(kv[0])
	val := strings.TrimSpace(kv[1])

	switch key {
	case "out_time_ms", "out_time_us":
		// Both keys report microseconds.
		if v, err := strconv.ParseInt(val, 10, 64); err == nil {
			ps.OutTimeUs = v
		}
	case "speed":
		ps.SpeedStr = val
	case "total_size":
		if v, err := strconv.ParseInt(val, 10, 64); err == nil {
			ps.TotalSize = v
		}
	case "progress":
		percent := -1.0
		if ps.DurationSec > 0 {
			den := ps.DurationSec * 1_000_000
			percent = (float64(ps.OutTimeUs) / den) * 100.0
			if percent > 100 {
				percent = 100
			}
		}
		return ConvertProgress{
			Percent: percent,
			Bytes:   ps.TotalSize,
			Speed:   ps.SpeedStr,
		}, true
	}

	return ConvertProgress{}, false
}
