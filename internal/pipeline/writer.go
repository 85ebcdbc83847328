package pipeline

import (
	"octotube/internal/progress"
)

// progressWriter emits download progress updates as bytes flow through it.
// When total is unknown (zero) it reports indeterminate progress with a byte
// counter only.
type progressWriter struct {
	reporter progress.Reporter
	jobID    string
	total    int64
	written  int64
}

func (p *progressWriter) Write(b []byte) (int, error) {
	p.written += int64(len(b))
	percent := -1.0
	if p.total > 0 {
		percent = float64(p.written) / float64(p.total) * 100
		if percent > 100 {
			percent = 100
		}
	}
	p.reporter.Update(progress.Update{
		JobID:   p.jobID,
		Stage:   progress.StageDownloading,
		Percent: percent,
		Bytes:   p.written,
	})
	return len(b), nil
}
