package progress

// Stage identifies a high-level step in the per-item pipeline.
type Stage string

const (
	StageResolving   Stage = "resolving"
	StageThumbnail   Stage = "thumbnail"
	StageDownloading Stage = "downloading"
	StageConverting  Stage = "converting"
	StageTagging     Stage = "tagging"
	StageCompleted   Stage = "completed"
	StageError       Stage = "error"
)

// Update conveys progress or stage changes for an item.
// Percent is 0..100 when known; negative means unknown.
type Update struct {
	JobID   string
	Stage   Stage
	Percent float64
	Bytes   int64  // cumulative bytes downloaded, 0 when not applicable
	Message string // short human-friendly status line
}

// Log is a diagnostic line associated with an item (metadata warnings,
// thumbnail fetch failures, subprocess noise).
type Log struct {
	JobID string
	Line  string
}

// Result is emitted once per item when it completes or fails.
type Result struct {
	JobID      string
	OutputPath string
	Bytes      int64
	Err        error // nil on success
}

// Reporter is implemented by the TUI or any observer of pipeline events.
type Reporter interface {
	Update(u Update)
	Log(l Log)
	Result(r Result)
}
