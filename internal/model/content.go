package model

import "time"

// ContentKind classifies a resolved URL.
type ContentKind string

const (
	ContentSingle   ContentKind = "single"
	ContentPlaylist ContentKind = "playlist"
	ContentError    ContentKind = "error"
)

// ContentDescriptor is the normalized result of resolving a URL.
// Items is empty when Kind is ContentError; ErrorMessage is set only then.
type ContentDescriptor struct {
	Kind         ContentKind
	Title        string // sanitized
	Items        []Video
	ErrorMessage string
}

// DownloadOptions configures one pipeline invocation. Passed by value and
// never mutated by the pipeline.
type DownloadOptions struct {
	OutputDir         string
	MediaType         MediaType
	Quality           string // optional resolution label, e.g. "720p"
	DownloadThumbnail bool
}

// ItemStatus is the per-video outcome classification.
type ItemStatus string

const (
	StatusSuccess     ItemStatus = "success"
	StatusError       ItemStatus = "error"
	StatusUnavailable ItemStatus = "unavailable"
)

// ItemResult is the immutable outcome of processing one video.
// FilePath is set only on success; Message only otherwise. SizeBytes is
// derived from the filesystem after assembly and is 0 when unknown.
type ItemResult struct {
	Status    ItemStatus
	Title     string
	FilePath  string
	Message   string
	SizeBytes int64
}

// OK reports whether the item produced an artifact.
func (r ItemResult) OK() bool {
	return r.Status == StatusSuccess
}

// RunReport aggregates a whole batch run. TotalElapsed is the sum of
// per-item processing times, not wall clock, so concurrent runs report more
// time than they took.
type RunReport struct {
	TotalItems   int
	SuccessCount int
	TotalBytes   int64
	TotalElapsed time.Duration
}

// FailureCount is the number of items that did not succeed.
func (r RunReport) FailureCount() int {
	return r.TotalItems - r.SuccessCount
}

// SuccessRate returns the success percentage; 0 for an empty run.
func (r RunReport) SuccessRate() float64 {
	if r.TotalItems == 0 {
		return 0
	}
	return 100 * float64(r.SuccessCount) / float64(r.TotalItems)
}

// CLIOptions holds runtime options assembled from flags, env, and config.
type CLIOptions struct {
	OutputDir  string
	Jobs       int  // worker pool size for concurrent mode
	Concurrent bool // bounded-concurrency batch mode
	Verbose    bool // stream subprocess commands/output
	FFmpegPath string
	NoUI       bool // disable the live TUI even on a terminal
}
