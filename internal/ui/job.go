package ui

import (
	"time"

	bubblesprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"

	"octotube/internal/model"
	"octotube/internal/progress"
)

type jobState struct {
	id     string
	title  string
	stage  progress.Stage
	status string
	done   bool

	result  model.ItemResult
	elapsed time.Duration
	bytes   int64
	percent float64 // -1 means unknown

	spinner spinner.Model
	bar     bubblesprogress.Model

	started bool

	// Recent diagnostic lines, kept small.
	logsRing []string
}

func newJobState(id, title string, styles Styles) jobState {
	sp := spinner.New()
	sp.Style = styles.Spinner
	bar := bubblesprogress.New(
		bubblesprogress.WithDefaultGradient(),
		bubblesprogress.WithWidth(40),
	)
	return jobState{
		id:      id,
		title:   title,
		stage:   progress.StageResolving,
		status:  "Queued",
		percent: -1,
		spinner: sp,
		bar:     bar,
	}
}
