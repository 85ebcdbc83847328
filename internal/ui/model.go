// Package ui renders the live download dashboard for concurrent batch runs:
// one panel per item with stage, progress bar, and status line, driven by
// pipeline reporter events.
package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	bubblesprogress "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"octotube/internal/model"
	"octotube/internal/progress"
	"octotube/internal/util/format"
)

// Processor runs the per-item pipeline. Satisfied by pipeline.Service.
type Processor interface {
	Process(ctx context.Context, video model.Video, opts model.DownloadOptions) model.ItemResult
}

// ProcessorFactory builds a Processor bound to a job ID and a reporter that
// feeds this model's event channel.
type ProcessorFactory func(jobID string, rep progress.Reporter) Processor

type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	items   []model.Video
	opts    model.DownloadOptions
	factory ProcessorFactory

	jobOrder []string
	jobs     map[string]*jobState
	workers  int
	running  int
	next     int // next index in items to start
	finished int

	width, height int
	styles        Styles

	// Reporter events are funneled through here into tea messages.
	eventCh chan tea.Msg
}

func NewModel(ctx context.Context, items []model.Video, opts model.DownloadOptions, workers int, factory ProcessorFactory) Model {
	c, cancel := context.WithCancel(ctx)
	sty := defaultStyles()

	jobs := make(map[string]*jobState, len(items))
	order := make([]string, 0, len(items))
	for i, item := range items {
		id := "item-" + strconv.Itoa(i+1)
		js := newJobState(id, item.Title(), sty)
		js.bar = bubblesprogress.New(bubblesprogress.WithDefaultGradient(), bubblesprogress.WithWidth(40))
		jobs[id] = &js
		order = append(order, id)
	}

	if workers <= 0 {
		workers = 4
	}

	return Model{
		ctx:      c,
		cancel:   cancel,
		items:    items,
		opts:     opts,
		factory:  factory,
		jobs:     jobs,
		jobOrder: order,
		workers:  workers,
		styles:   sty,
		eventCh:  make(chan tea.Msg, 256),
	}
}

func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	for _, id := range m.jobOrder {
		sp := m.jobs[id].spinner
		cmds = append(cmds, sp.Tick)
	}
	cmds = append(cmds, m.listenEventsCmd())
	cmds = append(cmds, func() tea.Msg { return kickoffMsg{} })
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancel()
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case kickoffMsg:
		m.startWorkers()

	case jobUpdateMsg:
		u := msg.U
		if js, ok := m.jobs[u.JobID]; ok {
			js.stage = u.Stage
			js.percent = u.Percent
			if u.Message != "" {
				js.status = u.Message
			}
			if u.Bytes > 0 {
				js.bytes = u.Bytes
			}
		}
	case jobLogMsg:
		l := msg.L
		if js, ok := m.jobs[l.JobID]; ok {
			line := strings.TrimRight(l.Line, "\r\n")
			if len(js.logsRing) > 1000 {
				js.logsRing = js.logsRing[1:]
			}
			js.logsRing = append(js.logsRing, line)
		}
	case itemDoneMsg:
		if js, ok := m.jobs[msg.JobID]; ok && !js.done {
			js.done = true
			js.result = msg.Result
			js.elapsed = msg.Elapsed
			if msg.Result.OK() {
				js.stage = progress.StageCompleted
				js.percent = 100
				js.bytes = msg.Result.SizeBytes
				js.status = fmt.Sprintf("Saved: %s (%s)",
					filepath.Base(msg.Result.FilePath),
					format.HumanizeBytes(msg.Result.SizeBytes))
			} else {
				js.stage = progress.StageError
				js.status = msg.Result.Message
				js.percent = -1
			}
			m.running--
			m.finished++
			m.startWorkers()
			if m.finished >= len(m.items) {
				return m, tea.Quit
			}
		}
	case allDoneMsg:
		return m, tea.Quit
	}

	var cmds []tea.Cmd
	for _, id := range m.jobOrder {
		js := m.jobs[id]
		var c tea.Cmd
		js.spinner, c = js.spinner.Update(msg)
		if c != nil {
			cmds = append(cmds, c)
		}
	}
	cmds = append(cmds, m.listenEventsCmd())
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	summary := m.viewSummary()
	if summary != "" {
		return m.viewHeader() + "\n\n" + m.viewJobs() + "\n" + summary
	}
	return m.viewHeader() + "\n\n" + m.viewJobs()
}

func (m Model) listenEventsCmd() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
			return allDoneMsg{}
		case msg := <-m.eventCh:
			return msg
		}
	}
}

// startWorkers launches item goroutines until the pool is full or the input
// is exhausted. Mutates the receiver through the pointer so callers must use
// it on an addressable Model.
func (m *Model) startWorkers() {
	select {
	case <-m.ctx.Done():
		return
	default:
	}
	for m.running < m.workers && m.next < len(m.items) {
		idx := m.next
		jobID := m.jobOrder[idx]
		item := m.items[idx]
		m.next++
		m.running++
		if js := m.jobs[jobID]; js != nil {
			js.started = true
			js.status = "Starting"
		}
		go m.runJob(jobID, item)
	}
}

func (m Model) runJob(jobID string, item model.Video) {
	rep := teaReporter{ch: m.eventCh, done: m.ctx.Done()}
	proc := m.factory(jobID, rep)
	start := time.Now()
	res := proc.Process(m.ctx, item, m.opts)

	select {
	case m.eventCh <- itemDoneMsg{JobID: jobID, Result: res, Elapsed: time.Since(start)}:
	case <-m.ctx.Done():
	}
}

// TotalElapsed sums the processing time of every finished item. Items that
// never finished contribute nothing.
func (m Model) TotalElapsed() time.Duration {
	var total time.Duration
	for _, js := range m.jobs {
		total += js.elapsed
	}
	return total
}

// Results collects the final per-item outcomes in input order. Items never
// started report as errors so the aggregate always covers the whole input.
func (m Model) Results() []model.ItemResult {
	out := make([]model.ItemResult, 0, len(m.jobOrder))
	for i, id := range m.jobOrder {
		js := m.jobs[id]
		if js.done {
			out = append(out, js.result)
			continue
		}
		out = append(out, model.ItemResult{
			Status:  model.StatusError,
			Title:   m.items[i].Title(),
			Message: "canceled",
		})
	}
	return out
}

type teaReporter struct {
	ch   chan tea.Msg
	done <-chan struct{}
}

func (r teaReporter) Update(u progress.Update) {
	// Completion and error transitions must land; drop the rest under
	// backpressure.
	if u.Stage == progress.StageCompleted || u.Stage == progress.StageError {
		select {
		case r.ch <- jobUpdateMsg{U: u}:
		case <-r.done:
		}
		return
	}
	select {
	case r.ch <- jobUpdateMsg{U: u}:
	default:
	}
}

func (r teaReporter) Log(l progress.Log) {
	select {
	case r.ch <- jobLogMsg{L: l}:
	default:
	}
}

func (r teaReporter) Result(progress.Result) {
	// The item goroutine delivers the authoritative ItemResult itself.
}
