package ui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"octotube/internal/model"
)

// Run drives a concurrent batch behind the live dashboard. It returns the
// per-item results in input order and the sum of per-item processing times.
// The error covers TUI failures only; per-item failures live in the results.
func Run(ctx context.Context, items []model.Video, opts model.DownloadOptions, workers int, factory ProcessorFactory) ([]model.ItemResult, time.Duration, error) {
	m := NewModel(ctx, items, opts, workers, factory)
	prog := tea.NewProgram(m, tea.WithContext(ctx))
	final, err := prog.Run()
	if err != nil {
		return nil, 0, fmt.Errorf("interactive dashboard: %w", err)
	}
	fm, ok := final.(Model)
	if !ok {
		return nil, 0, fmt.Errorf("interactive dashboard returned unexpected model")
	}
	return fm.Results(), fm.TotalElapsed(), nil
}
