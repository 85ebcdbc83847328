// Package batch runs a set of videos through the download pipeline, either
// one at a time or on a bounded worker pool, and aggregates the outcome.
package batch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"octotube/internal/model"
)

// DefaultWorkers is the pool size for concurrent batch mode.
const DefaultWorkers = 4

// Processor turns one video into an ItemResult. It must never panic across
// the call boundary; the runner still guards against it.
type Processor interface {
	Process(ctx context.Context, video model.Video, opts model.DownloadOptions) model.ItemResult
}

// ProcessorFactory builds a Processor for one item. jobID identifies the item
// to progress reporters; index is the 1-based position in the batch.
type ProcessorFactory func(jobID string, index int) Processor

// ItemProgress is delivered once per finished item, in completion order.
type ItemProgress struct {
	Index   int // 1-based position in the input set
	Total   int
	Result  model.ItemResult
	Elapsed time.Duration
}

// Runner executes batches. Zero or negative Workers falls back to
// DefaultWorkers.
type Runner struct {
	factory ProcessorFactory
	workers int
}

// NewRunner constructs a Runner around a per-item processor factory.
func NewRunner(factory ProcessorFactory, workers int) *Runner {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Runner{factory: factory, workers: workers}
}

// RunSequential processes items in input order, invoking onItem after each.
// A failed item never stops the batch; cancellation does.
func (r *Runner) RunSequential(ctx context.Context, items []model.Video, opts model.DownloadOptions, onItem func(ItemProgress)) model.RunReport {
	report := model.RunReport{TotalItems: len(items)}

	for i, video := range items {
		if ctx.Err() != nil {
			break
		}
		itemStart := time.Now()
		res := r.processOne(ctx, video, opts, i)
		elapsed := time.Since(itemStart)
		r.tally(&report, res, elapsed)
		if onItem != nil {
			onItem(ItemProgress{
				Index:   i + 1,
				Total:   len(items),
				Result:  res,
				Elapsed: elapsed,
			})
		}
	}

	return report
}

// RunConcurrent processes items on a bounded worker pool. onItem fires in
// completion order, not input order, and is never called concurrently.
func (r *Runner) RunConcurrent(ctx context.Context, items []model.Video, opts model.DownloadOptions, onItem func(ItemProgress)) model.RunReport {
	report := model.RunReport{TotalItems: len(items)}

	type job struct {
		index int
		video model.Video
	}
	jobs := make(chan job)
	results := make(chan ItemProgress)

	var wg sync.WaitGroup
	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				itemStart := time.Now()
				res := r.processOne(ctx, j.video, opts, j.index)
				results <- ItemProgress{
					Index:   j.index + 1,
					Total:   len(items),
					Result:  res,
					Elapsed: time.Since(itemStart),
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i, video := range items {
			select {
			case jobs <- job{index: i, video: video}:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	for p := range results {
		r.tally(&report, p.Result, p.Elapsed)
		if onItem != nil {
			onItem(p)
		}
	}

	return report
}

// processOne dispatches to a fresh processor and converts a worker panic into
// an error result so the rest of the batch survives.
func (r *Runner) processOne(ctx context.Context, video model.Video, opts model.DownloadOptions, index int) (res model.ItemResult) {
	defer func() {
		if rec := recover(); rec != nil {
			res = model.ItemResult{
				Status:  model.StatusError,
				Title:   video.Title(),
				Message: fmt.Sprintf("internal error: %v", rec),
			}
		}
	}()

	proc := r.factory(fmt.Sprintf("item-%d", index+1), index+1)
	return proc.Process(ctx, video, opts)
}

// tally folds one finished item into the report. Elapsed accumulates for
// every item, success or not, so a concurrent run reports the sum of item
// times rather than wall clock.
func (r *Runner) tally(report *model.RunReport, res model.ItemResult, elapsed time.Duration) {
	report.TotalElapsed += elapsed
	if res.OK() {
		report.SuccessCount++
		report.TotalBytes += res.SizeBytes
	}
}
