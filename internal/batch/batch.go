package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"crush/internal/catalog"
	"crush/internal/compressor"
)

// Run executes one batch: create the output directory, enumerate the input
// directory, fan the files out to a bounded pool of workers, and aggregate
// every per-file result into a Summary. Only an unusable output directory or
// an unreadable input directory abort the batch; per-file failures are
// recorded and counted but never stop other files.
//
// An empty (or missing) input directory yields an all-zero Summary and nil
// error. Progress deltas are sent to updates as files are discovered and
// completed; pass nil to run without progress reporting.
func Run(ctx context.Context, cfg Config, comp compressor.Compressor, updates chan<- ProgressUpdate) (Summary, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("create output directory %s: %w", cfg.OutputDir, err)
	}

	files, err := catalog.Enumerate(cfg.InputDir)
	if err != nil {
		return Summary{}, fmt.Errorf("list input directory %s: %w", cfg.InputDir, err)
	}
	if len(files) == 0 {
		return Summary{}, nil
	}

	requests := make([]compressor.Request, 0, len(files))
	for _, f := range files {
		requests = append(requests, compressor.Request{
			SourcePath:   f.Path,
			DestPath:     filepath.Join(cfg.OutputDir, filepath.Base(f.Path)),
			OriginalSize: f.Size,
			Quality:      cfg.Quality,
			DPI:          cfg.DPI,
		})
		if updates != nil {
			updates <- ProgressUpdate{TotalDelta: 1}
		}
	}

	agg := &aggregator{}
	for res := range runPool(ctx, requests, compressor.NewUnit(comp), cfg.Workers) {
		agg.record(res)
		if updates == nil {
			continue
		}
		if res.Success() {
			updates <- ProgressUpdate{
				DoneDelta:     1,
				BytesInDelta:  res.OriginalSize,
				BytesOutDelta: res.CompressedSize,
			}
		} else {
			updates <- ProgressUpdate{FailedDelta: 1}
		}
	}

	return agg.finalize(), nil
}

// runPool feeds requests through a jobs channel to a fixed set of workers
// and closes the returned channel once every request has reached a terminal
// result. The worker count is a hard cap on in-flight compressions; queued
// requests are admitted FIFO as slots free up. Workers never exit early, so
// each submitted request produces exactly one result even when the context
// is cancelled (cancellation surfaces as per-file failures from the
// collaborator, not as dropped work).
func runPool(ctx context.Context, requests []compressor.Request, unit *compressor.Unit, workers int) <-chan compressor.Result {
	jobs := make(chan compressor.Request)
	results := make(chan compressor.Result)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for req := range jobs {
				results <- unit.Execute(ctx, req)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, req := range requests {
			jobs <- req
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}
