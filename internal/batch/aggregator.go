package batch

import (
	"sync"

	"crush/internal/compressor"
)

// aggregator accumulates results under a lock. Accumulation is purely
// additive, so the completion order of workers never changes the totals.
type aggregator struct {
	mu      sync.Mutex
	summary Summary
}

func (a *aggregator) record(res compressor.Result) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.summary.Total++
	if res.Success() {
		a.summary.Done++
		a.summary.BytesIn += res.OriginalSize
		a.summary.BytesOut += res.CompressedSize
	} else {
		a.summary.Failed++
	}
	a.summary.Results = append(a.summary.Results, res)
}

func (a *aggregator) finalize() Summary {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.summary
}
