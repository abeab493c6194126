package batch

import "crush/internal/compressor"

// Config is the complete set of batch inputs. It is passed by value into
// Run so no component depends on ambient state.
type Config struct {
	InputDir  string
	OutputDir string
	Quality   int
	DPI       int
	Workers   int
}

const (
	DefaultQuality = 50
	DefaultDPI     = 150
	DefaultWorkers = 2
)

// Summary is the final report for one batch. Byte totals cover successful
// files only, so the reduction figure compares like with like.
type Summary struct {
	Total    int
	Done     int
	Failed   int
	BytesIn  int64
	BytesOut int64
	Results  []compressor.Result
}

// Reduction is the overall size reduction across successful files, 0..1.
func (s Summary) Reduction() float64 {
	if s.BytesIn == 0 {
		return 0
	}
	return 1 - float64(s.BytesOut)/float64(s.BytesIn)
}

// ProgressUpdate carries counter deltas to the progress UI as work moves.
type ProgressUpdate struct {
	TotalDelta    int
	DoneDelta     int
	FailedDelta   int
	BytesInDelta  int64
	BytesOutDelta int64
}
