package storage

import "time"

// Run records one completed processing pass over an input stream.
type Run struct {
	ID            string
	StartedAt     time.Time
	Input         string
	Output        string // empty when medians went to stdout
	WindowSeconds int
	Lines         int64
	Emitted       int64
	Skipped       int64
	DurationMs    int64

	// Summary of the medians emitted during the run.
	MedianMin    float64
	MedianMax    float64
	MedianMean   float64
	MedianMedian float64
}

// Stats aggregates the whole run ledger.
type Stats struct {
	TotalRuns    int64
	TotalLines   int64
	TotalEmitted int64
	TotalSkipped int64
	FirstRun     time.Time
	LastRun      time.Time
}
