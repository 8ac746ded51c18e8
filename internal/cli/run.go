package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/mlowery2/txmedian/internal/config"
	"github.com/mlowery2/txmedian/internal/graph"
	"github.com/mlowery2/txmedian/internal/storage"
	"github.com/mlowery2/txmedian/internal/stream"
)

// Execute implements the go-flags Commander interface for RunCommand.
func (c *RunCommand) Execute(args []string) error {
	if c.Input == "" {
		return fmt.Errorf("--input is required for run command")
	}

	cfg, err := loadConfig(c.globals)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	window := cfg.WindowDuration()
	if c.Window != "" {
		window, err = time.ParseDuration(c.Window)
		if err != nil {
			return fmt.Errorf("invalid window %q: %w", c.Window, err)
		}
		if window <= 0 {
			return fmt.Errorf("invalid window %q: must be positive", c.Window)
		}
	}

	in, err := os.Open(c.Input)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer in.Close()

	out := io.Writer(os.Stdout)
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()
		out = f
	}

	p := stream.NewProcessor(graph.New(window))
	if cfg.Output.Warnings || (c.globals != nil && c.globals.Verbose) {
		p.Warnings = os.Stderr
	}

	started := time.Now()
	sum, err := p.Run(in, out)
	if err != nil {
		return err
	}
	elapsed := time.Since(started)

	if cfg.Ledger.Enabled && !c.NoLedger {
		if err := c.recordRun(cfg, sum, window, started, elapsed); err != nil {
			return fmt.Errorf("recording run: %w", err)
		}
	}

	return c.printSummary(sum, window, elapsed)
}

// recordRun writes the completed run to the ledger, opening the default
// store unless a test injected one.
func (c *RunCommand) recordRun(cfg *config.Config, sum *stream.Summary, window time.Duration, started time.Time, elapsed time.Duration) error {
	st := c.store
	if st == nil {
		store, db, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		defer store.Close()
		st = store
	}

	min, max, mean, median := medianSummary(sum.Medians)
	run := &storage.Run{
		StartedAt:     started,
		Input:         c.Input,
		Output:        c.Output,
		WindowSeconds: int(window / time.Second),
		Lines:         int64(sum.Lines),
		Emitted:       int64(sum.Emitted),
		Skipped:       int64(sum.Skipped),
		DurationMs:    elapsed.Milliseconds(),
		MedianMin:     min,
		MedianMax:     max,
		MedianMean:    mean,
		MedianMedian:  median,
	}

	return st.RecordRun(context.Background(), run)
}

// medianSummary reduces the emitted medians to min/max/mean/median.
func medianSummary(values []float64) (min, max, mean, median float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}
	d := stats.Float64Data(values)
	min, _ = d.Min()
	max, _ = d.Max()
	mean, _ = d.Mean()
	median, _ = d.Median()
	return min, max, mean, median
}

// printSummary reports the run outcome. When the median stream went to
// stdout the summary goes to stderr so the output stays machine-readable.
func (c *RunCommand) printSummary(sum *stream.Summary, window time.Duration, elapsed time.Duration) error {
	w := io.Writer(os.Stdout)
	if c.Output == "" {
		w = os.Stderr
	}

	if c.globals != nil && c.globals.JSON {
		min, max, mean, median := medianSummary(sum.Medians)
		out := map[string]interface{}{
			"input":          c.Input,
			"output":         c.Output,
			"window_seconds": int(window / time.Second),
			"lines":          sum.Lines,
			"emitted":        sum.Emitted,
			"skipped":        sum.Skipped,
			"duration_ms":    elapsed.Milliseconds(),
			"median_min":     min,
			"median_max":     max,
			"median_mean":    mean,
			"median_median":  median,
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprintf(w, "Processed %d lines (%d medians, %d skipped) in %s\n",
		sum.Lines, sum.Emitted, sum.Skipped, elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "  Window: %s\n", window)
	if len(sum.Medians) > 0 {
		min, max, mean, median := medianSummary(sum.Medians)
		fmt.Fprintf(w, "  Median degree: min=%.2f max=%.2f mean=%.2f p50=%.2f\n", min, max, mean, median)
	}
	return nil
}
