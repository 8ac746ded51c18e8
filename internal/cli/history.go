package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mlowery2/txmedian/internal/storage"
)

// historyRunJSON is the JSON output structure for one run in history output.
type historyRunJSON struct {
	ID            string  `json:"id"`
	StartedAt     string  `json:"started_at"`
	Input         string  `json:"input"`
	Output        string  `json:"output,omitempty"`
	WindowSeconds int     `json:"window_seconds"`
	Lines         int64   `json:"lines"`
	Emitted       int64   `json:"emitted"`
	Skipped       int64   `json:"skipped"`
	DurationMs    int64   `json:"duration_ms"`
	MedianMin     float64 `json:"median_min"`
	MedianMax     float64 `json:"median_max"`
	MedianMean    float64 `json:"median_mean"`
	MedianMedian  float64 `json:"median_median"`
}

// Execute implements the go-flags Commander interface for HistoryCommand.
func (c *HistoryCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()

	return c.executeWithStore(store)
}

// executeWithStore runs history against a provided store (used by tests).
func (c *HistoryCommand) executeWithStore(store storage.Store) error {
	runs, err := store.ListRuns(context.Background(), c.Limit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		out := make([]historyRunJSON, 0, len(runs))
		for _, r := range runs {
			out = append(out, historyRunJSON{
				ID:            r.ID,
				StartedAt:     r.StartedAt.UTC().Format(time.RFC3339),
				Input:         r.Input,
				Output:        r.Output,
				WindowSeconds: r.WindowSeconds,
				Lines:         r.Lines,
				Emitted:       r.Emitted,
				Skipped:       r.Skipped,
				DurationMs:    r.DurationMs,
				MedianMin:     r.MedianMin,
				MedianMax:     r.MedianMax,
				MedianMean:    r.MedianMean,
				MedianMedian:  r.MedianMedian,
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	for _, r := range runs {
		fmt.Printf("%s  %s\n", r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.Input)
		fmt.Printf("  id=%s window=%ds lines=%d emitted=%d skipped=%d duration=%dms\n",
			r.ID, r.WindowSeconds, r.Lines, r.Emitted, r.Skipped, r.DurationMs)
		if r.Emitted > 0 {
			fmt.Printf("  median degree: min=%.2f max=%.2f mean=%.2f p50=%.2f\n",
				r.MedianMin, r.MedianMax, r.MedianMean, r.MedianMedian)
		}
	}

	return nil
}
