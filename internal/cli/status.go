package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mlowery2/txmedian/internal/storage"
)

// statusJSON is the JSON output structure for the status command.
type statusJSON struct {
	Version           string `json:"version"`
	DatabasePath      string `json:"database_path"`
	DatabaseSizeBytes int64  `json:"database_size_bytes"`
	TotalRuns         int64  `json:"total_runs"`
	TotalLines        int64  `json:"total_lines"`
	TotalEmitted      int64  `json:"total_emitted"`
	TotalSkipped      int64  `json:"total_skipped"`
	FirstRun          string `json:"first_run,omitempty"`
	LastRun           string `json:"last_run,omitempty"`
	WindowSeconds     int    `json:"window_seconds"`
}

// Execute implements the go-flags Commander interface for StatusCommand.
func (c *StatusCommand) Execute(args []string) error {
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

	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return err
	}

	return c.executeWithStore(store, dbPath, cfg.Window.Seconds)
}

// executeWithStore runs status against a provided store (used by tests).
func (c *StatusCommand) executeWithStore(store storage.Store, dbPath string, windowSeconds int) error {
	stats, err := store.GetStats(context.Background())
	if err != nil {
		return fmt.Errorf("get stats: %w", err)
	}

	dbSize := databaseSize(dbPath)

	if c.globals != nil && c.globals.JSON {
		return c.printStatusJSON(stats, dbPath, dbSize, windowSeconds)
	}
	return c.printStatusHuman(stats, dbPath, dbSize, windowSeconds)
}

func (c *StatusCommand) printStatusHuman(stats *storage.Stats, dbPath string, dbSize int64, windowSeconds int) error {
	fmt.Println("txmedian Status")
	fmt.Println("===============")
	fmt.Printf("Version:       %s\n", c.version)
	fmt.Printf("Database:      %s (%s)\n", dbPath, formatBytes(dbSize))
	fmt.Printf("Window:        %ds\n", windowSeconds)
	fmt.Printf("Runs:          %s\n", formatNumber(stats.TotalRuns))
	fmt.Printf("Lines:         %s\n", formatNumber(stats.TotalLines))

	// Skipped with percentage
	if stats.TotalLines > 0 {
		pct := float64(stats.TotalSkipped) / float64(stats.TotalLines) * 100
		fmt.Printf("Skipped:       %s (%.1f%%)\n", formatNumber(stats.TotalSkipped), pct)
	} else {
		fmt.Printf("Skipped:       %s\n", formatNumber(stats.TotalSkipped))
	}

	if stats.TotalRuns > 0 {
		fmt.Printf("First run:     %s\n", stats.FirstRun.Local().Format("2006-01-02 15:04"))
		fmt.Printf("Last run:      %s\n", stats.LastRun.Local().Format("2006-01-02 15:04"))
	}

	return nil
}

func (c *StatusCommand) printStatusJSON(stats *storage.Stats, dbPath string, dbSize int64, windowSeconds int) error {
	out := statusJSON{
		Version:           c.version,
		DatabasePath:      dbPath,
		DatabaseSizeBytes: dbSize,
		TotalRuns:         stats.TotalRuns,
		TotalLines:        stats.TotalLines,
		TotalEmitted:      stats.TotalEmitted,
		TotalSkipped:      stats.TotalSkipped,
		WindowSeconds:     windowSeconds,
	}
	if !stats.FirstRun.IsZero() {
		out.FirstRun = stats.FirstRun.UTC().Format(time.RFC3339)
	}
	if !stats.LastRun.IsZero() {
		out.LastRun = stats.LastRun.UTC().Format(time.RFC3339)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// databaseSize returns the on-disk size of the database file, or 0 when it
// cannot be determined (e.g. in-memory databases in tests).
func databaseSize(dbPath string) int64 {
	info, err := os.Stat(dbPath)
	if err != nil {
		return 0
	}
	return info.Size()
}
