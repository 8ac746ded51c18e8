package cli

import (
	"database/sql"

	"github.com/mlowery2/txmedian/internal/storage"
)

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable verbose output"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// RunCommand — stream a transaction log and emit rolling median degrees.
type RunCommand struct {
	Input    string `long:"input" description:"Newline-delimited JSON transaction log (required)"`
	Output   string `long:"output" description:"Write medians to this file instead of stdout"`
	Window   string `long:"window" description:"Override window duration (e.g. 60s, 2m)"`
	NoLedger bool   `long:"no-ledger" description:"Do not record this run in the ledger"`

	globals *GlobalFlags
	version string
	store   storage.Store // injectable for testing; nil means open default DB
}

// StatusCommand — show run-ledger totals and database information.
type StatusCommand struct {
	globals *GlobalFlags
	version string
}

// HistoryCommand — list recent runs with their median summaries.
type HistoryCommand struct {
	Limit int `long:"limit" description:"Maximum runs to list" default:"10"`

	globals *GlobalFlags
	version string
}

// PurgeCommand — delete ALL recorded runs with safety confirmation.
type PurgeCommand struct {
	All   bool `long:"all" description:"Required flag to confirm purge intent"`
	Force bool `long:"force" description:"Skip safety confirmation prompt"`

	globals *GlobalFlags
	version string
	db      *sql.DB // injectable for testing; nil means open default DB
}
