package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Run     *RunCommand
	Status  *StatusCommand
	History *HistoryCommand
	Purge   *PurgeCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "txmedian"
	parser.LongDescription = "Rolling median vertex degree over a windowed payment-transaction graph."

	cmds := &commands{
		Run:     &RunCommand{globals: &globals, version: version},
		Status:  &StatusCommand{globals: &globals, version: version},
		History: &HistoryCommand{globals: &globals, version: version},
		Purge:   &PurgeCommand{globals: &globals, version: version},
	}

	parser.AddCommand("run", "Process a transaction log", "Stream a newline-delimited JSON transaction log and emit the rolling median degree after each record.", cmds.Run)
	parser.AddCommand("status", "Show ledger totals", "Show run-ledger totals, database path and size, and configuration summary.", cmds.Status)
	parser.AddCommand("history", "List recent runs", "List recent runs with line counts and median summaries.", cmds.History)
	parser.AddCommand("purge", "Delete ALL recorded runs", "Delete ALL recorded runs. Destructive operation with safety prompt.", cmds.Purge)

	return parser, &globals, cmds
}

// Run is the main entry point for the txmedian CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("txmedian %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
