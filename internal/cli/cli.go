package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Status *StatusCommand
	Report *ReportCommand
	Add    *AddCommand
	Rules  *RulesCommand
	Toggle *ToggleCommand
	Serve  *ServeCommand
	Export *ExportCommand
	Prune  *PruneCommand
	Purge  *PurgeCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "focuswatch"
	parser.LongDescription = "Privacy-first local time tracking for browser activity: sessions, categories, and daily focus reports."

	cmds := &commands{
		Status: &StatusCommand{globals: &globals, version: version},
		Report: &ReportCommand{globals: &globals, version: version},
		Add:    &AddCommand{globals: &globals, version: version},
		Rules:  &RulesCommand{globals: &globals, version: version},
		Toggle: &ToggleCommand{globals: &globals, version: version},
		Serve:  &ServeCommand{globals: &globals, version: version},
		Export: &ExportCommand{globals: &globals, version: version},
		Prune:  &PruneCommand{globals: &globals, version: version},
		Purge:  &PurgeCommand{globals: &globals, version: version},
	}

	parser.AddCommand("status", "Show daemon health and statistics", "Show daemon health, database statistics, and today's tracking summary.", cmds.Status)
	parser.AddCommand("report", "Print a daily report", "Print the daily time report: totals per category, focus score, and top domains.", cmds.Report)
	parser.AddCommand("add", "Record a visit manually", "Record a visit manually for time spent outside the browser extension.", cmds.Add)
	parser.AddCommand("rules", "Manage classification rules", "List, add, or remove custom domain classification rules.", cmds.Rules)
	parser.AddCommand("toggle", "Pause or resume tracking", "Pause or resume tracking. Uses the running daemon when available.", cmds.Toggle)
	parser.AddCommand("serve", "Start the focuswatch daemon", "Start the focuswatch daemon (local HTTP service).", cmds.Serve)
	parser.AddCommand("export", "Export all data as JSON", "Export all recorded visits, aggregates, rules, and settings as JSON.", cmds.Export)
	parser.AddCommand("prune", "Remove data past retention", "Remove visit data older than the retention period.", cmds.Prune)
	parser.AddCommand("purge", "Delete ALL recorded data", "Delete ALL recorded visits and aggregates. Destructive operation with safety prompt.", cmds.Purge)

	return parser, &globals, cmds
}

// Run is the main entry point for the focuswatch CLI using os.Args.
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
			fmt.Printf("focuswatch %s\n", version)
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
