package cli

import "github.com/runnerr0/focuswatch/internal/storage"

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable verbose output"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// StatusCommand — show daemon health, database stats, and today's summary.
type StatusCommand struct {
	globals *GlobalFlags
	version string
}

// ReportCommand — print the daily report for a date.
type ReportCommand struct {
	Date string `long:"date" description:"Date to report on (YYYY-MM-DD, default today)"`

	globals *GlobalFlags
	version string
}

// AddCommand — record a visit manually.
type AddCommand struct {
	URL      string `long:"url" description:"URL visited (required)"`
	Title    string `long:"title" description:"Page title"`
	Duration string `long:"duration" description:"Time spent (e.g., 25m, 90s, 1h)" default:"25m"`
	Date     string `long:"date" description:"Date of the visit (YYYY-MM-DD, default today)"`
	Category string `long:"category" description:"Override category: productive | distraction | neutral"`

	globals *GlobalFlags
	version string
}

// RulesCommand — list, add, or remove classification rules.
type RulesCommand struct {
	Add      string `long:"add" description:"Add a rule for this pattern (domain, *.domain, or URL substring)"`
	Match    string `long:"match" description:"Match type for --add: exact | wildcard | path" default:"exact"`
	Category string `long:"category" description:"Category for --add: productive | distraction | neutral"`
	Remove   string `long:"remove" description:"Remove the rule with this ID"`

	globals *GlobalFlags
	version string
}

// ToggleCommand — pause or resume tracking.
type ToggleCommand struct {
	globals *GlobalFlags
	version string
}

// ServeCommand — start the focuswatch daemon (local HTTP service).
type ServeCommand struct {
	Port int `long:"port" description:"Override daemon port"`

	globals *GlobalFlags
	version string
}

// ExportCommand — write all stored data as JSON.
type ExportCommand struct {
	Output string `long:"output" description:"Write to file instead of stdout"`

	globals *GlobalFlags
	version string
}

// PruneCommand — remove data past the retention period.
type PruneCommand struct {
	Days   int  `long:"days" description:"Override retention period in days"`
	DryRun bool `long:"dry-run" description:"Show what would be removed without deleting"`

	globals *GlobalFlags
	version string
}

// PurgeCommand — delete all recorded visits and aggregates.
type PurgeCommand struct {
	All   bool `long:"all" description:"Required flag to confirm purge intent"`
	Force bool `long:"force" description:"Skip safety confirmation prompt"`

	globals *GlobalFlags
	version string
	gw      *storage.Gateway // injectable for testing; nil means open default store
}
