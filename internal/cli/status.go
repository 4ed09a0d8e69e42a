package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/runnerr0/focuswatch/internal/aggregate"
	"github.com/runnerr0/focuswatch/internal/config"
	"github.com/runnerr0/focuswatch/internal/storage"
)

// statusJSON is the JSON output structure for the status command.
type statusJSON struct {
	Version           string `json:"version"`
	DatabasePath      string `json:"database_path"`
	DatabaseSizeBytes int64  `json:"database_size_bytes"`
	TrackingEnabled   bool   `json:"tracking_enabled"`
	RetentionDays     int    `json:"retention_days"`
	EntryDays         int    `json:"entry_days"`
	AggregateDays     int    `json:"aggregate_days"`
	DaemonRunning     bool   `json:"daemon_running"`
	TodaySeconds      int    `json:"today_seconds"`
	TodayFocusScore   int    `json:"today_focus_score"`
}

// Execute implements the go-flags Commander interface for StatusCommand.
func (c *StatusCommand) Execute(args []string) error {
	gw, cfg, err := openGateway(c.globals)
	if err != nil {
		return err
	}
	defer gw.Store().Close()

	return c.executeWithGateway(gw, cfg)
}

// executeWithGateway runs status against a provided gateway (for testing).
func (c *StatusCommand) executeWithGateway(gw *storage.Gateway, cfg *config.Config) error {
	ctx := context.Background()

	settings, err := gw.Settings(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	dbSize, err := gw.Store().BytesInUse(ctx)
	if err != nil {
		return fmt.Errorf("measure database: %w", err)
	}

	entryDays, aggregateDays, err := gw.Counts(ctx)
	if err != nil {
		return fmt.Errorf("count stored days: %w", err)
	}

	today := aggregate.DateString(time.Now())
	agg, found, err := gw.AggregateForDate(ctx, today)
	if err != nil {
		return fmt.Errorf("load today's aggregate: %w", err)
	}

	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return err
	}
	daemonRunning := checkDaemon(cfg)

	if c.globals != nil && c.globals.JSON {
		out := statusJSON{
			Version:           c.version,
			DatabasePath:      dbPath,
			DatabaseSizeBytes: dbSize,
			TrackingEnabled:   settings.TrackingEnabled,
			RetentionDays:     settings.DataRetentionDays,
			EntryDays:         entryDays,
			AggregateDays:     aggregateDays,
			DaemonRunning:     daemonRunning,
		}
		if found {
			out.TodaySeconds = agg.TotalSeconds
			out.TodayFocusScore = agg.FocusScore
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Println("FocusWatch Status")
	fmt.Println("=================")
	fmt.Printf("Version:       %s\n", c.version)
	fmt.Printf("Database:      %s (%s)\n", dbPath, formatBytes(dbSize))
	if settings.TrackingEnabled {
		fmt.Println("Tracking:      enabled")
	} else {
		fmt.Println("Tracking:      paused")
	}
	fmt.Printf("Retention:     %d days\n", settings.DataRetentionDays)
	fmt.Printf("Stored:        %d days of entries, %d aggregates\n", entryDays, aggregateDays)
	if daemonRunning {
		fmt.Println("Daemon:        running")
	} else {
		fmt.Println("Daemon:        not running")
	}
	if found {
		fmt.Println()
		fmt.Printf("Today:         %s tracked, focus score %d\n",
			aggregate.FormatDuration(agg.TotalSeconds), agg.FocusScore)
	}

	return nil
}

// checkDaemon attempts an HTTP GET to the configured daemon endpoint.
// Returns true if the daemon responds within 1 second.
func checkDaemon(cfg *config.Config) bool {
	client := &http.Client{Timeout: 1 * time.Second}
	resp, err := client.Get(daemonURL(cfg, "/status"))
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
