package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/runnerr0/focuswatch/internal/storage"
)

// Execute implements the go-flags Commander interface for PruneCommand.
func (c *PruneCommand) Execute(args []string) error {
	gw, _, err := openGateway(c.globals)
	if err != nil {
		return err
	}
	defer gw.Store().Close()

	return c.executeWithGateway(gw)
}

// executeWithGateway prunes against a provided gateway (for testing).
func (c *PruneCommand) executeWithGateway(gw *storage.Gateway) error {
	ctx := context.Background()

	retentionDays := c.Days
	if retentionDays == 0 {
		settings, err := gw.Settings(ctx)
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
		retentionDays = settings.DataRetentionDays
	}
	if retentionDays < 1 {
		return fmt.Errorf("retention must be at least 1 day")
	}

	now := time.Now()

	if c.DryRun {
		stale, err := gw.ExpiredKeys(ctx, retentionDays, now)
		if err != nil {
			return fmt.Errorf("scan for expired data: %w", err)
		}
		if c.globals != nil && c.globals.JSON {
			enc := json.NewEncoder(os.Stdout)
			return enc.Encode(map[string]any{"dry_run": true, "would_remove": len(stale)})
		}
		fmt.Printf("Would remove %d keys older than %d days (dry run).\n", len(stale), retentionDays)
		return nil
	}

	removed, err := gw.CleanupOldData(ctx, retentionDays, now)
	if err != nil {
		return fmt.Errorf("prune: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(map[string]any{"removed": removed, "retention_days": retentionDays})
	}
	fmt.Printf("Removed %d keys older than %d days.\n", removed, retentionDays)
	return nil
}
