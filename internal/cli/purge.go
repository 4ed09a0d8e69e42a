package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/runnerr0/focuswatch/internal/storage"
)

// setGateway allows tests to inject a gateway.
func (c *PurgeCommand) setGateway(gw *storage.Gateway) {
	c.gw = gw
}

// Execute implements the go-flags Commander interface for PurgeCommand.
func (c *PurgeCommand) Execute(args []string) error {
	if !c.All {
		return fmt.Errorf("purge requires --all flag for safety")
	}

	// Confirmation prompt unless --force
	if !c.Force {
		fmt.Println("⚠ WARNING: This will permanently delete ALL recorded browsing time.")
		fmt.Println("  - All recorded visits")
		fmt.Println("  - All daily aggregates")
		fmt.Println()
		fmt.Println("Settings and custom rules are kept. This action cannot be undone.")
		fmt.Println()
		fmt.Print(`Type "PURGE" to confirm: `)

		scanner := bufio.NewScanner(os.Stdin)
		if !scanner.Scan() {
			return fmt.Errorf("aborted: no input received")
		}
		input := strings.TrimSpace(scanner.Text())
		if input != "PURGE" {
			return fmt.Errorf("aborted: confirmation text did not match")
		}
	}

	// Open or use injected gateway
	gw := c.gw
	if gw == nil {
		opened, _, err := openGateway(c.globals)
		if err != nil {
			return err
		}
		defer opened.Store().Close()
		gw = opened
	}

	ctx := context.Background()
	removed, err := gw.DeleteAllData(ctx)
	if err != nil {
		return fmt.Errorf("purge failed: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		out := map[string]interface{}{
			"purged":  true,
			"removed": removed,
		}
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(out)
	}

	fmt.Printf("Purged %d keys. Recorded time is empty; settings and rules are kept.\n", removed)
	return nil
}
