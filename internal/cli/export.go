package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/runnerr0/focuswatch/internal/storage"
)

// Execute implements the go-flags Commander interface for ExportCommand.
func (c *ExportCommand) Execute(args []string) error {
	gw, _, err := openGateway(c.globals)
	if err != nil {
		return err
	}
	defer gw.Store().Close()

	return c.executeWithGateway(gw)
}

// executeWithGateway writes the export from a provided gateway (for testing).
func (c *ExportCommand) executeWithGateway(gw *storage.Gateway) error {
	ctx := context.Background()

	export, err := gw.ExportAll(ctx)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	var out io.Writer = os.Stdout
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return fmt.Errorf("create %s: %w", c.Output, err)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(export); err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	if c.Output != "" {
		fmt.Printf("Exported %d days of entries to %s\n", len(export.Entries), c.Output)
	}
	return nil
}
