package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/runnerr0/focuswatch/internal/aggregate"
	"github.com/runnerr0/focuswatch/internal/storage"
)

// Execute implements the go-flags Commander interface for ReportCommand.
func (c *ReportCommand) Execute(args []string) error {
	gw, _, err := openGateway(c.globals)
	if err != nil {
		return err
	}
	defer gw.Store().Close()

	return c.executeWithGateway(gw)
}

// executeWithGateway runs the report against a provided gateway (for testing).
func (c *ReportCommand) executeWithGateway(gw *storage.Gateway) error {
	ctx := context.Background()

	date, err := resolveDate(c.Date)
	if err != nil {
		return err
	}

	// Recompute from the raw entries so the report reflects visits recorded
	// since the last aggregation pass.
	agg, err := aggregate.Recompute(ctx, gw, date)
	if err != nil {
		return fmt.Errorf("aggregate %s: %w", date, err)
	}

	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(agg)
	}

	fmt.Printf("Report for %s\n", agg.Date)
	fmt.Println("=====================")
	fmt.Printf("Total:         %s\n", aggregate.FormatDuration(agg.TotalSeconds))
	fmt.Printf("Productive:    %s\n", aggregate.FormatDuration(agg.ProductiveSeconds))
	fmt.Printf("Distraction:   %s\n", aggregate.FormatDuration(agg.DistractionSeconds))
	fmt.Printf("Neutral:       %s\n", aggregate.FormatDuration(agg.NeutralSeconds))
	if agg.UncategorizedSeconds > 0 {
		fmt.Printf("Uncategorized: %s\n", aggregate.FormatDuration(agg.UncategorizedSeconds))
	}
	fmt.Printf("Focus score:   %d\n", agg.FocusScore)

	if len(agg.TopDomains) > 0 {
		fmt.Println()
		fmt.Println("Top Domains:")
		for _, d := range agg.TopDomains {
			fmt.Printf("  %-30s %-10s %s\n",
				d.Domain, aggregate.FormatDuration(d.Seconds), d.Category)
		}
	}

	return nil
}
