package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/runnerr0/focuswatch/internal/aggregate"
	"github.com/runnerr0/focuswatch/internal/classify"
	"github.com/runnerr0/focuswatch/internal/storage"
)

// Execute implements the go-flags Commander interface for AddCommand.
func (c *AddCommand) Execute(args []string) error {
	gw, _, err := openGateway(c.globals)
	if err != nil {
		return err
	}
	defer gw.Store().Close()

	return c.executeWithGateway(gw)
}

// executeWithGateway records the visit against a provided gateway (for testing).
func (c *AddCommand) executeWithGateway(gw *storage.Gateway) error {
	ctx := context.Background()

	if c.URL == "" {
		return fmt.Errorf("--url is required")
	}
	if classify.InternalURL(c.URL) {
		return fmt.Errorf("browser-internal URLs are not tracked")
	}

	domain := classify.ExtractDomain(c.URL)
	if domain == "" {
		return fmt.Errorf("could not extract a domain from %q", c.URL)
	}

	dur, err := parseDuration(c.Duration)
	if err != nil {
		return fmt.Errorf("invalid --duration: %w", err)
	}
	seconds := int(dur.Seconds())
	if seconds <= 0 {
		return fmt.Errorf("--duration must be positive")
	}

	date, err := resolveDate(c.Date)
	if err != nil {
		return err
	}

	var category classify.Category
	if c.Category != "" {
		category, err = classify.ParseCategory(c.Category)
		if err != nil {
			return err
		}
	} else {
		rules, err := gw.Rules(ctx)
		if err != nil {
			return fmt.Errorf("load rules: %w", err)
		}
		category = classify.CategorizeURL(c.URL, rules)
	}

	visit := storage.Visit{
		ID:              uuid.NewString(),
		Domain:          domain,
		URL:             c.URL,
		Title:           c.Title,
		Category:        category,
		StartedAt:       time.Now().Add(-dur),
		DurationSeconds: seconds,
		Date:            date,
	}

	if err := gw.AppendEntry(ctx, visit); err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	if _, err := aggregate.Recompute(ctx, gw, date); err != nil {
		return fmt.Errorf("refresh aggregate: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(visit)
	}

	fmt.Printf("Recorded %s on %s (%s, %s)\n",
		aggregate.FormatDuration(seconds), domain, category, date)
	return nil
}
