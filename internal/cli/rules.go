package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/runnerr0/focuswatch/internal/classify"
	"github.com/runnerr0/focuswatch/internal/storage"
)

// Execute implements the go-flags Commander interface for RulesCommand.
func (c *RulesCommand) Execute(args []string) error {
	gw, _, err := openGateway(c.globals)
	if err != nil {
		return err
	}
	defer gw.Store().Close()

	return c.executeWithGateway(gw)
}

// executeWithGateway runs the rules operation against a provided gateway
// (for testing).
func (c *RulesCommand) executeWithGateway(gw *storage.Gateway) error {
	ctx := context.Background()

	if c.Add != "" && c.Remove != "" {
		return fmt.Errorf("--add and --remove are mutually exclusive")
	}

	switch {
	case c.Add != "":
		return c.addRule(ctx, gw)
	case c.Remove != "":
		return c.removeRule(ctx, gw)
	default:
		return c.listRules(ctx, gw)
	}
}

func (c *RulesCommand) addRule(ctx context.Context, gw *storage.Gateway) error {
	if c.Category == "" {
		return fmt.Errorf("--category is required with --add")
	}
	category, err := classify.ParseCategory(c.Category)
	if err != nil {
		return err
	}
	match, err := classify.ParseMatchType(c.Match)
	if err != nil {
		return err
	}

	rules, err := gw.Rules(ctx)
	if err != nil {
		return fmt.Errorf("load rules: %w", err)
	}

	rule := classify.Rule{
		ID:        uuid.NewString(),
		Pattern:   c.Add,
		Match:     match,
		Category:  category,
		CreatedAt: time.Now(),
	}
	rules = append(rules, rule)

	if err := gw.SaveRules(ctx, rules); err != nil {
		return fmt.Errorf("save rules: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(rule)
	}
	fmt.Printf("Added rule %s: %s (%s) -> %s\n", rule.ID, rule.Pattern, rule.Match, rule.Category)
	return nil
}

func (c *RulesCommand) removeRule(ctx context.Context, gw *storage.Gateway) error {
	rules, err := gw.Rules(ctx)
	if err != nil {
		return fmt.Errorf("load rules: %w", err)
	}

	kept := rules[:0]
	removed := false
	for _, r := range rules {
		if r.ID == c.Remove {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	if !removed {
		return fmt.Errorf("no rule with ID %q", c.Remove)
	}

	if err := gw.SaveRules(ctx, kept); err != nil {
		return fmt.Errorf("save rules: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(map[string]any{"removed": c.Remove})
	}
	fmt.Printf("Removed rule %s\n", c.Remove)
	return nil
}

func (c *RulesCommand) listRules(ctx context.Context, gw *storage.Gateway) error {
	rules, err := gw.Rules(ctx)
	if err != nil {
		return fmt.Errorf("load rules: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rules)
	}

	if len(rules) == 0 {
		fmt.Println("No custom rules. Built-in defaults apply.")
		return nil
	}

	fmt.Println("Custom Rules:")
	for _, r := range rules {
		fmt.Printf("  %-36s %-30s %-8s %s\n", r.ID, r.Pattern, r.Match, r.Category)
	}
	return nil
}
