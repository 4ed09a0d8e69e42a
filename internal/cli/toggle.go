package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/runnerr0/focuswatch/internal/config"
	"github.com/runnerr0/focuswatch/internal/storage"
)

// Execute implements the go-flags Commander interface for ToggleCommand.
func (c *ToggleCommand) Execute(args []string) error {
	gw, cfg, err := openGateway(c.globals)
	if err != nil {
		return err
	}
	defer gw.Store().Close()

	return c.executeWithGateway(gw, cfg)
}

// executeWithGateway toggles tracking. When the daemon is running the toggle
// goes through it, so an in-progress session ends cleanly; otherwise the
// stored settings and state are flipped directly.
func (c *ToggleCommand) executeWithGateway(gw *storage.Gateway, cfg *config.Config) error {
	ctx := context.Background()

	enabled, viaDaemon, err := c.toggle(ctx, gw, cfg)
	if err != nil {
		return err
	}

	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(map[string]any{"tracking": enabled, "via_daemon": viaDaemon})
	}

	if enabled {
		fmt.Println("Tracking resumed.")
	} else {
		fmt.Println("Tracking paused.")
	}
	return nil
}

func (c *ToggleCommand) toggle(ctx context.Context, gw *storage.Gateway, cfg *config.Config) (enabled, viaDaemon bool, err error) {
	if enabled, ok := c.toggleViaDaemon(cfg); ok {
		return enabled, true, nil
	}

	state, err := gw.State(ctx)
	if err != nil {
		return false, false, fmt.Errorf("load tracking state: %w", err)
	}
	state.Tracking = !state.Tracking
	state.Session = nil
	if err := gw.SaveState(ctx, state); err != nil {
		return false, false, fmt.Errorf("save tracking state: %w", err)
	}

	settings, err := gw.Settings(ctx)
	if err != nil {
		return false, false, fmt.Errorf("load settings: %w", err)
	}
	settings.TrackingEnabled = state.Tracking
	if err := gw.SaveSettings(ctx, settings); err != nil {
		return false, false, fmt.Errorf("save settings: %w", err)
	}

	return state.Tracking, false, nil
}

// toggleViaDaemon posts to the daemon's toggle endpoint. ok is false when
// the daemon is unreachable or answers with anything but success.
func (c *ToggleCommand) toggleViaDaemon(cfg *config.Config) (enabled, ok bool) {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Post(daemonURL(cfg, "/toggle"), "application/json", nil)
	if err != nil {
		return false, false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, false
	}

	var body struct {
		Tracking bool `json:"tracking"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, false
	}
	return body.Tracking, true
}
