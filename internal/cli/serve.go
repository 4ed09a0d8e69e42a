package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/runnerr0/focuswatch/internal/daemon"
)

// Execute implements the go-flags Commander interface for ServeCommand.
func (c *ServeCommand) Execute(args []string) error {
	cfg, cfgPath, err := loadConfig(c.globals)
	if err != nil {
		return err
	}
	if c.Port != 0 {
		cfg.Daemon.Port = c.Port
	}

	gw, _, err := openGateway(c.globals)
	if err != nil {
		return err
	}
	defer gw.Store().Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("focuswatch %s listening on %s:%d\n", c.version, cfg.Daemon.Host, cfg.Daemon.Port)
	return daemon.New(cfg, cfgPath, gw).Run(ctx)
}
