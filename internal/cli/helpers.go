package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/runnerr0/focuswatch/internal/aggregate"
	"github.com/runnerr0/focuswatch/internal/config"
	"github.com/runnerr0/focuswatch/internal/storage"
)

// loadConfig resolves the active configuration: the --config path when
// given, otherwise the default location (created on first use).
func loadConfig(globals *GlobalFlags) (*config.Config, string, error) {
	if globals != nil && globals.Config != "" {
		cfg, err := config.LoadOrCreateAt(globals.Config)
		return cfg, globals.Config, err
	}
	path, err := config.ExpandPath(config.DefaultConfigPath)
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.LoadOrCreate()
	return cfg, path, err
}

// openGateway opens the configured database, runs migrations, and wraps it
// in a gateway. The caller closes the store via gw.Store().Close().
func openGateway(globals *GlobalFlags) (*storage.Gateway, *config.Config, error) {
	cfg, _, err := loadConfig(globals)
	if err != nil {
		return nil, nil, err
	}

	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return nil, nil, fmt.Errorf("resolve database path: %w", err)
	}

	store, err := storage.Open(dbPath)
	if err != nil {
		return nil, nil, err
	}
	return storage.NewGateway(store), cfg, nil
}

// daemonURL builds a URL for the configured daemon address.
func daemonURL(cfg *config.Config, path string) string {
	return fmt.Sprintf("http://%s:%d%s", cfg.Daemon.Host, cfg.Daemon.Port, path)
}

// resolveDate returns the given YYYY-MM-DD date, or today when empty.
func resolveDate(date string) (string, error) {
	if date == "" {
		return aggregate.DateString(time.Now()), nil
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return "", fmt.Errorf("invalid date %q: use YYYY-MM-DD", date)
	}
	return date, nil
}

// parseDuration parses a human-friendly duration string like "25m", "90s", "1h".
func parseDuration(s string) (time.Duration, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}

	suffix := s[len(s)-1]
	numStr := s[:len(s)-1]

	n, err := strconv.Atoi(numStr)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}

	switch suffix {
	case 'h':
		return time.Duration(n) * time.Hour, nil
	case 'm':
		return time.Duration(n) * time.Minute, nil
	case 's':
		return time.Duration(n) * time.Second, nil
	default:
		return 0, fmt.Errorf("unknown duration suffix %q in %q (use h, m, or s)", string(suffix), s)
	}
}

// formatBytes formats a byte count into a human-readable string.
func formatBytes(b int64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/float64(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/float64(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
