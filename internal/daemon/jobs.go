package daemon

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/runnerr0/focuswatch/internal/aggregate"
	"github.com/runnerr0/focuswatch/internal/config"
)

const (
	aggregateRefreshInterval = time.Hour
	cleanupInterval          = 24 * time.Hour
)

// runPeriodicJobs refreshes today's aggregate hourly and prunes expired
// data daily. Both jobs also fire once shortly after startup so a daemon
// that only runs for a few minutes a day still converges.
func (s *Server) runPeriodicJobs(ctx context.Context) {
	refresh := time.NewTicker(aggregateRefreshInterval)
	defer refresh.Stop()
	cleanup := time.NewTicker(cleanupInterval)
	defer cleanup.Stop()

	startup := time.NewTimer(time.Minute)
	defer startup.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-startup.C:
			s.refreshToday(ctx)
			s.pruneExpired(ctx)
		case <-refresh.C:
			s.refreshToday(ctx)
		case <-cleanup.C:
			s.pruneExpired(ctx)
		}
	}
}

func (s *Server) refreshToday(ctx context.Context) {
	date := aggregate.DateString(time.Now())
	if _, err := aggregate.Recompute(ctx, s.gw, date); err != nil {
		log.Printf("daemon: refresh aggregate for %s: %v", date, err)
	}
}

func (s *Server) pruneExpired(ctx context.Context) {
	settings, err := s.gw.Settings(ctx)
	if err != nil {
		log.Printf("daemon: load settings for cleanup: %v", err)
		return
	}
	removed, err := s.gw.CleanupOldData(ctx, settings.DataRetentionDays, time.Now())
	if err != nil {
		log.Printf("daemon: cleanup: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("daemon: cleanup removed %d expired keys", removed)
	}
}

// watchConfig reloads tracking settings when the config file changes on
// disk, so edits take effect without restarting the daemon. Only the
// tracking section is applied live; storage and listen address changes
// still require a restart.
func (s *Server) watchConfig(ctx context.Context) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("daemon: config watch unavailable: %v", err)
		return
	}
	defer watcher.Close()

	// Watch the directory rather than the file: editors replace the file
	// on save, which drops a watch on the path itself.
	dir := filepath.Dir(s.configPath)
	if err := watcher.Add(dir); err != nil {
		log.Printf("daemon: watch %s: %v", dir, err)
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if ev.Name != s.configPath {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			s.reloadConfig(ctx)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("daemon: config watch: %v", err)
		}
	}
}

func (s *Server) reloadConfig(ctx context.Context) {
	cfg, err := config.Load(s.configPath)
	if err != nil {
		log.Printf("daemon: reload config: %v", err)
		return
	}

	settings, err := s.gw.Settings(ctx)
	if err != nil {
		log.Printf("daemon: load settings: %v", err)
		return
	}
	settings.IdleTimeoutMinutes = cfg.Tracking.IdleTimeoutMinutes
	settings.DataRetentionDays = cfg.Tracking.RetentionDays
	settings.DailyGoalMinutes = cfg.Tracking.DailyGoalMinutes
	if err := s.gw.SaveSettings(ctx, settings); err != nil {
		log.Printf("daemon: save settings: %v", err)
		return
	}
	s.cfg.Tracking = cfg.Tracking
	log.Printf("daemon: config reloaded from %s", s.configPath)
}
