// Package daemon runs the local HTTP service the browser extension feeds.
// It receives tab, focus, and idle events, routes them through the session
// tracker, and exposes read-only state and aggregates to local UIs. The
// server binds to loopback only; visit URLs and titles never leave the
// device.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/runnerr0/focuswatch/internal/aggregate"
	"github.com/runnerr0/focuswatch/internal/classify"
	"github.com/runnerr0/focuswatch/internal/config"
	"github.com/runnerr0/focuswatch/internal/storage"
	"github.com/runnerr0/focuswatch/internal/tracker"
)

// Server is the focuswatch daemon.
type Server struct {
	cfg        *config.Config
	configPath string

	gw      *storage.Gateway
	tabs    *TabRegistry
	tracker *tracker.Tracker

	engine *gin.Engine
	http   *http.Server
}

// New assembles a daemon over the given gateway. configPath may be empty,
// in which case config hot-reload is disabled.
func New(cfg *config.Config, configPath string, gw *storage.Gateway) *Server {
	tabs := NewTabRegistry()

	s := &Server{
		cfg:        cfg,
		configPath: configPath,
		gw:         gw,
		tabs:       tabs,
		tracker:    tracker.New(gw, tabs),
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/status", s.handleStatus)
	engine.GET("/state", s.handleState)
	engine.GET("/session", s.handleSession)
	engine.POST("/toggle", s.handleToggle)
	engine.POST("/events", s.handleEvent)
	engine.POST("/tabs", s.handleTabSync)
	engine.GET("/aggregates/:date", s.handleAggregate)
	engine.GET("/rules", s.handleListRules)
	engine.PUT("/rules", s.handleReplaceRules)

	s.engine = engine
	return s
}

// Run recovers any dangling session, starts the background jobs, and serves
// until ctx is cancelled. Recovery completes before the listener accepts
// anything, so no event can race a stale session.
func (s *Server) Run(ctx context.Context) error {
	if err := s.tracker.Restore(ctx); err != nil {
		return fmt.Errorf("recover tracking state: %w", err)
	}

	jobs, stopJobs := context.WithCancel(ctx)
	defer stopJobs()
	go s.runPeriodicJobs(jobs)
	if s.configPath != "" {
		go s.watchConfig(jobs)
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Daemon.Host, s.cfg.Daemon.Port)
	s.http = &http.Server{Addr: addr, Handler: s.engine}

	errc := make(chan error, 1)
	go func() {
		errc <- s.http.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdown)
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// ── Request/response shapes ────────────────────────────────────────────────

// eventRequest is the tagged event envelope the extension posts.
type eventRequest struct {
	Type string `json:"type"` // tab_activated | tab_updated | tab_closed | window_focus | idle

	TabID    int    `json:"tab_id,omitempty"`
	URL      string `json:"url,omitempty"`
	Title    string `json:"title,omitempty"`
	Active   bool   `json:"active,omitempty"`
	WindowID *int   `json:"window_id,omitempty"`
	State    string `json:"idle_state,omitempty"`
}

type tabSyncRequest struct {
	Tabs     []tabSnapshot `json:"tabs"`
	ActiveID int           `json:"active_id"`
}

type tabSnapshot struct {
	ID    int    `json:"id"`
	URL   string `json:"url"`
	Title string `json:"title"`
}

type ruleRequest struct {
	ID       string `json:"id,omitempty"`
	Pattern  string `json:"pattern"`
	Match    string `json:"match_type"`
	Category string `json:"category"`
}

func badRequest(c *gin.Context, code, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error": gin.H{"code": code, "message": message},
	})
}

func internalError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": gin.H{"code": "internal_error", "message": err.Error()},
	})
}

// ── Handlers ───────────────────────────────────────────────────────────────

func (s *Server) handleStatus(c *gin.Context) {
	bytes, err := s.gw.Store().BytesInUse(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"bytes_in_use": bytes,
	})
}

func (s *Server) handleState(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"state": s.tracker.Snapshot()})
}

func (s *Server) handleSession(c *gin.Context) {
	live, ok := s.tracker.CurrentSession()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"session": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": live})
}

func (s *Server) handleToggle(c *gin.Context) {
	enabled, err := s.tracker.Toggle(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tracking": enabled})
}

func (s *Server) handleEvent(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_json", "invalid request body")
		return
	}

	ev, err := s.toEvent(req)
	if err != nil {
		badRequest(c, "invalid_event", err.Error())
		return
	}
	if ev == nil {
		// tab_closed only updates the registry.
		c.JSON(http.StatusOK, gin.H{"accepted": true})
		return
	}

	if err := s.tracker.Dispatch(c.Request.Context(), ev); err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accepted": true})
}

// toEvent maps an envelope to a tracker event, keeping the tab registry in
// step as a side effect.
func (s *Server) toEvent(req eventRequest) (tracker.Event, error) {
	switch req.Type {
	case "tab_activated":
		if req.URL != "" {
			s.tabs.Upsert(tracker.TabInfo{ID: req.TabID, URL: req.URL, Title: req.Title})
		}
		s.tabs.SetActive(req.TabID)
		return tracker.TabActivated{TabID: req.TabID}, nil

	case "tab_updated":
		title := req.Title
		if req.URL != "" || req.Title != "" {
			tab, err := s.tabs.Tab(context.Background(), req.TabID)
			if err != nil {
				tab = tracker.TabInfo{ID: req.TabID}
			}
			if req.URL != "" {
				tab.URL = req.URL
			}
			if req.Title != "" {
				tab.Title = req.Title
			}
			s.tabs.Upsert(tab)

			// A navigation report without a title keeps the tab's current
			// title rather than starting the session nameless.
			if req.URL != "" && title == "" {
				title = tab.Title
			}
		}
		return tracker.TabUpdated{
			TabID: req.TabID, URL: req.URL, Title: title, Active: req.Active,
		}, nil

	case "tab_closed":
		s.tabs.Close(req.TabID)
		return nil, nil

	case "window_focus":
		if req.WindowID == nil {
			return nil, fmt.Errorf("window_focus requires window_id")
		}
		return tracker.WindowFocusChanged{WindowID: *req.WindowID}, nil

	case "idle":
		switch tracker.IdleState(req.State) {
		case tracker.IdleActive, tracker.IdleIdle, tracker.IdleLocked:
			return tracker.IdleChanged{State: tracker.IdleState(req.State)}, nil
		}
		return nil, fmt.Errorf("unknown idle_state %q", req.State)

	default:
		return nil, fmt.Errorf("unknown event type %q", req.Type)
	}
}

func (s *Server) handleTabSync(c *gin.Context) {
	var req tabSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_json", "invalid request body")
		return
	}

	for _, tab := range req.Tabs {
		s.tabs.Upsert(tracker.TabInfo{ID: tab.ID, URL: tab.URL, Title: tab.Title})
	}
	if req.ActiveID != 0 {
		s.tabs.SetActive(req.ActiveID)
	}
	c.JSON(http.StatusOK, gin.H{"accepted": true})
}

func (s *Server) handleAggregate(c *gin.Context) {
	date := c.Param("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		badRequest(c, "invalid_date", "date must be YYYY-MM-DD")
		return
	}

	agg, err := aggregate.Recompute(c.Request.Context(), s.gw, date)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"aggregate": agg})
}

func (s *Server) handleListRules(c *gin.Context) {
	rules, err := s.gw.Rules(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

func (s *Server) handleReplaceRules(c *gin.Context) {
	var reqs []ruleRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		badRequest(c, "invalid_json", "invalid request body")
		return
	}

	rules := make([]classify.Rule, 0, len(reqs))
	for i, r := range reqs {
		category, err := classify.ParseCategory(r.Category)
		if err != nil {
			badRequest(c, "invalid_category", fmt.Sprintf("rule %d: %v", i, err))
			return
		}
		match, err := classify.ParseMatchType(r.Match)
		if err != nil {
			badRequest(c, "invalid_match_type", fmt.Sprintf("rule %d: %v", i, err))
			return
		}
		if r.Pattern == "" {
			badRequest(c, "invalid_pattern", fmt.Sprintf("rule %d: pattern is required", i))
			return
		}

		id := r.ID
		if id == "" {
			id = uuid.NewString()
		}
		rules = append(rules, classify.Rule{
			ID:        id,
			Pattern:   r.Pattern,
			Match:     match,
			Category:  category,
			CreatedAt: time.Now(),
		})
	}

	if err := s.gw.SaveRules(c.Request.Context(), rules); err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules})
}
