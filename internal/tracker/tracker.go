// Package tracker owns the activity-session state machine: which domain the
// user is looking at right now, when a timed visit starts and ends, and how
// a session left behind by a killed process is recovered. Finalized visits
// flow through the storage gateway; classification happens at session start.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/runnerr0/focuswatch/internal/aggregate"
	"github.com/runnerr0/focuswatch/internal/classify"
	"github.com/runnerr0/focuswatch/internal/storage"
)

const (
	// minVisitSeconds is the shortest visit worth recording.
	minVisitSeconds = 5
	// staleSessionCap bounds the duration attributed to a session recovered
	// after an abrupt process kill.
	staleSessionCap = 4 * time.Hour
)

// ErrNotRestored is returned when an event arrives before Restore has run.
// Recovery must complete first or a stale session could be double-counted.
var ErrNotRestored = errors.New("tracker: Restore must run before events are dispatched")

// Live is the on-demand projection of the in-progress session.
type Live struct {
	Domain         string            `json:"domain"`
	Category       classify.Category `json:"category"`
	ElapsedSeconds int               `json:"elapsed_seconds"`
}

// Tracker is the session state machine. All transitions persist the new
// state through the gateway before returning; the in-memory copy is only a
// working value, never the durable truth.
type Tracker struct {
	mu      sync.Mutex
	gw      *storage.Gateway
	browser BrowserSource
	now     func() time.Time

	state    storage.State
	restored bool
}

// New builds a Tracker over the given gateway and browser source. Call
// Restore before dispatching any event.
func New(gw *storage.Gateway, browser BrowserSource) *Tracker {
	return &Tracker{
		gw:      gw,
		browser: browser,
		now:     time.Now,
		state:   storage.DefaultState(),
	}
}

// SetClock replaces the tracker's time source. Intended for tests.
func (t *Tracker) SetClock(now func() time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.now = now
}

// Restore loads the persisted state and finalizes any session left behind
// by a previous process. The elapsed time of such a session is capped at
// four hours; if the capped duration still meets the minimum it is recorded
// as a visit. Restore must complete before Dispatch handles anything.
func (t *Tracker) Restore(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	state, err := t.gw.State(ctx)
	if err != nil {
		return fmt.Errorf("load tracking state: %w", err)
	}
	t.state = state

	if s := t.state.Session; s != nil {
		elapsed := t.now().Sub(s.StartedAt)
		if elapsed > staleSessionCap {
			elapsed = staleSessionCap
		}
		seconds := int(elapsed.Seconds())

		if seconds >= minVisitSeconds {
			if err := t.recordVisit(ctx, s, seconds); err != nil {
				return err
			}
		}

		t.state.Session = nil
		if err := t.gw.SaveState(ctx, t.state); err != nil {
			return fmt.Errorf("persist recovered state: %w", err)
		}
	}

	t.restored = true
	return nil
}

// Dispatch routes a browser event through the state machine. Each event
// runs to completion under the tracker's lock, so transitions never
// interleave.
func (t *Tracker) Dispatch(ctx context.Context, ev Event) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.restored {
		return ErrNotRestored
	}

	switch e := ev.(type) {
	case TabActivated:
		return t.handleTabActivated(ctx, e)
	case TabUpdated:
		return t.handleTabUpdated(ctx, e)
	case WindowFocusChanged:
		return t.handleWindowFocusChanged(ctx, e)
	case IdleChanged:
		return t.handleIdleChanged(ctx, e)
	case ManualToggle:
		_, err := t.toggleLocked(ctx)
		return err
	default:
		return fmt.Errorf("unknown event %T", ev)
	}
}

// Toggle flips tracking on or off and returns the new enabled flag.
func (t *Tracker) Toggle(ctx context.Context) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.restored {
		return false, ErrNotRestored
	}
	return t.toggleLocked(ctx)
}

// Snapshot returns a read-only copy of the current state.
func (t *Tracker) Snapshot() storage.State {
	t.mu.Lock()
	defer t.mu.Unlock()

	state := t.state
	if state.Session != nil {
		s := *state.Session
		state.Session = &s
	}
	return state
}

// CurrentSession projects the live session for display. ok is false when no
// visit is in progress.
func (t *Tracker) CurrentSession() (Live, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.state.Session
	if s == nil {
		return Live{}, false
	}
	return Live{
		Domain:         s.Domain,
		Category:       s.Category,
		ElapsedSeconds: int(t.now().Sub(s.StartedAt).Seconds()),
	}, true
}

// ── Transitions ────────────────────────────────────────────────────────────

func (t *Tracker) handleTabActivated(ctx context.Context, ev TabActivated) error {
	if err := t.endCurrentSession(ctx); err != nil {
		return err
	}

	tab, err := t.browser.Tab(ctx, ev.TabID)
	if err != nil {
		// Tab closed mid-flight: stay in no-session.
		return t.persist(ctx)
	}

	t.startSession(ctx, ev.TabID, tab.URL, tab.Title)
	return t.persist(ctx)
}

func (t *Tracker) handleTabUpdated(ctx context.Context, ev TabUpdated) error {
	if !ev.Active {
		return nil
	}
	if ev.URL == "" && ev.Title == "" {
		return nil
	}

	if ev.URL != "" {
		if err := t.endCurrentSession(ctx); err != nil {
			return err
		}
		t.startSession(ctx, ev.TabID, ev.URL, ev.Title)
		return t.persist(ctx)
	}

	// Title-only change: update in place without ending the session.
	if s := t.state.Session; s != nil && s.TabID == ev.TabID {
		s.Title = ev.Title
		return t.persist(ctx)
	}
	return nil
}

func (t *Tracker) handleWindowFocusChanged(ctx context.Context, ev WindowFocusChanged) error {
	if ev.WindowID == WindowNone {
		if err := t.endCurrentSession(ctx); err != nil {
			return err
		}
		return t.persist(ctx)
	}

	if !t.state.Tracking || t.state.Idle {
		return nil
	}
	if err := t.endCurrentSession(ctx); err != nil {
		return err
	}
	if tab, err := t.browser.ActiveTab(ctx); err == nil {
		t.startSession(ctx, tab.ID, tab.URL, tab.Title)
	}
	return t.persist(ctx)
}

func (t *Tracker) handleIdleChanged(ctx context.Context, ev IdleChanged) error {
	switch ev.State {
	case IdleIdle, IdleLocked:
		t.state.Idle = true
		if err := t.endCurrentSession(ctx); err != nil {
			return err
		}
		return t.persist(ctx)

	case IdleActive:
		t.state.Idle = false
		if t.state.Tracking {
			if err := t.endCurrentSession(ctx); err != nil {
				return err
			}
			if tab, err := t.browser.ActiveTab(ctx); err == nil {
				t.startSession(ctx, tab.ID, tab.URL, tab.Title)
			}
		}
		return t.persist(ctx)

	default:
		return fmt.Errorf("unknown idle state %q", ev.State)
	}
}

func (t *Tracker) toggleLocked(ctx context.Context) (bool, error) {
	if t.state.Tracking {
		if err := t.endCurrentSession(ctx); err != nil {
			return false, err
		}
		t.state.Tracking = false
	} else {
		t.state.Tracking = true
		if tab, err := t.browser.ActiveTab(ctx); err == nil {
			t.startSession(ctx, tab.ID, tab.URL, tab.Title)
		}
	}

	if err := t.persist(ctx); err != nil {
		return false, err
	}

	// Keep the durable preference in step with the live flag.
	settings, err := t.gw.Settings(ctx)
	if err != nil {
		return false, err
	}
	settings.TrackingEnabled = t.state.Tracking
	if err := t.gw.SaveSettings(ctx, settings); err != nil {
		return false, err
	}

	return t.state.Tracking, nil
}

// startSession populates the session fields for a new visit. Internal pages
// clear any session instead; observed activity while tracking is off or the
// user is idle is dropped, not queued. The caller persists.
func (t *Tracker) startSession(ctx context.Context, tabID int, url, title string) {
	if classify.InternalURL(url) {
		t.state.Session = nil
		return
	}
	if !t.state.Tracking || t.state.Idle {
		return
	}

	domain := classify.ExtractDomain(url)
	rules, err := t.gw.Rules(ctx)
	if err != nil {
		// Without rules, defaults still apply.
		rules = nil
	}

	t.state.Session = &storage.Session{
		TabID:     tabID,
		Domain:    domain,
		URL:       url,
		Title:     title,
		Category:  classify.CategorizeURL(url, rules),
		StartedAt: t.now(),
	}
}

// endCurrentSession finalizes the in-progress visit, recording it when it
// meets the minimum duration. The session fields are cleared regardless;
// the caller persists.
func (t *Tracker) endCurrentSession(ctx context.Context) error {
	s := t.state.Session
	if s == nil {
		return nil
	}

	seconds := int(t.now().Sub(s.StartedAt).Seconds())
	if seconds >= minVisitSeconds {
		if err := t.recordVisit(ctx, s, seconds); err != nil {
			return err
		}
	}

	t.state.Session = nil
	return nil
}

// recordVisit materializes a visit from a session and refreshes its date's
// aggregate. The date comes from the current calendar day, not the session
// start.
func (t *Tracker) recordVisit(ctx context.Context, s *storage.Session, seconds int) error {
	date := aggregate.DateString(t.now())

	visit := storage.Visit{
		ID:              uuid.NewString(),
		Domain:          s.Domain,
		URL:             s.URL,
		Title:           s.Title,
		Category:        s.Category,
		StartedAt:       s.StartedAt,
		DurationSeconds: seconds,
		Date:            date,
	}

	if err := t.gw.AppendEntry(ctx, visit); err != nil {
		return fmt.Errorf("store visit: %w", err)
	}
	if _, err := aggregate.Recompute(ctx, t.gw, date); err != nil {
		return err
	}
	return nil
}

func (t *Tracker) persist(ctx context.Context) error {
	if err := t.gw.SaveState(ctx, t.state); err != nil {
		return fmt.Errorf("persist tracking state: %w", err)
	}
	return nil
}
