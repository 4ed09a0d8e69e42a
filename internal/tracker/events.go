package tracker

import (
	"context"
	"errors"
)

// WindowNone is the window ID reported when no browser window has focus.
const WindowNone = -1

// IdleState is the user's reported activity state.
type IdleState string

const (
	IdleActive IdleState = "active"
	IdleIdle   IdleState = "idle"
	IdleLocked IdleState = "locked"
)

// Event is a tagged browser notification delivered to the tracker. The
// variants mirror the host browser's tab, window, and idle callbacks plus
// the manual tracking toggle.
type Event interface {
	isEvent()
}

// TabActivated fires when the user switches to a different tab.
type TabActivated struct {
	TabID int
}

// TabUpdated fires when a tab's URL or title changes. Empty URL or Title
// means that field did not change. Active reports whether the tab is the
// currently focused one.
type TabUpdated struct {
	TabID  int
	URL    string
	Title  string
	Active bool
}

// WindowFocusChanged fires when browser window focus moves; WindowID is
// WindowNone when every window lost focus.
type WindowFocusChanged struct {
	WindowID int
}

// IdleChanged fires when the user goes idle, locks the screen, or returns.
type IdleChanged struct {
	State IdleState
}

// ManualToggle flips tracking on or off.
type ManualToggle struct{}

func (TabActivated) isEvent()       {}
func (TabUpdated) isEvent()         {}
func (WindowFocusChanged) isEvent() {}
func (IdleChanged) isEvent()        {}
func (ManualToggle) isEvent()       {}

// ErrNoTab is returned by a BrowserSource when the referenced tab no longer
// exists. The tracker swallows it and treats the operation as a no-op.
var ErrNoTab = errors.New("tab not found")

// TabInfo is the tracker's view of a browser tab.
type TabInfo struct {
	ID    int
	URL   string
	Title string
}

// BrowserSource answers tab lookups. In production it is backed by the
// browser extension feeding the daemon; tests supply a fake.
type BrowserSource interface {
	// Tab returns a tab by ID, or ErrNoTab if it was closed.
	Tab(ctx context.Context, id int) (TabInfo, error)
	// ActiveTab returns the focused tab of the current window, or ErrNoTab
	// when there is none.
	ActiveTab(ctx context.Context) (TabInfo, error)
}
