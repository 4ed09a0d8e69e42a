package daemon

import (
	"context"
	"sync"

	"github.com/runnerr0/focuswatch/internal/tracker"
)

// TabRegistry is the daemon's mirror of the browser's open tabs, kept up to
// date by extension reports. It backs the tracker's tab lookups, so a tab
// the extension never reported (or already closed) behaves exactly like a
// closed tab.
type TabRegistry struct {
	mu     sync.RWMutex
	tabs   map[int]tracker.TabInfo
	active int
}

// NewTabRegistry returns an empty registry.
func NewTabRegistry() *TabRegistry {
	return &TabRegistry{tabs: make(map[int]tracker.TabInfo)}
}

// Upsert records or refreshes a tab snapshot.
func (r *TabRegistry) Upsert(tab tracker.TabInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tabs[tab.ID] = tab
}

// Close forgets a tab. If it was the active tab there is no active tab
// afterwards.
func (r *TabRegistry) Close(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tabs, id)
	if r.active == id {
		r.active = 0
	}
}

// SetActive marks the focused tab.
func (r *TabRegistry) SetActive(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = id
}

// Tab implements tracker.BrowserSource.
func (r *TabRegistry) Tab(_ context.Context, id int) (tracker.TabInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tab, ok := r.tabs[id]
	if !ok {
		return tracker.TabInfo{}, tracker.ErrNoTab
	}
	return tab, nil
}

// ActiveTab implements tracker.BrowserSource.
func (r *TabRegistry) ActiveTab(_ context.Context) (tracker.TabInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.active == 0 {
		return tracker.TabInfo{}, tracker.ErrNoTab
	}
	tab, ok := r.tabs[r.active]
	if !ok {
		return tracker.TabInfo{}, tracker.ErrNoTab
	}
	return tab, nil
}
