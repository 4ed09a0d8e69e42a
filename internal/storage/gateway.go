package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/runnerr0/focuswatch/internal/classify"
)

// Key scheme. One key for the tracking state, one per date for the visit
// list, one per date for the computed aggregate.
const (
	stateKey     = "tracking_state"
	settingsKey  = "settings"
	rulesKey     = "custom_rules"
	entriesKeyPrefix    = "entries:"
	aggregatesKeyPrefix = "aggregates:"
)

// aggregateRetentionDays is how long computed aggregates are kept beyond the
// visit retention window.
const aggregateRetentionDays = 365

func entriesKey(date string) string    { return entriesKeyPrefix + date }
func aggregatesKey(date string) string { return aggregatesKeyPrefix + date }

// Gateway is the typed persistence layer over a Store. All reads go to the
// store fresh; nothing is cached across calls.
type Gateway struct {
	store Store
}

// NewGateway wraps a Store.
func NewGateway(store Store) *Gateway {
	return &Gateway{store: store}
}

// Store exposes the underlying key-value store.
func (g *Gateway) Store() Store { return g.store }

func (g *Gateway) getJSON(ctx context.Context, key string, out any) (bool, error) {
	data, err := g.store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("decode %q: %w", key, err)
	}
	return true, nil
}

func (g *Gateway) setJSON(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return g.store.Set(ctx, key, data)
}

// State loads the persisted tracking state, or the default when none exists.
func (g *Gateway) State(ctx context.Context) (State, error) {
	state := DefaultState()
	if _, err := g.getJSON(ctx, stateKey, &state); err != nil {
		return State{}, err
	}
	return state, nil
}

// SaveState durably writes the tracking state.
func (g *Gateway) SaveState(ctx context.Context, state State) error {
	return g.setJSON(ctx, stateKey, state)
}

// EntriesForDate returns all visits recorded for a YYYY-MM-DD date.
func (g *Gateway) EntriesForDate(ctx context.Context, date string) ([]Visit, error) {
	var entries []Visit
	if _, err := g.getJSON(ctx, entriesKey(date), &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []Visit{}
	}
	return entries, nil
}

// AppendEntry adds a finalized visit to its date's list.
func (g *Gateway) AppendEntry(ctx context.Context, visit Visit) error {
	entries, err := g.EntriesForDate(ctx, visit.Date)
	if err != nil {
		return err
	}
	return g.setJSON(ctx, entriesKey(visit.Date), append(entries, visit))
}

// AggregateForDate returns the stored aggregate for a date, if any.
func (g *Gateway) AggregateForDate(ctx context.Context, date string) (Daily, bool, error) {
	var agg Daily
	found, err := g.getJSON(ctx, aggregatesKey(date), &agg)
	return agg, found, err
}

// SaveAggregate stores a computed daily aggregate.
func (g *Gateway) SaveAggregate(ctx context.Context, agg Daily) error {
	return g.setJSON(ctx, aggregatesKey(agg.Date), agg)
}

// Settings loads the persisted settings merged over defaults.
func (g *Gateway) Settings(ctx context.Context) (Settings, error) {
	settings := DefaultSettings()
	if _, err := g.getJSON(ctx, settingsKey, &settings); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// SaveSettings durably writes the settings record.
func (g *Gateway) SaveSettings(ctx context.Context, settings Settings) error {
	return g.setJSON(ctx, settingsKey, settings)
}

// Rules returns the user-defined classification rules in insertion order.
func (g *Gateway) Rules(ctx context.Context) ([]classify.Rule, error) {
	var rules []classify.Rule
	if _, err := g.getJSON(ctx, rulesKey, &rules); err != nil {
		return nil, err
	}
	if rules == nil {
		rules = []classify.Rule{}
	}
	return rules, nil
}

// SaveRules replaces the user rule list.
func (g *Gateway) SaveRules(ctx context.Context, rules []classify.Rule) error {
	return g.setJSON(ctx, rulesKey, rules)
}

// Counts returns how many dates have stored entries and aggregates.
func (g *Gateway) Counts(ctx context.Context) (entryDays, aggregateDays int, err error) {
	keys, err := g.store.Keys(ctx)
	if err != nil {
		return 0, 0, err
	}
	for _, key := range keys {
		switch {
		case strings.HasPrefix(key, entriesKeyPrefix):
			entryDays++
		case strings.HasPrefix(key, aggregatesKeyPrefix):
			aggregateDays++
		}
	}
	return entryDays, aggregateDays, nil
}

// ExpiredKeys returns the entries and aggregates keys that CleanupOldData
// would remove, without removing anything.
func (g *Gateway) ExpiredKeys(ctx context.Context, retentionDays int, now time.Time) ([]string, error) {
	keys, err := g.store.Keys(ctx)
	if err != nil {
		return nil, err
	}

	var stale []string
	for _, key := range keys {
		var date string
		var maxAge int
		switch {
		case strings.HasPrefix(key, entriesKeyPrefix):
			date = strings.TrimPrefix(key, entriesKeyPrefix)
			maxAge = retentionDays
		case strings.HasPrefix(key, aggregatesKeyPrefix):
			date = strings.TrimPrefix(key, aggregatesKeyPrefix)
			maxAge = aggregateRetentionDays
		default:
			continue
		}

		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			continue // malformed key, leave it alone
		}
		ageDays := int(now.Sub(day).Hours() / 24)
		if ageDays > maxAge {
			stale = append(stale, key)
		}
	}
	return stale, nil
}

// CleanupOldData removes visit lists older than retentionDays and aggregates
// older than a year, returning the number of keys removed.
func (g *Gateway) CleanupOldData(ctx context.Context, retentionDays int, now time.Time) (int, error) {
	stale, err := g.ExpiredKeys(ctx, retentionDays, now)
	if err != nil {
		return 0, err
	}
	if len(stale) == 0 {
		return 0, nil
	}
	if err := g.store.Remove(ctx, stale...); err != nil {
		return 0, err
	}
	return len(stale), nil
}

// ExportAll returns a snapshot of all entries, aggregates, settings, and
// rules.
func (g *Gateway) ExportAll(ctx context.Context) (*Export, error) {
	keys, err := g.store.Keys(ctx)
	if err != nil {
		return nil, err
	}

	out := &Export{
		Entries:    map[string][]Visit{},
		Aggregates: map[string]Daily{},
		ExportedAt: time.Now().UTC(),
	}

	for _, key := range keys {
		switch {
		case strings.HasPrefix(key, entriesKeyPrefix):
			date := strings.TrimPrefix(key, entriesKeyPrefix)
			entries, err := g.EntriesForDate(ctx, date)
			if err != nil {
				return nil, err
			}
			out.Entries[date] = entries
		case strings.HasPrefix(key, aggregatesKeyPrefix):
			date := strings.TrimPrefix(key, aggregatesKeyPrefix)
			agg, found, err := g.AggregateForDate(ctx, date)
			if err != nil {
				return nil, err
			}
			if found {
				out.Aggregates[date] = agg
			}
		}
	}

	if out.Settings, err = g.Settings(ctx); err != nil {
		return nil, err
	}
	if out.Rules, err = g.Rules(ctx); err != nil {
		return nil, err
	}

	return out, nil
}

// DeleteAllData removes every entries and aggregates key. Settings, rules,
// and the tracking state survive. Returns the number of keys removed.
func (g *Gateway) DeleteAllData(ctx context.Context) (int, error) {
	keys, err := g.store.Keys(ctx)
	if err != nil {
		return 0, err
	}

	var doomed []string
	for _, key := range keys {
		if strings.HasPrefix(key, entriesKeyPrefix) || strings.HasPrefix(key, aggregatesKeyPrefix) {
			doomed = append(doomed, key)
		}
	}

	if len(doomed) == 0 {
		return 0, nil
	}
	if err := g.store.Remove(ctx, doomed...); err != nil {
		return 0, err
	}
	return len(doomed), nil
}
