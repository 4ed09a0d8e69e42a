package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/focuswatch/internal/classify"
)

func testGateway(t *testing.T) *Gateway {
	t.Helper()
	return NewGateway(NewMemStore())
}

func TestGateway_StateDefaultsWhenEmpty(t *testing.T) {
	gw := testGateway(t)

	state, err := gw.State(context.Background())
	require.NoError(t, err)
	assert.True(t, state.Tracking)
	assert.False(t, state.Idle)
	assert.Nil(t, state.Session)
}

func TestGateway_StateRoundTrip(t *testing.T) {
	gw := testGateway(t)
	ctx := context.Background()

	started := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	in := State{
		Tracking: true,
		Idle:     true,
		Session: &Session{
			TabID: 3, Domain: "github.com", URL: "https://github.com",
			Title: "GitHub", Category: classify.Productive, StartedAt: started,
		},
	}
	require.NoError(t, gw.SaveState(ctx, in))

	out, err := gw.State(ctx)
	require.NoError(t, err)
	assert.True(t, out.Idle)
	require.NotNil(t, out.Session)
	assert.Equal(t, "github.com", out.Session.Domain)
	assert.True(t, out.Session.StartedAt.Equal(started))
}

func TestGateway_EntriesAppendPreservesOrder(t *testing.T) {
	gw := testGateway(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, gw.AppendEntry(ctx, Visit{
			ID: fmt.Sprintf("v%d", i), Domain: "example.com",
			Category: classify.Neutral, DurationSeconds: 10, Date: "2026-08-30",
		}))
	}

	entries, err := gw.EntriesForDate(ctx, "2026-08-30")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "v0", entries[0].ID)
	assert.Equal(t, "v2", entries[2].ID)
}

func TestGateway_EntriesEmptyDate(t *testing.T) {
	gw := testGateway(t)

	entries, err := gw.EntriesForDate(context.Background(), "2026-08-30")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGateway_EntriesIsolatedPerDate(t *testing.T) {
	gw := testGateway(t)
	ctx := context.Background()

	require.NoError(t, gw.AppendEntry(ctx, Visit{ID: "a", Date: "2026-08-29", DurationSeconds: 1}))
	require.NoError(t, gw.AppendEntry(ctx, Visit{ID: "b", Date: "2026-08-30", DurationSeconds: 1}))

	entries, err := gw.EntriesForDate(ctx, "2026-08-29")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a", entries[0].ID)
}

func TestGateway_AggregateRoundTrip(t *testing.T) {
	gw := testGateway(t)
	ctx := context.Background()

	_, found, err := gw.AggregateForDate(ctx, "2026-08-30")
	require.NoError(t, err)
	assert.False(t, found)

	in := Daily{Date: "2026-08-30", TotalSeconds: 600, ProductiveSeconds: 600, FocusScore: 100}
	require.NoError(t, gw.SaveAggregate(ctx, in))

	out, found, err := gw.AggregateForDate(ctx, "2026-08-30")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, in, out)
}

func TestGateway_SettingsDefaultsWhenEmpty(t *testing.T) {
	gw := testGateway(t)

	settings, err := gw.Settings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)
}

func TestGateway_RulesRoundTrip(t *testing.T) {
	gw := testGateway(t)
	ctx := context.Background()

	rules, err := gw.Rules(ctx)
	require.NoError(t, err)
	assert.Empty(t, rules)

	in := []classify.Rule{{
		ID: "r1", Pattern: "*.reddit.com", Match: classify.MatchWildcard,
		Category: classify.Distraction, CreatedAt: time.Now().UTC(),
	}}
	require.NoError(t, gw.SaveRules(ctx, in))

	out, err := gw.Rules(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "*.reddit.com", out[0].Pattern)
}

func TestGateway_CleanupBoundaries(t *testing.T) {
	gw := testGateway(t)
	ctx := context.Background()
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	dates := map[string]bool{ // date -> should survive 30-day retention
		"2026-08-29": true,
		"2026-07-31": true,  // exactly 30 days old, kept
		"2026-07-20": false, // 41 days old
		"2026-01-01": false,
	}
	for date := range dates {
		require.NoError(t, gw.AppendEntry(ctx, Visit{ID: date, Date: date, DurationSeconds: 1}))
	}
	// Aggregates have a fixed one-year horizon.
	require.NoError(t, gw.SaveAggregate(ctx, Daily{Date: "2024-06-01"}))
	require.NoError(t, gw.SaveAggregate(ctx, Daily{Date: "2026-08-29"}))

	removed, err := gw.CleanupOldData(ctx, 30, now)
	require.NoError(t, err)
	assert.Equal(t, 3, removed) // two entries keys + one aggregate key

	for date, kept := range dates {
		entries, err := gw.EntriesForDate(ctx, date)
		require.NoError(t, err)
		if kept {
			assert.Len(t, entries, 1, "entries for %s should survive", date)
		} else {
			assert.Empty(t, entries, "entries for %s should be removed", date)
		}
	}

	_, found, err := gw.AggregateForDate(ctx, "2024-06-01")
	require.NoError(t, err)
	assert.False(t, found)
	_, found, err = gw.AggregateForDate(ctx, "2026-08-29")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestGateway_CleanupIgnoresMalformedKeys(t *testing.T) {
	gw := testGateway(t)
	ctx := context.Background()

	require.NoError(t, gw.store.Set(ctx, "entries:not-a-date", []byte("[]")))

	removed, err := gw.CleanupOldData(ctx, 1, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, removed)

	_, err = gw.store.Get(ctx, "entries:not-a-date")
	assert.NoError(t, err)
}

func TestGateway_ExpiredKeysDoesNotDelete(t *testing.T) {
	gw := testGateway(t)
	ctx := context.Background()
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	require.NoError(t, gw.AppendEntry(ctx, Visit{ID: "v", Date: "2026-01-01", DurationSeconds: 1}))

	stale, err := gw.ExpiredKeys(ctx, 30, now)
	require.NoError(t, err)
	assert.Len(t, stale, 1)

	entries, err := gw.EntriesForDate(ctx, "2026-01-01")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestGateway_DeleteAllKeepsSettingsRulesAndState(t *testing.T) {
	gw := testGateway(t)
	ctx := context.Background()

	require.NoError(t, gw.AppendEntry(ctx, Visit{ID: "v", Date: "2026-08-30", DurationSeconds: 1}))
	require.NoError(t, gw.SaveAggregate(ctx, Daily{Date: "2026-08-30"}))
	settings := DefaultSettings()
	settings.DailyGoalMinutes = 90
	require.NoError(t, gw.SaveSettings(ctx, settings))
	require.NoError(t, gw.SaveRules(ctx, []classify.Rule{{ID: "r1", Pattern: "x.com"}}))
	state := DefaultState()
	state.Tracking = false
	require.NoError(t, gw.SaveState(ctx, state))

	removed, err := gw.DeleteAllData(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	entries, err := gw.EntriesForDate(ctx, "2026-08-30")
	require.NoError(t, err)
	assert.Empty(t, entries)

	gotSettings, err := gw.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 90, gotSettings.DailyGoalMinutes)

	gotRules, err := gw.Rules(ctx)
	require.NoError(t, err)
	assert.Len(t, gotRules, 1)

	gotState, err := gw.State(ctx)
	require.NoError(t, err)
	assert.False(t, gotState.Tracking)
}

func TestGateway_Counts(t *testing.T) {
	gw := testGateway(t)
	ctx := context.Background()

	entryDays, aggregateDays, err := gw.Counts(ctx)
	require.NoError(t, err)
	assert.Zero(t, entryDays)
	assert.Zero(t, aggregateDays)

	require.NoError(t, gw.AppendEntry(ctx, Visit{ID: "a", Date: "2026-08-29", DurationSeconds: 1}))
	require.NoError(t, gw.AppendEntry(ctx, Visit{ID: "b", Date: "2026-08-29", DurationSeconds: 1}))
	require.NoError(t, gw.AppendEntry(ctx, Visit{ID: "c", Date: "2026-08-30", DurationSeconds: 1}))
	require.NoError(t, gw.SaveAggregate(ctx, Daily{Date: "2026-08-30"}))

	entryDays, aggregateDays, err = gw.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, entryDays)
	assert.Equal(t, 1, aggregateDays)
}

func TestGateway_ExportAll(t *testing.T) {
	gw := testGateway(t)
	ctx := context.Background()

	require.NoError(t, gw.AppendEntry(ctx, Visit{ID: "v1", Date: "2026-08-29", DurationSeconds: 1}))
	require.NoError(t, gw.AppendEntry(ctx, Visit{ID: "v2", Date: "2026-08-30", DurationSeconds: 1}))
	require.NoError(t, gw.SaveAggregate(ctx, Daily{Date: "2026-08-30", TotalSeconds: 1}))
	require.NoError(t, gw.SaveRules(ctx, []classify.Rule{{ID: "r1", Pattern: "x.com"}}))

	export, err := gw.ExportAll(ctx)
	require.NoError(t, err)
	assert.Len(t, export.Entries, 2)
	assert.Len(t, export.Aggregates, 1)
	assert.Len(t, export.Rules, 1)
	assert.Equal(t, DefaultSettings(), export.Settings)
	assert.False(t, export.ExportedAt.IsZero())
}

func TestGateway_WorksOverSQLite(t *testing.T) {
	store := openTestStore(t)
	gw := NewGateway(store)
	ctx := context.Background()

	require.NoError(t, gw.AppendEntry(ctx, Visit{
		ID: "v1", Domain: "github.com", Category: classify.Productive,
		DurationSeconds: 300, Date: "2026-08-30",
	}))

	entries, err := gw.EntriesForDate(ctx, "2026-08-30")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, classify.Productive, entries[0].Category)
}
