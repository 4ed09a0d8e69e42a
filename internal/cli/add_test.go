package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/focuswatch/internal/classify"
)

func TestAdd_RecordsVisit(t *testing.T) {
	gw := testGateway(t)

	cmd := &AddCommand{
		URL:      "https://github.com/runnerr0/focuswatch",
		Title:    "focuswatch",
		Duration: "25m",
		Date:     "2026-08-30",
		globals:  &GlobalFlags{},
	}
	out := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithGateway(gw))
	})
	assert.Contains(t, out, "Recorded 25m on github.com")

	entries, err := gw.EntriesForDate(context.Background(), "2026-08-30")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "github.com", entries[0].Domain)
	assert.Equal(t, classify.Productive, entries[0].Category)
	assert.Equal(t, 1500, entries[0].DurationSeconds)
	assert.NotEmpty(t, entries[0].ID)
}

func TestAdd_RefreshesAggregate(t *testing.T) {
	gw := testGateway(t)

	cmd := &AddCommand{
		URL: "https://youtube.com/watch", Duration: "10m", Date: "2026-08-30",
		globals: &GlobalFlags{},
	}
	captureOutput(t, func() {
		require.NoError(t, cmd.executeWithGateway(gw))
	})

	agg, found, err := gw.AggregateForDate(context.Background(), "2026-08-30")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 600, agg.DistractionSeconds)
}

func TestAdd_CategoryOverride(t *testing.T) {
	gw := testGateway(t)

	cmd := &AddCommand{
		URL: "https://youtube.com/lecture", Duration: "30m", Date: "2026-08-30",
		Category: "productive",
		globals:  &GlobalFlags{},
	}
	captureOutput(t, func() {
		require.NoError(t, cmd.executeWithGateway(gw))
	})

	entries, err := gw.EntriesForDate(context.Background(), "2026-08-30")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, classify.Productive, entries[0].Category)
}

func TestAdd_UsesCustomRules(t *testing.T) {
	gw := testGateway(t)
	ctx := context.Background()

	require.NoError(t, gw.SaveRules(ctx, []classify.Rule{{
		ID: "r1", Pattern: "github.com", Match: classify.MatchExact,
		Category: classify.Distraction, CreatedAt: time.Now(),
	}}))

	cmd := &AddCommand{
		URL: "https://github.com", Duration: "5m", Date: "2026-08-30",
		globals: &GlobalFlags{},
	}
	captureOutput(t, func() {
		require.NoError(t, cmd.executeWithGateway(gw))
	})

	entries, err := gw.EntriesForDate(ctx, "2026-08-30")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, classify.Distraction, entries[0].Category)
}

func TestAdd_Validation(t *testing.T) {
	gw := testGateway(t)

	err := (&AddCommand{globals: &GlobalFlags{}}).executeWithGateway(gw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--url is required")

	err = (&AddCommand{URL: "chrome://settings", Duration: "5m", globals: &GlobalFlags{}}).executeWithGateway(gw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not tracked")

	err = (&AddCommand{URL: "https://example.com", Duration: "nope", globals: &GlobalFlags{}}).executeWithGateway(gw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--duration")

	err = (&AddCommand{URL: "https://example.com", Duration: "0m", globals: &GlobalFlags{}}).executeWithGateway(gw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "positive")

	err = (&AddCommand{URL: "https://example.com", Duration: "5m", Category: "sideways", globals: &GlobalFlags{}}).executeWithGateway(gw)
	require.Error(t, err)
}
