package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/focuswatch/internal/classify"
)

func TestRules_AddThenList(t *testing.T) {
	gw := testGateway(t)

	add := &RulesCommand{
		Add: "*.reddit.com", Match: "wildcard", Category: "distraction",
		globals: &GlobalFlags{},
	}
	out := captureOutput(t, func() {
		require.NoError(t, add.executeWithGateway(gw))
	})
	assert.Contains(t, out, "Added rule")
	assert.Contains(t, out, "*.reddit.com")

	list := &RulesCommand{Match: "exact", globals: &GlobalFlags{}}
	out = captureOutput(t, func() {
		require.NoError(t, list.executeWithGateway(gw))
	})
	assert.Contains(t, out, "*.reddit.com")
	assert.Contains(t, out, "distraction")
}

func TestRules_Remove(t *testing.T) {
	gw := testGateway(t)
	ctx := context.Background()

	require.NoError(t, gw.SaveRules(ctx, []classify.Rule{
		{ID: "keep", Pattern: "a.com", Match: classify.MatchExact, Category: classify.Neutral, CreatedAt: time.Now()},
		{ID: "drop", Pattern: "b.com", Match: classify.MatchExact, Category: classify.Neutral, CreatedAt: time.Now()},
	}))

	cmd := &RulesCommand{Remove: "drop", globals: &GlobalFlags{}}
	out := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithGateway(gw))
	})
	assert.Contains(t, out, "Removed rule drop")

	rules, err := gw.Rules(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "keep", rules[0].ID)
}

func TestRules_RemoveUnknownID(t *testing.T) {
	gw := testGateway(t)

	cmd := &RulesCommand{Remove: "nope", globals: &GlobalFlags{}}
	err := cmd.executeWithGateway(gw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no rule with ID")
}

func TestRules_AddRequiresCategory(t *testing.T) {
	gw := testGateway(t)

	cmd := &RulesCommand{Add: "x.com", Match: "exact", globals: &GlobalFlags{}}
	err := cmd.executeWithGateway(gw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--category")
}

func TestRules_AddRejectsInvalidInput(t *testing.T) {
	gw := testGateway(t)

	err := (&RulesCommand{Add: "x.com", Match: "fuzzy", Category: "neutral", globals: &GlobalFlags{}}).executeWithGateway(gw)
	require.Error(t, err)

	err = (&RulesCommand{Add: "x.com", Match: "exact", Category: "sideways", globals: &GlobalFlags{}}).executeWithGateway(gw)
	require.Error(t, err)
}

func TestRules_AddAndRemoveMutuallyExclusive(t *testing.T) {
	gw := testGateway(t)

	cmd := &RulesCommand{Add: "x.com", Remove: "r1", Category: "neutral", Match: "exact", globals: &GlobalFlags{}}
	err := cmd.executeWithGateway(gw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestRules_ListEmpty(t *testing.T) {
	gw := testGateway(t)

	cmd := &RulesCommand{Match: "exact", globals: &GlobalFlags{}}
	out := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithGateway(gw))
	})
	assert.Contains(t, out, "No custom rules")
}
