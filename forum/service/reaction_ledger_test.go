package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleStateMachine(t *testing.T) {
	store := newFakeReactionStore()
	ledger := NewReactionLedger(store)
	ctx := context.Background()

	const target, user = 1, 7

	steps := []struct {
		reaction string
		want     ToggleResult
	}{
		{"like", ReactionAdded},
		{"like", ReactionRemoved},
		{"like", ReactionAdded},
		{"insightful", ReactionUpdated},
		{"insightful", ReactionRemoved},
	}

	for _, step := range steps {
		result, err := ledger.Toggle(ctx, target, user, step.reaction)
		require.NoError(t, err)
		assert.Equal(t, step.want, result, "toggling %q", step.reaction)
		// Never more than one row per (target, user) at rest
		assert.LessOrEqual(t, store.rowsFor(target, user), 1)
	}

	assert.Equal(t, 0, store.rowsFor(target, user))
}

func TestToggleUpdateKeepsSingleRow(t *testing.T) {
	store := newFakeReactionStore()
	ledger := NewReactionLedger(store)
	ctx := context.Background()

	_, err := ledger.Toggle(ctx, 3, 5, "curious")
	require.NoError(t, err)
	result, err := ledger.Toggle(ctx, 3, 5, "funny")
	require.NoError(t, err)
	assert.Equal(t, ReactionUpdated, result)
	assert.Equal(t, 1, store.rowsFor(3, 5))

	counts, own, err := ledger.Summarize(ctx, 3, 5)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"funny": 1}, counts)
	assert.Equal(t, "funny", own)
}

func TestTogglesAreIndependentPerUser(t *testing.T) {
	store := newFakeReactionStore()
	ledger := NewReactionLedger(store)
	ctx := context.Background()

	for userID := uint(1); userID <= 3; userID++ {
		_, err := ledger.Toggle(ctx, 9, userID, "like")
		require.NoError(t, err)
	}
	_, err := ledger.Toggle(ctx, 9, 2, "like") // user 2 toggles off
	require.NoError(t, err)

	counts, own, err := ledger.Summarize(ctx, 9, 2)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"like": 2}, counts)
	assert.Empty(t, own)
}

func TestSummarizeCountsMatchRows(t *testing.T) {
	store := newFakeReactionStore()
	ledger := NewReactionLedger(store)
	ctx := context.Background()

	_, err := ledger.Toggle(ctx, 4, 1, "like")
	require.NoError(t, err)
	_, err = ledger.Toggle(ctx, 4, 2, "like")
	require.NoError(t, err)
	_, err = ledger.Toggle(ctx, 4, 3, "insightful")
	require.NoError(t, err)

	counts, own, err := ledger.Summarize(ctx, 4, 3)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"like": 2, "insightful": 1}, counts)
	assert.Equal(t, "insightful", own)

	// Caller with no reaction, and the anonymous caller (id 0)
	_, own, err = ledger.Summarize(ctx, 4, 99)
	require.NoError(t, err)
	assert.Empty(t, own)
	_, own, err = ledger.Summarize(ctx, 4, 0)
	require.NoError(t, err)
	assert.Empty(t, own)
}

func TestNormalizeReactionType(t *testing.T) {
	normalized, err := NormalizeReactionType("  Like ")
	require.NoError(t, err)
	assert.Equal(t, "like", normalized)

	_, err = NormalizeReactionType("   ")
	assert.Error(t, err)
}
