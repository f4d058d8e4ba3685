package service

import (
	"context"
	"fmt"
	"strings"

	"classroom-qa-demo/backend/forum/repository"
	apperrors "classroom-qa-demo/backend/pkg/errors"
	"classroom-qa-demo/backend/pkg/kmutex"
)

// ToggleResult reports what a reaction toggle did
type ToggleResult string

const (
	ReactionAdded   ToggleResult = "added"
	ReactionUpdated ToggleResult = "updated"
	ReactionRemoved ToggleResult = "removed"
)

// ReactionLedger is the per-(target, user) reaction state machine, used
// identically for questions and comments. Current state only; no history.
type ReactionLedger struct {
	store repository.ReactionStore
	locks *kmutex.KeyedMutex
}

func NewReactionLedger(store repository.ReactionStore) *ReactionLedger {
	return &ReactionLedger{
		store: store,
		locks: kmutex.New(),
	}
}

// NormalizeReactionType validates a raw reaction type. Types are an open
// enumeration, so anything non-empty is allowed after trimming and
// lowercasing.
func NormalizeReactionType(raw string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return "", apperrors.NewInvalidInputError("INVALID_REACTION", "reaction_type must not be empty")
	}
	return normalized, nil
}

// Toggle advances the (target, user) state machine one step:
//
//	absent            -> row inserted            -> added
//	present, same     -> row deleted             -> removed
//	present, other    -> row retyped in place    -> updated
//
// The read-then-decide sequence is serialized per (target, user) so that at
// most one row exists at rest.
func (l *ReactionLedger) Toggle(ctx context.Context, targetID, userID uint, reactionType string) (ToggleResult, error) {
	key := fmt.Sprintf("%d/%d", targetID, userID)
	l.locks.Lock(key)
	defer l.locks.Unlock(key)

	existing, err := l.store.Find(ctx, targetID, userID)
	if err != nil {
		return "", err
	}

	switch {
	case existing == nil:
		if err := l.store.Create(ctx, targetID, userID, reactionType); err != nil {
			return "", err
		}
		return ReactionAdded, nil
	case existing.ReactionType == reactionType:
		if err := l.store.Delete(ctx, existing.ID); err != nil {
			return "", err
		}
		return ReactionRemoved, nil
	default:
		if err := l.store.UpdateType(ctx, existing.ID, reactionType); err != nil {
			return "", err
		}
		return ReactionUpdated, nil
	}
}

// Summarize tallies current reaction rows per type and reports the caller's
// own reaction ("" when none, or when callerUserID is 0). Counts are computed
// from the stored rows on every call; the ledger is the single source of
// truth and nothing is cached.
func (l *ReactionLedger) Summarize(ctx context.Context, targetID, callerUserID uint) (map[string]int, string, error) {
	rows, err := l.store.ListByTarget(ctx, targetID)
	if err != nil {
		return nil, "", err
	}

	counts := make(map[string]int)
	callerReaction := ""
	for _, row := range rows {
		counts[row.ReactionType]++
		if callerUserID != 0 && row.UserID == callerUserID {
			callerReaction = row.ReactionType
		}
	}
	return counts, callerReaction, nil
}
