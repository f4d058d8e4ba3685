package service

import (
	"context"
	"fmt"
	"strings"

	"classroom-qa-demo/backend/forum/repository"
)

// EmptyForumSnapshot is what Snapshot returns when no questions exist.
// Callers inject the snapshot directly into a prompt, so it must never be an
// empty string.
const EmptyForumSnapshot = "The forum is currently empty."

// SnapshotBuilder renders the most recent questions into a compact text
// summary for prompt injection
type SnapshotBuilder struct {
	questions repository.QuestionRepository
}

func NewSnapshotBuilder(questions repository.QuestionRepository) *SnapshotBuilder {
	return &SnapshotBuilder{questions: questions}
}

// Snapshot renders up to limit questions, newest first, one line each
func (b *SnapshotBuilder) Snapshot(ctx context.Context, limit int) (string, error) {
	questions, err := b.questions.ListRecent(ctx, limit)
	if err != nil {
		return "", err
	}
	if len(questions) == 0 {
		return EmptyForumSnapshot, nil
	}

	var sb strings.Builder
	for i, q := range questions {
		if i > 0 {
			sb.WriteByte('\n')
		}
		status := "OPEN"
		if q.Resolved {
			status = "RESOLVED"
		}
		tags := "none"
		if len(q.Tags) > 0 {
			tags = strings.Join(q.Tags, ", ")
		}
		fmt.Fprintf(&sb, "[#%d] [%s] %s: %s (tags: %s)", q.ID, status, q.Author, q.Content, tags)
	}
	return sb.String(), nil
}
