package service

import (
	"context"
	"errors"
	"time"

	"classroom-qa-demo/backend/assistant/models"
	"classroom-qa-demo/backend/assistant/repository"

	"gorm.io/gorm"
)

// TranscriptService is the append-only per-session log of chat turns
type TranscriptService struct {
	sessions repository.SessionRepository
	messages repository.MessageRepository
}

func NewTranscriptService(sessions repository.SessionRepository, messages repository.MessageRepository) *TranscriptService {
	return &TranscriptService{sessions: sessions, messages: messages}
}

// Append records one turn, lazily creating the session with actorRole on
// its first message. The actor role of an existing session is never changed.
func (s *TranscriptService) Append(ctx context.Context, sessionID, actorRole, turnRole, content string) (*models.ChatMessage, error) {
	_, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		session := &models.ChatSession{SessionID: sessionID, Role: actorRole}
		if createErr := s.sessions.Create(ctx, session); createErr != nil {
			return nil, createErr
		}
	}

	message := &models.ChatMessage{
		SessionID: sessionID,
		Role:      turnRole,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// History returns the full transcript in insertion order. A session with no
// messages (or an unknown session) yields an empty transcript. No window is
// applied; transcripts grow without bound.
func (s *TranscriptService) History(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	return s.messages.ListBySession(ctx, sessionID)
}

// StudentSessions lists sessions tagged with the student actor role in
// creation order. Lecturer sessions never appear here.
func (s *TranscriptService) StudentSessions(ctx context.Context) ([]models.ChatSession, error) {
	return s.sessions.ListByRole(ctx, models.ActorStudent)
}
