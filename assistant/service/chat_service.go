package service

import (
	"context"

	"classroom-qa-demo/backend/ai"
	"classroom-qa-demo/backend/assistant/models"
	apperrors "classroom-qa-demo/backend/pkg/errors"
	"classroom-qa-demo/backend/pkg/kmutex"
	"classroom-qa-demo/backend/pkg/logger"
)

// ChatService drives assistant turns for students and insight queries for
// lecturers. The model client is injected at construction; a nil client
// means the assistant is not configured and every turn fails with
// ServiceUnavailable before any model call, though the caller's message is
// still persisted to the transcript.
type ChatService struct {
	assembler  *ContextAssembler
	transcript *TranscriptService
	client     ai.Client
	locks      *kmutex.KeyedMutex
	log        *logger.Logger
}

func NewChatService(assembler *ContextAssembler, transcript *TranscriptService, client ai.Client, log *logger.Logger) *ChatService {
	return &ChatService{
		assembler:  assembler,
		transcript: transcript,
		client:     client,
		locks:      kmutex.New(),
		log:        log.WithComponent("chat"),
	}
}

// PostMessage runs one student turn: persist the message, assemble the
// prompt, call the model and persist its reply. Turns within a session are
// serialized; the persisted user message is kept even when the model call
// fails, so a failed turn is observable as a user turn with no reply.
func (s *ChatService) PostMessage(ctx context.Context, sessionID, message string) (string, error) {
	if err := s.validateTurn(sessionID, message); err != nil {
		return "", err
	}

	s.locks.Lock(sessionID)
	defer s.locks.Unlock(sessionID)

	prior, prompt, err := s.assembler.AssembleStudent(ctx, sessionID, message)
	if err != nil {
		return "", err
	}

	// Checked after assembly: the student's message is persisted even when
	// the assistant is not configured
	if s.client == nil {
		return "", apperrors.NewServiceUnavailableError("AI_UNAVAILABLE", "assistant is not configured")
	}

	reply, err := s.client.Chat(ctx, prior, prompt)
	if err != nil {
		s.log.LogError(err, "model call failed", "session_id", sessionID)
		return "", apperrors.NewUpstreamError("UPSTREAM_FAILURE", err.Error())
	}

	if _, err := s.transcript.Append(ctx, sessionID, models.ActorStudent, models.TurnModel, reply); err != nil {
		return "", err
	}
	return reply, nil
}

// LecturerInsight runs one lecturer turn against the aggregated student
// corpus. The reply lands in the lecturer's own session; the student
// sessions that fed the analysis are only read.
func (s *ChatService) LecturerInsight(ctx context.Context, sessionID, query string) (string, error) {
	if err := s.validateTurn(sessionID, query); err != nil {
		return "", err
	}

	s.locks.Lock(sessionID)
	defer s.locks.Unlock(sessionID)

	prior, prompt, err := s.assembler.AssembleInsight(ctx, sessionID, query)
	if err != nil {
		return "", err
	}

	if s.client == nil {
		return "", apperrors.NewServiceUnavailableError("AI_UNAVAILABLE", "assistant is not configured")
	}

	reply, err := s.client.Chat(ctx, prior, prompt)
	if err != nil {
		s.log.LogError(err, "model call failed", "session_id", sessionID)
		return "", apperrors.NewUpstreamError("UPSTREAM_FAILURE", err.Error())
	}

	if _, err := s.transcript.Append(ctx, sessionID, models.ActorLecturer, models.TurnModel, reply); err != nil {
		return "", err
	}
	return reply, nil
}

// History returns a session's full transcript in insertion order
func (s *ChatService) History(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	if sessionID == "" {
		return nil, apperrors.NewInvalidInputError("INVALID_SESSION", "session_id must not be empty")
	}
	return s.transcript.History(ctx, sessionID)
}

func (s *ChatService) validateTurn(sessionID, content string) error {
	if sessionID == "" {
		return apperrors.NewInvalidInputError("INVALID_SESSION", "session_id must not be empty")
	}
	if content == "" {
		return apperrors.NewInvalidInputError("INVALID_MESSAGE", "message must not be empty")
	}
	return nil
}
