package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"classroom-qa-demo/backend/ai"
	"classroom-qa-demo/backend/assistant/models"

	"gorm.io/gorm"
)

type fakeSessionRepo struct {
	mu       sync.Mutex
	order    []string
	sessions map[string]*models.ChatSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*models.ChatSession)}
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *models.ChatSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	stored := *session
	r.sessions[session.SessionID] = &stored
	r.order = append(r.order, session.SessionID)
	return nil
}

func (r *fakeSessionRepo) GetByID(ctx context.Context, sessionID string) (*models.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if session, ok := r.sessions[sessionID]; ok {
		copied := *session
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSessionRepo) ListByRole(ctx context.Context, role string) ([]models.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sessions := make([]models.ChatSession, 0)
	for _, id := range r.order {
		if r.sessions[id].Role == role {
			sessions = append(sessions, *r.sessions[id])
		}
	}
	return sessions, nil
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	nextID   uint
	messages []models.ChatMessage
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{}
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *models.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	message.ID = r.nextID
	r.messages = append(r.messages, *message)
	return nil
}

func (r *fakeMessageRepo) ListBySession(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	messages := make([]models.ChatMessage, 0)
	for _, msg := range r.messages {
		if msg.SessionID == sessionID {
			messages = append(messages, msg)
		}
	}
	return messages, nil
}

type fakeSnapshot struct {
	text      string
	lastLimit int
}

func (s *fakeSnapshot) Snapshot(ctx context.Context, limit int) (string, error) {
	s.lastLimit = limit
	return s.text, nil
}

type fakeModelClient struct {
	mu          sync.Mutex
	reply       string
	err         error
	lastHistory []ai.Turn
	lastPrompt  string
	calls       int
}

func (c *fakeModelClient) Generate(ctx context.Context, prompt string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	c.lastPrompt = prompt
	if c.err != nil {
		return "", c.err
	}
	return c.reply, nil
}

func (c *fakeModelClient) Chat(ctx context.Context, history []ai.Turn, prompt string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	c.lastHistory = append([]ai.Turn(nil), history...)
	c.lastPrompt = prompt
	if c.err != nil {
		return "", c.err
	}
	return c.reply, nil
}

var errUpstreamDown = errors.New("model endpoint returned 500")
