package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"classroom-qa-demo/backend/forum/models"
	"classroom-qa-demo/backend/forum/repository"
	usermodels "classroom-qa-demo/backend/user/models"

	"gorm.io/gorm"
)

// In-memory stand-ins for the gorm repositories, shared by the tests in
// this package.

type fakeQuestionRepo struct {
	mu        sync.Mutex
	nextID    uint
	questions map[uint]*models.Question
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{questions: make(map[uint]*models.Question)}
}

func (r *fakeQuestionRepo) Create(ctx context.Context, question *models.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	question.ID = r.nextID
	if question.CreatedAt.IsZero() {
		question.CreatedAt = time.Now()
	}
	stored := *question
	r.questions[question.ID] = &stored
	return nil
}

func (r *fakeQuestionRepo) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if q, ok := r.questions[id]; ok {
		copied := *q
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeQuestionRepo) List(ctx context.Context) ([]models.Question, error) {
	return r.ListRecent(ctx, len(r.questions))
}

func (r *fakeQuestionRepo) ListRecent(ctx context.Context, limit int) ([]models.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	questions := make([]models.Question, 0, len(r.questions))
	for _, q := range r.questions {
		questions = append(questions, *q)
	}
	sort.Slice(questions, func(i, j int) bool {
		if !questions[i].CreatedAt.Equal(questions[j].CreatedAt) {
			return questions[i].CreatedAt.After(questions[j].CreatedAt)
		}
		return questions[i].ID > questions[j].ID
	})
	if limit < len(questions) {
		questions = questions[:limit]
	}
	return questions, nil
}

func (r *fakeQuestionRepo) Update(ctx context.Context, question *models.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.questions[question.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *question
	r.questions[question.ID] = &stored
	return nil
}

func (r *fakeQuestionRepo) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.questions, id)
	return nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	nextID   uint
	comments map[uint]*models.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[uint]*models.Comment)}
}

func (r *fakeCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	comment.ID = r.nextID
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	stored := *comment
	r.comments[comment.ID] = &stored
	return nil
}

func (r *fakeCommentRepo) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.comments[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCommentRepo) ListByQuestion(ctx context.Context, questionID uint) ([]models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	comments := make([]models.Comment, 0)
	for _, c := range r.comments {
		if c.QuestionID == questionID {
			comments = append(comments, *c)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return comments, nil
}

func (r *fakeCommentRepo) Update(ctx context.Context, comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[comment.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *comment
	r.comments[comment.ID] = &stored
	return nil
}

func (r *fakeCommentRepo) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.comments, id)
	return nil
}

type fakeReactionStore struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]repository.Reaction
}

func newFakeReactionStore() *fakeReactionStore {
	return &fakeReactionStore{rows: make(map[uint]repository.Reaction)}
}

func (s *fakeReactionStore) Find(ctx context.Context, targetID, userID uint) (*repository.Reaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.rows {
		if row.TargetID == targetID && row.UserID == userID {
			copied := row
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeReactionStore) Create(ctx context.Context, targetID, userID uint, reactionType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.rows[s.nextID] = repository.Reaction{ID: s.nextID, TargetID: targetID, UserID: userID, ReactionType: reactionType}
	return nil
}

func (s *fakeReactionStore) UpdateType(ctx context.Context, id uint, reactionType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	row.ReactionType = reactionType
	s.rows[id] = row
	return nil
}

func (s *fakeReactionStore) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, id)
	return nil
}

func (s *fakeReactionStore) ListByTarget(ctx context.Context, targetID uint) ([]repository.Reaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := make([]repository.Reaction, 0)
	for _, row := range s.rows {
		if row.TargetID == targetID {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (s *fakeReactionStore) rowsFor(targetID, userID uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, row := range s.rows {
		if row.TargetID == targetID && row.UserID == userID {
			count++
		}
	}
	return count
}

type fakeDirectory struct {
	mu     sync.Mutex
	nextID uint
	users  map[string]*usermodels.User
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{users: make(map[string]*usermodels.User)}
}

func (d *fakeDirectory) Resolve(ctx context.Context, name string) (*usermodels.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if user, ok := d.users[name]; ok {
		return user, nil
	}
	d.nextID++
	user := &usermodels.User{ID: d.nextID, Username: name}
	d.users[name] = user
	return user, nil
}

func (d *fakeDirectory) Lookup(ctx context.Context, name string) (*usermodels.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if user, ok := d.users[name]; ok {
		return user, nil
	}
	return nil, nil
}
