package repository

import (
	"context"
	"errors"

	"classroom-qa-demo/backend/forum/models"

	"gorm.io/gorm"
)

// Reaction is the target-kind-neutral view of a stored reaction row, letting
// the ledger treat question and comment reactions identically
type Reaction struct {
	ID           uint
	TargetID     uint
	UserID       uint
	ReactionType string
}

// ReactionStore abstracts one reaction table. Find returns nil when the
// (target, user) pair has no row.
type ReactionStore interface {
	Find(ctx context.Context, targetID, userID uint) (*Reaction, error)
	Create(ctx context.Context, targetID, userID uint, reactionType string) error
	UpdateType(ctx context.Context, id uint, reactionType string) error
	Delete(ctx context.Context, id uint) error
	ListByTarget(ctx context.Context, targetID uint) ([]Reaction, error)
}

// GormQuestionReactionStore stores reactions against questions
type GormQuestionReactionStore struct {
	db *gorm.DB
}

func NewGormQuestionReactionStore(db *gorm.DB) *GormQuestionReactionStore {
	return &GormQuestionReactionStore{db: db}
}

func (s *GormQuestionReactionStore) Find(ctx context.Context, targetID, userID uint) (*Reaction, error) {
	var row models.QuestionReaction
	err := s.db.WithContext(ctx).
		Where("question_id = ? AND user_id = ?", targetID, userID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &Reaction{ID: row.ID, TargetID: row.QuestionID, UserID: row.UserID, ReactionType: row.ReactionType}, nil
}

func (s *GormQuestionReactionStore) Create(ctx context.Context, targetID, userID uint, reactionType string) error {
	return s.db.WithContext(ctx).Create(&models.QuestionReaction{
		QuestionID:   targetID,
		UserID:       userID,
		ReactionType: reactionType,
	}).Error
}

func (s *GormQuestionReactionStore) UpdateType(ctx context.Context, id uint, reactionType string) error {
	return s.db.WithContext(ctx).
		Model(&models.QuestionReaction{}).
		Where("id = ?", id).
		Update("reaction_type", reactionType).Error
}

func (s *GormQuestionReactionStore) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.QuestionReaction{}, id).Error
}

func (s *GormQuestionReactionStore) ListByTarget(ctx context.Context, targetID uint) ([]Reaction, error) {
	var rows []models.QuestionReaction
	err := s.db.WithContext(ctx).
		Where("question_id = ?", targetID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	reactions := make([]Reaction, 0, len(rows))
	for _, row := range rows {
		reactions = append(reactions, Reaction{ID: row.ID, TargetID: row.QuestionID, UserID: row.UserID, ReactionType: row.ReactionType})
	}
	return reactions, nil
}

// GormCommentReactionStore stores reactions against comments
type GormCommentReactionStore struct {
	db *gorm.DB
}

func NewGormCommentReactionStore(db *gorm.DB) *GormCommentReactionStore {
	return &GormCommentReactionStore{db: db}
}

func (s *GormCommentReactionStore) Find(ctx context.Context, targetID, userID uint) (*Reaction, error) {
	var row models.CommentReaction
	err := s.db.WithContext(ctx).
		Where("comment_id = ? AND user_id = ?", targetID, userID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &Reaction{ID: row.ID, TargetID: row.CommentID, UserID: row.UserID, ReactionType: row.ReactionType}, nil
}

func (s *GormCommentReactionStore) Create(ctx context.Context, targetID, userID uint, reactionType string) error {
	return s.db.WithContext(ctx).Create(&models.CommentReaction{
		CommentID:    targetID,
		UserID:       userID,
		ReactionType: reactionType,
	}).Error
}

func (s *GormCommentReactionStore) UpdateType(ctx context.Context, id uint, reactionType string) error {
	return s.db.WithContext(ctx).
		Model(&models.CommentReaction{}).
		Where("id = ?", id).
		Update("reaction_type", reactionType).Error
}

func (s *GormCommentReactionStore) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.CommentReaction{}, id).Error
}

func (s *GormCommentReactionStore) ListByTarget(ctx context.Context, targetID uint) ([]Reaction, error) {
	var rows []models.CommentReaction
	err := s.db.WithContext(ctx).
		Where("comment_id = ?", targetID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	reactions := make([]Reaction, 0, len(rows))
	for _, row := range rows {
		reactions = append(reactions, Reaction{ID: row.ID, TargetID: row.CommentID, UserID: row.UserID, ReactionType: row.ReactionType})
	}
	return reactions, nil
}
