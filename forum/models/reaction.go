package models

// Reaction types are stored as free text; like, insightful, curious and
// funny are the ones the frontend offers today.

// QuestionReaction records one user's current reaction to a question.
// At most one row exists per (question, user) pair; the toggle logic in the
// reaction ledger maintains that invariant.
type QuestionReaction struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	QuestionID   uint   `json:"question_id" gorm:"index"`
	UserID       uint   `json:"user_id" gorm:"index"`
	ReactionType string `json:"reaction_type"`
}

// CommentReaction records one user's current reaction to a comment, with
// the same single-row invariant as QuestionReaction
type CommentReaction struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	CommentID    uint   `json:"comment_id" gorm:"index"`
	UserID       uint   `json:"user_id" gorm:"index"`
	ReactionType string `json:"reaction_type"`
}
