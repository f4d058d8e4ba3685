package models

import (
	"time"
)

// Comment belongs to exactly one Question and is removed with it
type Comment struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	QuestionID uint      `json:"question_id" gorm:"index"`
	Author     string    `json:"author"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`

	Reactions []CommentReaction `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// CommentView is a Comment decorated with its reaction tally and the calling
// user's own reaction
type CommentView struct {
	Comment
	ReactionCounts map[string]int `json:"reactions"`
	UserReaction   string         `json:"user_reaction,omitempty"`
}
