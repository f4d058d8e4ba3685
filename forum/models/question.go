package models

import (
	"time"

	"gorm.io/datatypes"
)

// Question is a student-posted forum question
type Question struct {
	ID      uint                        `json:"id" gorm:"primaryKey"`
	Author  string                      `json:"author"`
	Content string                      `json:"content"`
	Tags    datatypes.JSONSlice[string] `json:"tags"`
	// Likes is a legacy counter kept for compatibility with old rows. It is
	// written once at creation and never consulted again; reaction counts
	// come from the reaction tables.
	Likes     int       `json:"likes"`
	Resolved  bool      `json:"resolved"`
	CreatedAt time.Time `json:"created_at"`

	Comments  []Comment          `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Reactions []QuestionReaction `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// QuestionView is a Question decorated with its live reaction tally and the
// calling user's own reaction, as returned by list endpoints
type QuestionView struct {
	Question
	ReactionCounts map[string]int `json:"reactions"`
	UserReaction   string         `json:"user_reaction,omitempty"`
}
