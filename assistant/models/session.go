package models

import (
	"time"
)

// Actor roles a session is tagged with at creation. The role is permanent
// and decides whether the session's messages feed lecturer insight queries.
const (
	ActorStudent  = "student"
	ActorLecturer = "lecturer"
)

// ChatSession is one continuous conversation with the assistant, identified
// by an opaque client-chosen key. Created lazily on first message.
type ChatSession struct {
	SessionID string    `json:"session_id" gorm:"primaryKey"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`

	Messages []ChatMessage `json:"-" gorm:"foreignKey:SessionID;references:SessionID;constraint:OnDelete:CASCADE"`
}
