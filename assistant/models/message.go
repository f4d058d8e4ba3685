package models

import (
	"time"
)

// Turn roles within a session
const (
	TurnUser  = "user"
	TurnModel = "model"
)

// ChatMessage is one turn of a session transcript. Append-only; transcript
// order is primary-key order, which breaks timestamp ties by insertion.
type ChatMessage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	SessionID string    `json:"session_id" gorm:"index"`
	Role      string    `json:"role"`
	Content   string    `json:"content" gorm:"type:text"`
	Timestamp time.Time `json:"timestamp"`
}
