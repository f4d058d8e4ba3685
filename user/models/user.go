package models

import (
	"time"
)

// User is a bare username identity, created lazily on first reference
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
}
