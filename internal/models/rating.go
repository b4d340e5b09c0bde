package models

import (
	"time"

	"gorm.io/gorm"
)

// Rating is one conversation rating. Append-only; a user may rate several
// conversations.
type Rating struct {
	gorm.Model
	UserPhone string    `json:"user"`
	Label     string    `json:"rating"`
	RatedAt   time.Time `json:"timestamp"`
}
