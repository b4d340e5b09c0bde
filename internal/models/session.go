package models

import (
	"time"

	"gorm.io/gorm"
)

// Conversation states. A session moves forward through these and always
// falls back to the main menu on anything unrecognized.
const (
	StateNew           = "new"
	StateMainMenu      = "main_menu"
	StateAppSubmenu    = "app_submenu"
	StateQuestionsMenu = "questions_menu"
	StateMoreHelp      = "more_help"
	StateRating        = "rating"
)

// Session tracks where a user currently is in the menu flow. Overwritten
// whole on every state transition, deleted when the conversation ends.
type Session struct {
	gorm.Model
	PhoneNumber     string    `json:"phone_number" gorm:"uniqueIndex"`
	State           string    `json:"state"`
	Category        string    `json:"category"` // qualified KB path being browsed
	LastInteraction time.Time `json:"last_interaction"`
}

// Expired reports whether the session is older than the given TTL.
func (s *Session) Expired(ttl time.Duration) bool {
	return ttl > 0 && time.Since(s.LastInteraction) > ttl
}
