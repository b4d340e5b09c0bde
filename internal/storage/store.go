package storage

import (
	"time"

	"github.com/percapital/faqbot-backend/internal/models"
)

var storeInstance Store

// SetStore sets the global store instance (call from main.go)
func SetStore(s Store) {
	storeInstance = s
}

// GetStore returns the global store instance
func GetStore() Store {
	return storeInstance
}

// Store defines the interface for storage operations
type Store interface {
	// Session operations
	GetSession(phone string) (*models.Session, error)
	SaveSession(session *models.Session) error
	DeleteSession(phone string) error
	ClearSessions() (int, error)
	CountSessions() (int, error)
	DeleteExpiredSessions(ttl time.Duration) (int, error)

	// Rating operations
	AddRating(rating *models.Rating) error
	GetRatings() ([]*models.Rating, error)
	CountRatings() (int, error)
}
