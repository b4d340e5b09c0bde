package storage

import (
	"fmt"
	"sync"
	"time"

	"github.com/percapital/faqbot-backend/internal/models"
)

// MemoryStore holds all data in memory. Fine for a single process; sessions
// are volatile by design.
type MemoryStore struct {
	sessions map[string]*models.Session
	ratings  []*models.Rating

	sessionMu sync.RWMutex
	ratingMu  sync.RWMutex
}

// NewMemoryStore creates a new in-memory storage
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*models.Session),
	}
}

func (m *MemoryStore) GetSession(phone string) (*models.Session, error) {
	m.sessionMu.RLock()
	defer m.sessionMu.RUnlock()

	session, exists := m.sessions[phone]
	if !exists {
		return nil, fmt.Errorf("session not found")
	}
	return session, nil
}

// SaveSession overwrites the whole session record. Last writer wins when
// duplicate webhook deliveries race.
func (m *MemoryStore) SaveSession(session *models.Session) error {
	m.sessionMu.Lock()
	defer m.sessionMu.Unlock()

	m.sessions[session.PhoneNumber] = session
	return nil
}

func (m *MemoryStore) DeleteSession(phone string) error {
	m.sessionMu.Lock()
	defer m.sessionMu.Unlock()

	if _, exists := m.sessions[phone]; !exists {
		return fmt.Errorf("session not found")
	}
	delete(m.sessions, phone)
	return nil
}

func (m *MemoryStore) ClearSessions() (int, error) {
	m.sessionMu.Lock()
	defer m.sessionMu.Unlock()

	count := len(m.sessions)
	m.sessions = make(map[string]*models.Session)
	return count, nil
}

func (m *MemoryStore) CountSessions() (int, error) {
	m.sessionMu.RLock()
	defer m.sessionMu.RUnlock()

	return len(m.sessions), nil
}

func (m *MemoryStore) DeleteExpiredSessions(ttl time.Duration) (int, error) {
	m.sessionMu.Lock()
	defer m.sessionMu.Unlock()

	count := 0
	for phone, session := range m.sessions {
		if session.Expired(ttl) {
			delete(m.sessions, phone)
			count++
		}
	}
	return count, nil
}

func (m *MemoryStore) AddRating(rating *models.Rating) error {
	m.ratingMu.Lock()
	defer m.ratingMu.Unlock()

	m.ratings = append(m.ratings, rating)
	return nil
}

func (m *MemoryStore) GetRatings() ([]*models.Rating, error) {
	m.ratingMu.RLock()
	defer m.ratingMu.RUnlock()

	ratings := make([]*models.Rating, len(m.ratings))
	copy(ratings, m.ratings)
	return ratings, nil
}

func (m *MemoryStore) CountRatings() (int, error) {
	m.ratingMu.RLock()
	defer m.ratingMu.RUnlock()

	return len(m.ratings), nil
}
