package storage

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/percapital/faqbot-backend/internal/models"
)

// DatabaseStore persists sessions and ratings in PostgreSQL via GORM.
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a database-backed store
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

func (d *DatabaseStore) GetSession(phone string) (*models.Session, error) {
	var session models.Session
	err := d.db.Where("phone_number = ?", phone).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("session not found")
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (d *DatabaseStore) SaveSession(session *models.Session) error {
	var existing models.Session
	err := d.db.Where("phone_number = ?", session.PhoneNumber).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return d.db.Create(session).Error
	}
	if err != nil {
		return err
	}

	existing.State = session.State
	existing.Category = session.Category
	existing.LastInteraction = session.LastInteraction
	return d.db.Save(&existing).Error
}

func (d *DatabaseStore) DeleteSession(phone string) error {
	result := d.db.Where("phone_number = ?", phone).Delete(&models.Session{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("session not found")
	}
	return nil
}

func (d *DatabaseStore) ClearSessions() (int, error) {
	result := d.db.Where("1 = 1").Delete(&models.Session{})
	return int(result.RowsAffected), result.Error
}

func (d *DatabaseStore) CountSessions() (int, error) {
	var count int64
	err := d.db.Model(&models.Session{}).Count(&count).Error
	return int(count), err
}

func (d *DatabaseStore) DeleteExpiredSessions(ttl time.Duration) (int, error) {
	cutoff := time.Now().Add(-ttl)
	result := d.db.Where("last_interaction < ?", cutoff).Delete(&models.Session{})
	return int(result.RowsAffected), result.Error
}

func (d *DatabaseStore) AddRating(rating *models.Rating) error {
	return d.db.Create(rating).Error
}

func (d *DatabaseStore) GetRatings() ([]*models.Rating, error) {
	var ratings []*models.Rating
	err := d.db.Order("rated_at asc").Find(&ratings).Error
	return ratings, err
}

func (d *DatabaseStore) CountRatings() (int, error) {
	var count int64
	err := d.db.Model(&models.Rating{}).Count(&count).Error
	return int(count), err
}
