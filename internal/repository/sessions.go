package repository

import (
	"errors"

	"github.com/davidsantoszx/gerenciadorsalario/internal/models"

	"gorm.io/gorm"
)

// SessionRepository persists login sessions.
type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(sess *models.Session) error {
	return r.db.Create(sess).Error
}

// FindByID returns the session with the given id, or (nil, nil) when it
// does not exist.
func (r *SessionRepository) FindByID(id string) (*models.Session, error) {
	var sess models.Session
	err := r.db.Where("id = ?", id).First(&sess).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// Revoke marks the session as revoked. Revoking an unknown id is a no-op.
func (r *SessionRepository) Revoke(id string) error {
	return r.db.Model(&models.Session{}).Where("id = ?", id).Update("revoked", true).Error
}
