package repository

import (
	"time"

	"field-presence-backend/internal/model"

	"gorm.io/gorm"
)

type IncidentRepository interface {
	Create(event *model.IncidentEvent) error
	CountForUserSince(userID uint, since time.Time) (int64, error)
}

type incidentRepository struct {
	db *gorm.DB
}

func NewIncidentRepository(db *gorm.DB) IncidentRepository {
	return &incidentRepository{db}
}

func (r *incidentRepository) Create(event *model.IncidentEvent) error {
	return r.db.Create(event).Error
}

func (r *incidentRepository) CountForUserSince(userID uint, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.IncidentEvent{}).
		Where("user_id = ? AND occurred_at >= ?", userID, since).
		Count(&count).Error
	return count, err
}
