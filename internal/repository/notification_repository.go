package repository

import (
	"field-presence-backend/internal/model"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(n *model.Notification) error
	ListForScope(scopeType string, scopeID uint, limit int) ([]model.Notification, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db}
}

func (r *notificationRepository) Create(n *model.Notification) error {
	return r.db.Create(n).Error
}

func (r *notificationRepository) ListForScope(scopeType string, scopeID uint, limit int) ([]model.Notification, error) {
	var list []model.Notification
	err := r.db.Where("scope_type = ? AND scope_id = ?", scopeType, scopeID).
		Order("created_at desc").Limit(limit).Find(&list).Error
	return list, err
}
