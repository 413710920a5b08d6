package repository

import (
	"time"

	"field-presence-backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	GetByID(id uint) (*model.User, error)
	ListActive() ([]model.User, error)
	ListActiveByBranch(branchID uint) ([]model.User, error)
	ListActiveNonManagerial() ([]model.User, error)
	ListManagersFor(branchID uint) ([]model.User, error)
	UpdatePresence(userID uint, lat, lng *float64, at time.Time, online bool) error
	UpdateRiskSummary(userID uint, level, trend string, resignation int) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db}
}

func (r *userRepository) GetByID(id uint) (*model.User, error) {
	var user model.User
	err := r.db.Preload("Branch").First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ListActive() ([]model.User, error) {
	var users []model.User
	err := r.db.Preload("Branch").Where("is_active = ?", true).Find(&users).Error
	return users, err
}

func (r *userRepository) ListActiveByBranch(branchID uint) ([]model.User, error) {
	var users []model.User
	err := r.db.Preload("Branch").
		Where("branch_id = ? AND is_active = ?", branchID, true).
		Find(&users).Error
	return users, err
}

func (r *userRepository) ListActiveNonManagerial() ([]model.User, error) {
	var users []model.User
	err := r.db.Where("is_active = ? AND role_level < ?", true, model.RoleLevelManager).
		Find(&users).Error
	return users, err
}

// ListManagersFor returns the managers responsible for a branch: same
// branch with a managerial role, plus anyone at director level or above
// regardless of branch.
func (r *userRepository) ListManagersFor(branchID uint) ([]model.User, error) {
	var managers []model.User
	err := r.db.Where("is_active = ?", true).
		Where("(branch_id = ? AND role_level >= ?) OR role_level >= ?",
			branchID, model.RoleLevelManager, model.RoleLevelDirector).
		Find(&managers).Error
	return managers, err
}

// UpdatePresence refreshes the last-seen fields. Position pointers may be
// nil (out-of-range coordinates), in which case only activity is touched.
func (r *userRepository) UpdatePresence(userID uint, lat, lng *float64, at time.Time, online bool) error {
	updates := map[string]interface{}{
		"last_activity_at": at,
		"is_online":        online,
	}
	if lat != nil && lng != nil {
		updates["last_latitude"] = *lat
		updates["last_longitude"] = *lng
	}
	return r.db.Model(&model.User{}).Where("id = ?", userID).Updates(updates).Error
}

func (r *userRepository) UpdateRiskSummary(userID uint, level, trend string, resignation int) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"risk_level":              level,
		"trend_direction":         trend,
		"resignation_probability": resignation,
	}).Error
}
