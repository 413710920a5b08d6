package repository

import (
	"strconv"
	"strings"

	"field-presence-backend/internal/model"

	"gorm.io/gorm"
)

// SettingRepository is the runtime configuration store. Every getter
// takes a fallback so a missing or unparsable row never breaks a caller.
type SettingRepository interface {
	GetString(key, fallback string) string
	GetBool(key string, fallback bool) bool
	GetInt(key string, fallback int) int
	Set(key, value string) error
}

type settingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db}
}

func (r *settingRepository) GetString(key, fallback string) string {
	var setting model.Setting
	if err := r.db.Where("key = ?", key).First(&setting).Error; err != nil {
		return fallback
	}
	return setting.Value
}

func (r *settingRepository) GetBool(key string, fallback bool) bool {
	raw := r.GetString(key, "")
	switch strings.ToLower(raw) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	}
	return fallback
}

func (r *settingRepository) GetInt(key string, fallback int) int {
	raw := r.GetString(key, "")
	if v, err := strconv.Atoi(raw); err == nil {
		return v
	}
	return fallback
}

func (r *settingRepository) Set(key, value string) error {
	var setting model.Setting
	err := r.db.Where("key = ?", key).First(&setting).Error
	if err != nil {
		return r.db.Create(&model.Setting{Key: key, Value: value}).Error
	}
	setting.Value = value
	return r.db.Save(&setting).Error
}
