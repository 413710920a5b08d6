package repository

import (
	"time"

	"field-presence-backend/internal/model"

	"gorm.io/gorm"
)

type AttendanceRepository interface {
	Create(rec *model.AttendanceRecord) error
	GetByUserAndDate(userID uint, date string) (*model.AttendanceRecord, error)
	UpdateLocation(recordID uint, lat, lng, distance float64, at time.Time) error
	GetHistory(userID uint, limit int) ([]model.AttendanceRecord, error)
	ListForUserSince(userID uint, fromDate string) ([]model.AttendanceRecord, error)
	ListByBranchSince(branchID uint, fromDate string) ([]model.AttendanceRecord, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db}
}

// Create inserts the daily record. The (user_id, date) unique index is
// the real guard against a concurrent ping creating a duplicate; callers
// treat a duplicate-key error as "record already exists, take the update
// path".
func (r *attendanceRepository) Create(rec *model.AttendanceRecord) error {
	return r.db.Create(rec).Error
}

func (r *attendanceRepository) GetByUserAndDate(userID uint, date string) (*model.AttendanceRecord, error) {
	var rec model.AttendanceRecord
	err := r.db.Where("user_id = ? AND date = ?", userID, date).First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// UpdateLocation refreshes the check-in position of an open record in a
// single UPDATE. The check_out_time IS NULL guard makes the write a no-op
// if an explicit checkout landed in between, so the passive path can
// never clobber a closed record.
func (r *attendanceRepository) UpdateLocation(recordID uint, lat, lng, distance float64, at time.Time) error {
	return r.db.Model(&model.AttendanceRecord{}).
		Where("id = ? AND check_out_time IS NULL", recordID).
		Updates(map[string]interface{}{
			"check_in_lat":      lat,
			"check_in_lng":      lng,
			"check_in_distance": distance,
			"updated_at":        at,
		}).Error
}

func (r *attendanceRepository) GetHistory(userID uint, limit int) ([]model.AttendanceRecord, error) {
	var history []model.AttendanceRecord
	err := r.db.Where("user_id = ?", userID).
		Order("date desc").Limit(limit).Find(&history).Error
	return history, err
}

func (r *attendanceRepository) ListForUserSince(userID uint, fromDate string) ([]model.AttendanceRecord, error) {
	var list []model.AttendanceRecord
	err := r.db.Where("user_id = ? AND date >= ?", userID, fromDate).
		Order("date asc").Find(&list).Error
	return list, err
}

func (r *attendanceRepository) ListByBranchSince(branchID uint, fromDate string) ([]model.AttendanceRecord, error) {
	var list []model.AttendanceRecord
	err := r.db.Select("attendance_records.*").
		Joins("JOIN users ON users.id = attendance_records.user_id").
		Where("users.branch_id = ? AND attendance_records.date >= ?", branchID, fromDate).
		Find(&list).Error
	return list, err
}
