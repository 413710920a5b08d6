package model

import (
	"time"

	"gorm.io/gorm"
)

// Attendance statuses.
const (
	StatusPresent = "PRESENT"
	StatusLate    = "LATE"
	StatusAbsent  = "ABSENT"
)

// Check-in methods.
const (
	MethodPassive = "PASSIVE" // opened by the geofence time bridge
	MethodManual  = "MANUAL"  // explicit check-in elsewhere
)

// AttendanceRecord is the single daily record per employee. Date is a
// plain "2006-01-02" string so the (user_id, date) pair can carry a
// uniqueness constraint; the constraint, not application checks, is what
// prevents duplicate records under concurrent pings.
type AttendanceRecord struct {
	gorm.Model
	UserID uint   `json:"user_id" gorm:"uniqueIndex:idx_attendance_user_date;not null"`
	Date   string `json:"date" gorm:"uniqueIndex:idx_attendance_user_date;not null"`

	CheckInTime  time.Time  `json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time"`

	CheckInLat      float64 `json:"check_in_lat"`
	CheckInLng      float64 `json:"check_in_lng"`
	CheckInDistance float64 `json:"check_in_distance"`

	CheckOutLat      *float64 `json:"check_out_lat"`
	CheckOutLng      *float64 `json:"check_out_lng"`
	CheckOutDistance *float64 `json:"check_out_distance"`

	Status        string `json:"status"`
	CheckInMethod string `json:"check_in_method"`
	AutoCheckout  bool   `json:"auto_checkout" gorm:"default:false"`

	LateMinutes     int `json:"late_minutes"`
	OvertimeMinutes int `json:"overtime_minutes"`
	PenaltyPoints   int `json:"penalty_points"`
	WorkMinutes     int `json:"work_minutes"`
}

// IsClosed reports whether the day has been checked out. A closed record
// is immutable to the passive path; only the explicit checkout workflow
// writes CheckOutTime.
func (a *AttendanceRecord) IsClosed() bool {
	return a.CheckOutTime != nil
}
