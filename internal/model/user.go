package model

import (
	"time"

	"gorm.io/gorm"
)

// Role levels. Anything >= RoleLevelManager is considered managerial:
// skipped by the risk analyzer, targeted by its alerts.
const (
	RoleLevelEmployee   = 1
	RoleLevelSupervisor = 2
	RoleLevelManager    = 3
	RoleLevelDirector   = 4
)

type User struct {
	gorm.Model
	Name       string     `json:"name"`
	EmployeeNo string     `json:"employee_no" gorm:"column:employee_no;unique;not null"`
	Password   string     `json:"-"`
	Email      string     `json:"email"`
	BranchID   *uint      `json:"branch_id"`
	RoleLevel  int        `json:"role_level" gorm:"default:1"`
	IsActive   bool       `json:"is_active" gorm:"default:true"`
	HiredAt    *time.Time `json:"hired_at"`

	// Reward point balance, maintained by the shop/wallet subsystem.
	// The analyzer only reads it as a morale signal.
	CurrentPoints int `json:"current_points"`

	// Last known position, refreshed by the presence ping.
	LastLatitude   *float64   `json:"last_latitude"`
	LastLongitude  *float64   `json:"last_longitude"`
	LastActivityAt *time.Time `json:"last_activity_at"`
	IsOnline       bool       `json:"is_online" gorm:"default:false"`

	// Cached summary of the latest risk analysis, for fast lookup.
	RiskLevel              string `json:"risk_level"`
	TrendDirection         string `json:"trend_direction"`
	ResignationProbability int    `json:"resignation_probability"`

	Branch *Branch `json:"branch,omitempty" gorm:"foreignKey:BranchID"`
}

// TenureDays is the number of whole days since hiring, 0 if unknown.
func (u *User) TenureDays(now time.Time) int {
	if u.HiredAt == nil {
		return 0
	}
	return int(now.Sub(*u.HiredAt).Hours() / 24)
}
