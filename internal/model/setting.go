package model

import "gorm.io/gorm"

// Setting is a named runtime toggle (visibility mode, live mode, quiet
// hours...). Values are stored as strings and coerced by the repository.
type Setting struct {
	gorm.Model
	Key   string `json:"key" gorm:"unique;not null"`
	Value string `json:"value"`
}

// Well-known setting keys and their defaults. Callers go through
// SettingRepository so a missing row silently falls back to the default.
const (
	SettingVisibilityMode      = "colleague_visibility_mode" // self | branch | global
	SettingLiveMode            = "live_mode"
	SettingShowNames           = "show_colleague_names"
	SettingColleagueCutoffHour = "colleague_cutoff_hour"
	SettingWorkStartTime       = "work_start_time"
	SettingLookbackDays        = "risk_lookback_days"
)
