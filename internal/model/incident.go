package model

import (
	"time"

	"gorm.io/gorm"
)

// IncidentEvent records a disciplinary/trap event raised by the wider
// system (e.g. a failed spot check). The analyzer counts them; it never
// creates them.
type IncidentEvent struct {
	gorm.Model
	UserID     uint      `json:"user_id" gorm:"index;not null"`
	Kind       string    `json:"kind"`
	OccurredAt time.Time `json:"occurred_at" gorm:"index"`
	Note       string    `json:"note"`
}
