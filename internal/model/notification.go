package model

import "gorm.io/gorm"

// Notification scopes.
const (
	ScopeUser   = "user"
	ScopeBranch = "branch"
)

// Severities.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityUrgent  = "urgent"
)

// Notification is an alert event persisted for the delivery subsystem to
// pick up. How it reaches the recipient (push, in-app, email) is not this
// service's concern.
type Notification struct {
	gorm.Model
	EventID   string `json:"event_id" gorm:"unique;not null"`
	ScopeType string `json:"scope_type" gorm:"index:idx_notification_scope"`
	ScopeID   uint   `json:"scope_id" gorm:"index:idx_notification_scope"`
	Severity  string `json:"severity"`
	Title     string `json:"title"`
	Body      string `json:"body"`

	// Structured payload, JSON-encoded at the persistence boundary.
	Data string `json:"data"`
}
