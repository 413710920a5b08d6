package usecase

import (
	"encoding/json"

	"field-presence-backend/internal/logger"
	"field-presence-backend/internal/model"
	"field-presence-backend/internal/notifier"
	"field-presence-backend/internal/repository"

	"github.com/google/uuid"
)

// AlertDispatcher turns findings into scoped notification records and
// fans them out to whatever out-of-band channels are configured. It is
// strictly best-effort: a full failure here is logged, never returned,
// so a slow mail server can never fail a scoring run or a ping.
type AlertDispatcher struct {
	notifRepo repository.NotificationRepository
	userRepo  repository.UserRepository
	channels  []notifier.Channel
	log       *logger.Logger
}

func NewAlertDispatcher(notifRepo repository.NotificationRepository, userRepo repository.UserRepository, channels []notifier.Channel, log *logger.Logger) *AlertDispatcher {
	return &AlertDispatcher{notifRepo: notifRepo, userRepo: userRepo, channels: channels, log: log}
}

// Dispatch persists one notification for the given scope. Structured data
// is JSON-encoded at this boundary only.
func (d *AlertDispatcher) Dispatch(scopeType string, scopeID uint, severity, title, body string, data map[string]interface{}) {
	payload := "{}"
	if data != nil {
		if b, err := json.Marshal(data); err == nil {
			payload = string(b)
		}
	}

	n := &model.Notification{
		EventID:   uuid.NewString(),
		ScopeType: scopeType,
		ScopeID:   scopeID,
		Severity:  severity,
		Title:     title,
		Body:      body,
		Data:      payload,
	}
	if err := d.notifRepo.Create(n); err != nil {
		d.log.Error("failed to persist notification",
			"scope_type", scopeType, "scope_id", scopeID, "title", title, "error", err)
		return
	}

	d.fanOut(scopeType, scopeID, title, body)
}

// fanOut pushes user-scoped alerts through the configured channels.
// Branch-scoped alerts stay in the notification table for the delivery
// subsystem; only a concrete recipient gets direct channel delivery.
func (d *AlertDispatcher) fanOut(scopeType string, scopeID uint, title, body string) {
	if scopeType != model.ScopeUser || len(d.channels) == 0 {
		return
	}
	user, err := d.userRepo.GetByID(scopeID)
	if err != nil || user.Email == "" {
		return
	}
	for _, ch := range d.channels {
		if err := ch.Send(user.Email, title, body); err != nil {
			d.log.Warn("alert channel delivery failed",
				"user_id", scopeID, "title", title, "error", err)
		}
	}
}
