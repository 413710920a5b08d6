package usecase

import (
	"encoding/json"
	"testing"
	"time"

	"field-presence-backend/internal/logger"
	"field-presence-backend/internal/model"
	"field-presence-backend/internal/repository"
)

func TestAwolReportRaisesBranchAlert(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, db)
	hired := time.Now().AddDate(-1, 0, 0)
	user := seedUser(t, db, "Omar", "EMP-0003", &branch.ID, model.RoleLevelEmployee, hired, 300)

	userRepo := repository.NewUserRepository(db)
	dispatcher := NewAlertDispatcher(repository.NewNotificationRepository(db), userRepo, nil, logger.NewNop())
	awol := NewAwolUsecase(userRepo, dispatcher, logger.NewNop())

	at := time.Date(2026, 8, 28, 14, 12, 0, 0, time.Local)
	awol.Report(user.ID, 24.7000, 46.6500, at)

	var alerts []model.Notification
	if err := db.Where("scope_type = ? AND scope_id = ?", model.ScopeBranch, branch.ID).Find(&alerts).Error; err != nil {
		t.Fatal(err)
	}
	if len(alerts) != 1 {
		t.Fatalf("branch alerts = %d, want 1", len(alerts))
	}
	alert := alerts[0]
	if alert.Severity != model.SeverityWarning {
		t.Errorf("severity = %q, want warning", alert.Severity)
	}
	if alert.EventID == "" {
		t.Error("alert missing event id")
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(alert.Data), &data); err != nil {
		t.Fatalf("alert data is not valid JSON: %v", err)
	}
	if data["latitude"] != 24.7000 {
		t.Errorf("reported latitude = %v, want 24.7", data["latitude"])
	}
}

func TestAwolReportForUnknownUserIsSilent(t *testing.T) {
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	dispatcher := NewAlertDispatcher(repository.NewNotificationRepository(db), userRepo, nil, logger.NewNop())
	awol := NewAwolUsecase(userRepo, dispatcher, logger.NewNop())

	// Must not panic or create anything; the ping response never waits
	// on this path.
	awol.Report(9999, 24.7, 46.7, time.Now())

	var n int64
	db.Model(&model.Notification{}).Count(&n)
	if n != 0 {
		t.Errorf("notifications = %d, want 0", n)
	}
}
