package usecase

import (
	"testing"
	"time"

	"field-presence-backend/internal/model"
	"field-presence-backend/internal/repository"

	"gorm.io/gorm"
)

func newColleagueFixture(t *testing.T) (*ColleagueUsecase, *gorm.DB, *model.Branch) {
	t.Helper()
	db := newTestDB(t)
	branch := seedBranch(t, db)
	u := NewColleagueUsecase(
		repository.NewUserRepository(db),
		repository.NewAttendanceRepository(db),
		repository.NewSettingRepository(db),
	)
	return u, db, branch
}

// setPosition marks a user as recently seen at the given coordinates.
func setPosition(t *testing.T, db *gorm.DB, userID uint, lat, lng float64, at time.Time) {
	t.Helper()
	err := db.Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"last_latitude":    lat,
		"last_longitude":   lng,
		"last_activity_at": at,
		"is_online":        true,
	}).Error
	if err != nil {
		t.Fatal(err)
	}
}

func TestVisibleColleaguesBranchScope(t *testing.T) {
	u, db, branch := newColleagueFixture(t)
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.Local)
	u.now = func() time.Time { return now }

	hired := now.AddDate(-1, 0, 0)
	requester := seedUser(t, db, "Sara", "EMP-0002", &branch.ID, model.RoleLevelEmployee, hired, 300)
	sameBranch := seedUser(t, db, "Omar", "EMP-0003", &branch.ID, model.RoleLevelEmployee, hired, 300)

	other := &model.Branch{Name: "Jeddah", Latitude: 21.4858, Longitude: 39.1925, GeofenceRadiusM: 20, IsActive: true}
	if err := db.Create(other).Error; err != nil {
		t.Fatal(err)
	}
	otherBranch := seedUser(t, db, "Lina", "EMP-0004", &other.ID, model.RoleLevelEmployee, hired, 300)

	setPosition(t, db, requester.ID, branchLat, branchLng, now)
	setPosition(t, db, sameBranch.ID, branchLat, branchLng, now.Add(-10*time.Minute))
	setPosition(t, db, otherBranch.ID, 21.4858, 39.1925, now.Add(-5*time.Minute))

	colleagues, err := u.VisibleColleagues(requester)
	if err != nil {
		t.Fatalf("VisibleColleagues: %v", err)
	}
	if len(colleagues) != 1 {
		t.Fatalf("colleague count = %d, want 1 (branch scope)", len(colleagues))
	}
	col := colleagues[0]
	if col.UserID != sameBranch.ID {
		t.Errorf("visible colleague = %d, want %d", col.UserID, sameBranch.ID)
	}
	if col.Name != "Omar" {
		t.Errorf("name = %q, want shown by default", col.Name)
	}
	if !col.IsWithinGeofence {
		t.Error("colleague at branch center should be within geofence")
	}
	if col.DistanceFromBranch != 0 {
		t.Errorf("distance_from_branch = %f, want 0", col.DistanceFromBranch)
	}
}

func TestVisibleColleaguesGlobalScope(t *testing.T) {
	u, db, branch := newColleagueFixture(t)
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.Local)
	u.now = func() time.Time { return now }

	repository.NewSettingRepository(db).Set(model.SettingVisibilityMode, VisibilityGlobal)

	hired := now.AddDate(-1, 0, 0)
	requester := seedUser(t, db, "Sara", "EMP-0002", &branch.ID, model.RoleLevelEmployee, hired, 300)

	other := &model.Branch{Name: "Jeddah", Latitude: 21.4858, Longitude: 39.1925, GeofenceRadiusM: 20, IsActive: true}
	if err := db.Create(other).Error; err != nil {
		t.Fatal(err)
	}
	remote := seedUser(t, db, "Lina", "EMP-0004", &other.ID, model.RoleLevelEmployee, hired, 300)
	setPosition(t, db, remote.ID, 21.4858, 39.1925, now.Add(-5*time.Minute))

	colleagues, err := u.VisibleColleagues(requester)
	if err != nil {
		t.Fatalf("VisibleColleagues: %v", err)
	}
	if len(colleagues) != 1 || colleagues[0].UserID != remote.ID {
		t.Fatalf("global scope should surface the other-branch colleague, got %v", colleagues)
	}
}

func TestVisibleColleaguesSelfScopeReturnsNobody(t *testing.T) {
	u, db, branch := newColleagueFixture(t)
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.Local)
	u.now = func() time.Time { return now }

	repository.NewSettingRepository(db).Set(model.SettingVisibilityMode, VisibilitySelf)

	hired := now.AddDate(-1, 0, 0)
	requester := seedUser(t, db, "Sara", "EMP-0002", &branch.ID, model.RoleLevelEmployee, hired, 300)
	peer := seedUser(t, db, "Omar", "EMP-0003", &branch.ID, model.RoleLevelEmployee, hired, 300)
	setPosition(t, db, peer.ID, branchLat, branchLng, now)

	colleagues, err := u.VisibleColleagues(requester)
	if err != nil {
		t.Fatal(err)
	}
	if len(colleagues) != 0 {
		t.Errorf("self scope surfaced %d colleagues", len(colleagues))
	}
}

func TestCheckedOutColleagueIsHidden(t *testing.T) {
	u, db, branch := newColleagueFixture(t)
	now := time.Date(2026, 8, 28, 17, 0, 0, 0, time.Local)
	u.now = func() time.Time { return now }

	hired := now.AddDate(-1, 0, 0)
	requester := seedUser(t, db, "Sara", "EMP-0002", &branch.ID, model.RoleLevelEmployee, hired, 300)
	peer := seedUser(t, db, "Omar", "EMP-0003", &branch.ID, model.RoleLevelEmployee, hired, 300)

	// Fresh activity, but the day is already closed out.
	setPosition(t, db, peer.ID, branchLat, branchLng, now.Add(-2*time.Minute))
	checkout := now.Add(-30 * time.Minute)
	checkin := now.Add(-8 * time.Hour)
	rec := &model.AttendanceRecord{
		UserID: peer.ID, Date: "2026-08-28",
		CheckInTime: checkin, CheckOutTime: &checkout,
		Status: model.StatusPresent,
	}
	if err := db.Create(rec).Error; err != nil {
		t.Fatal(err)
	}

	colleagues, err := u.VisibleColleagues(requester)
	if err != nil {
		t.Fatal(err)
	}
	if len(colleagues) != 0 {
		t.Error("checked-out colleague still surfaced despite fresh activity")
	}
}

func TestStaleColleagueIsHidden(t *testing.T) {
	u, db, branch := newColleagueFixture(t)
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.Local)
	u.now = func() time.Time { return now }

	hired := now.AddDate(-1, 0, 0)
	requester := seedUser(t, db, "Sara", "EMP-0002", &branch.ID, model.RoleLevelEmployee, hired, 300)
	peer := seedUser(t, db, "Omar", "EMP-0003", &branch.ID, model.RoleLevelEmployee, hired, 300)

	// No attendance record, last seen three hours ago: outside the
	// freshness window.
	setPosition(t, db, peer.ID, branchLat, branchLng, now.Add(-3*time.Hour))

	colleagues, err := u.VisibleColleagues(requester)
	if err != nil {
		t.Fatal(err)
	}
	if len(colleagues) != 0 {
		t.Error("stale colleague surfaced")
	}
}

func TestQuietHourCutoff(t *testing.T) {
	u, db, branch := newColleagueFixture(t)
	now := time.Date(2026, 8, 28, 23, 30, 0, 0, time.Local)
	u.now = func() time.Time { return now }

	hired := now.AddDate(-1, 0, 0)
	requester := seedUser(t, db, "Sara", "EMP-0002", &branch.ID, model.RoleLevelEmployee, hired, 300)
	peer := seedUser(t, db, "Omar", "EMP-0003", &branch.ID, model.RoleLevelEmployee, hired, 300)
	setPosition(t, db, peer.ID, branchLat, branchLng, now.Add(-time.Minute))

	colleagues, err := u.VisibleColleagues(requester)
	if err != nil {
		t.Fatal(err)
	}
	if len(colleagues) != 0 {
		t.Error("colleagues surfaced after the quiet-hour cutoff")
	}
}

func TestNamesRedactedWhenDisabled(t *testing.T) {
	u, db, branch := newColleagueFixture(t)
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.Local)
	u.now = func() time.Time { return now }

	repository.NewSettingRepository(db).Set(model.SettingShowNames, "false")

	hired := now.AddDate(-1, 0, 0)
	requester := seedUser(t, db, "Sara", "EMP-0002", &branch.ID, model.RoleLevelEmployee, hired, 300)
	peer := seedUser(t, db, "Omar", "EMP-0003", &branch.ID, model.RoleLevelEmployee, hired, 300)
	setPosition(t, db, peer.ID, branchLat, branchLng, now.Add(-time.Minute))

	colleagues, err := u.VisibleColleagues(requester)
	if err != nil {
		t.Fatal(err)
	}
	if len(colleagues) != 1 {
		t.Fatalf("colleague count = %d, want 1", len(colleagues))
	}
	if colleagues[0].Name != "" {
		t.Errorf("name = %q, want redacted", colleagues[0].Name)
	}
}

func TestColleaguesOrderedByRecency(t *testing.T) {
	u, db, branch := newColleagueFixture(t)
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.Local)
	u.now = func() time.Time { return now }

	hired := now.AddDate(-1, 0, 0)
	requester := seedUser(t, db, "Sara", "EMP-0002", &branch.ID, model.RoleLevelEmployee, hired, 300)
	older := seedUser(t, db, "Omar", "EMP-0003", &branch.ID, model.RoleLevelEmployee, hired, 300)
	newer := seedUser(t, db, "Lina", "EMP-0004", &branch.ID, model.RoleLevelEmployee, hired, 300)
	setPosition(t, db, older.ID, branchLat, branchLng, now.Add(-45*time.Minute))
	setPosition(t, db, newer.ID, branchLat, branchLng, now.Add(-2*time.Minute))

	colleagues, err := u.VisibleColleagues(requester)
	if err != nil {
		t.Fatal(err)
	}
	if len(colleagues) != 2 {
		t.Fatalf("colleague count = %d, want 2", len(colleagues))
	}
	if colleagues[0].UserID != newer.ID {
		t.Error("most recently active colleague not first")
	}
}
