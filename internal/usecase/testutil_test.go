package usecase

import (
	"fmt"
	"testing"
	"time"

	"field-presence-backend/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory sqlite database with the full
// schema migrated. The shared-cache DSN keeps gorm's pooled connections
// on the same in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Branch{},
		&model.User{},
		&model.AttendanceRecord{},
		&model.RiskScore{},
		&model.InfluenceEdge{},
		&model.IncidentEvent{},
		&model.Notification{},
		&model.Setting{},
	); err != nil {
		t.Fatalf("migrating test schema: %v", err)
	}
	return db
}

func seedBranch(t *testing.T, db *gorm.DB) *model.Branch {
	t.Helper()
	branch := &model.Branch{
		Name:            "Riyadh HQ",
		Latitude:        24.7136,
		Longitude:       46.6753,
		GeofenceRadiusM: 20,
		IsActive:        true,
	}
	if err := db.Create(branch).Error; err != nil {
		t.Fatalf("seeding branch: %v", err)
	}
	return branch
}

func seedUser(t *testing.T, db *gorm.DB, name, no string, branchID *uint, roleLevel int, hired time.Time, points int) *model.User {
	t.Helper()
	user := &model.User{
		Name:          name,
		EmployeeNo:    no,
		BranchID:      branchID,
		RoleLevel:     roleLevel,
		IsActive:      true,
		HiredAt:       &hired,
		CurrentPoints: points,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seeding user %s: %v", no, err)
	}
	return user
}
