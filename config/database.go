package config

import (
	"fmt"

	"field-presence-backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDB opens the MySQL connection and migrates the schema. The
// unique indexes created here — (user_id, date) on attendance records,
// (user_id, analysis_date) on risk scores, the pair key on influence
// edges — are load-bearing: the ingestion and batch paths rely on them
// for race safety, not on application-level checks.
func ConnectDB() error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		GetEnv("DB_USER", "root"),
		GetEnv("DB_PASSWORD", ""),
		GetEnv("DB_HOST", "127.0.0.1"),
		GetEnv("DB_PORT", "3306"),
		GetEnv("DB_NAME", "field_presence"),
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		// Map driver duplicate-key errors to gorm.ErrDuplicatedKey so
		// callers can treat "record already exists" as a branch, not a
		// failure.
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
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
		return fmt.Errorf("migrating schema: %w", err)
	}

	DB = db
	return nil
}
