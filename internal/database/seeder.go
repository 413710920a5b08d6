package database

import (
	"fmt"
	"time"

	"field-presence-backend/internal/model"
	"field-presence-backend/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAll loads a small development dataset: one geofenced branch, a
// manager and a few field employees, plus the settings defaults.
func SeedAll(db *gorm.DB) error {
	branch := model.Branch{
		Name:            "Riyadh HQ",
		Address:         "King Fahd Road, Riyadh",
		Latitude:        24.7136,
		Longitude:       46.6753,
		GeofenceRadiusM: 20,
		IsActive:        true,
	}
	if err := db.FirstOrCreate(&branch, model.Branch{Name: branch.Name}).Error; err != nil {
		return fmt.Errorf("seeding branch: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	hired := time.Now().AddDate(-1, 0, 0)
	users := []model.User{
		{Name: "Fahad Al-Qahtani", EmployeeNo: "EMP-0001", Email: "fahad@example.com", RoleLevel: model.RoleLevelManager, CurrentPoints: 500},
		{Name: "Sara Al-Otaibi", EmployeeNo: "EMP-0002", Email: "sara@example.com", RoleLevel: model.RoleLevelEmployee, CurrentPoints: 320},
		{Name: "Omar Hassan", EmployeeNo: "EMP-0003", Email: "omar@example.com", RoleLevel: model.RoleLevelEmployee, CurrentPoints: 180},
		{Name: "Lina Farouk", EmployeeNo: "EMP-0004", Email: "lina@example.com", RoleLevel: model.RoleLevelEmployee, CurrentPoints: 40},
	}
	for i := range users {
		users[i].Password = string(hash)
		users[i].BranchID = &branch.ID
		users[i].IsActive = true
		users[i].HiredAt = &hired
		if err := db.FirstOrCreate(&users[i], model.User{EmployeeNo: users[i].EmployeeNo}).Error; err != nil {
			return fmt.Errorf("seeding user %s: %w", users[i].EmployeeNo, err)
		}
	}

	settings := repository.NewSettingRepository(db)
	defaults := map[string]string{
		model.SettingVisibilityMode:      "branch",
		model.SettingLiveMode:            "true",
		model.SettingShowNames:           "true",
		model.SettingColleagueCutoffHour: "23",
		model.SettingWorkStartTime:       "09:00",
		model.SettingLookbackDays:        "30",
	}
	for key, value := range defaults {
		var existing model.Setting
		if err := db.Where("key = ?", key).First(&existing).Error; err == nil {
			continue // never overwrite a tuned setting
		}
		if err := settings.Set(key, value); err != nil {
			return fmt.Errorf("seeding setting %s: %w", key, err)
		}
	}

	return nil
}
