package routes

import (
	"field-presence-backend/internal/handler"
	"field-presence-backend/internal/logger"
	"field-presence-backend/internal/middleware"
	"field-presence-backend/internal/notifier"
	"field-presence-backend/internal/repository"
	"field-presence-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupPresenceRoutes(app *fiber.App, db *gorm.DB, log *logger.Logger, channels []notifier.Channel) {
	userRepo := repository.NewUserRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	attRepo := repository.NewAttendanceRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	dispatcher := usecase.NewAlertDispatcher(notifRepo, userRepo, channels, log)
	presence := usecase.NewPresenceUsecase(attRepo, userRepo, branchRepo, settingRepo, log)
	colleagues := usecase.NewColleagueUsecase(userRepo, attRepo, settingRepo)
	awol := usecase.NewAwolUsecase(userRepo, dispatcher, log)

	hdl := handler.NewPresenceHandler(userRepo, settingRepo, presence, colleagues, awol, log)

	api := app.Group("/api/presence", middleware.Auth)
	api.Post("/ping", hdl.Ping)
}
