package routes

import (
	"field-presence-backend/internal/handler"
	"field-presence-backend/internal/middleware"
	"field-presence-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupNotificationRoutes(app *fiber.App, db *gorm.DB) {
	notifRepo := repository.NewNotificationRepository(db)
	hdl := handler.NewNotificationHandler(notifRepo)

	api := app.Group("/api/notifications", middleware.Auth)
	api.Get("/", hdl.GetMine)
}
