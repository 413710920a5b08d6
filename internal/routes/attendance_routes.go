package routes

import (
	"field-presence-backend/internal/handler"
	"field-presence-backend/internal/middleware"
	"field-presence-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAttendanceRoutes(app *fiber.App, db *gorm.DB) {
	attRepo := repository.NewAttendanceRepository(db)
	hdl := handler.NewAttendanceHandler(attRepo)

	api := app.Group("/api/attendance", middleware.Auth)
	api.Get("/history", hdl.GetHistory)
	api.Get("/today", hdl.GetToday)
}
