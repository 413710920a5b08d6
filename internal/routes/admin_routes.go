package routes

import (
	"field-presence-backend/internal/handler"
	"field-presence-backend/internal/middleware"
	"field-presence-backend/internal/model"
	"field-presence-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAdminRoutes(app *fiber.App, db *gorm.DB) {
	riskRepo := repository.NewRiskRepository(db)
	userRepo := repository.NewUserRepository(db)
	hdl := handler.NewAdminHandler(riskRepo, userRepo)

	api := app.Group("/api/admin", middleware.Auth, middleware.RequireManager(model.RoleLevelManager))
	api.Get("/risk", hdl.GetRiskOverview)
	api.Get("/influence", hdl.GetInfluenceEdges)
}
