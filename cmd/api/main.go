package main

import (
	"log"

	"field-presence-backend/config"
	applogger "field-presence-backend/internal/logger"
	"field-presence-backend/internal/notifier"
	"field-presence-backend/internal/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file found, using system environment variables.")
	}

	zlog, err := applogger.New(config.GetEnv("APP_ENV", "dev"))
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}
	defer zlog.Sync()

	if err := config.ConnectDB(); err != nil {
		zlog.Error("database connection failed", "error", err)
		log.Fatal(err)
	}
	zlog.Info("database connected")

	app := fiber.New()
	app.Use(cors.New())
	app.Use(fiberlogger.New())

	var channels []notifier.Channel
	if host := config.GetEnv("SMTP_HOST", ""); host != "" {
		channels = append(channels, notifier.NewEmailChannel(
			host,
			config.GetEnvAsInt("SMTP_PORT", 587),
			config.GetEnv("SMTP_USERNAME", ""),
			config.GetEnv("SMTP_PASSWORD", ""),
			config.GetEnv("SMTP_FROM", "alerts@localhost"),
		))
	}

	routes.SetupPresenceRoutes(app, config.DB, zlog, channels)
	routes.SetupAttendanceRoutes(app, config.DB)
	routes.SetupNotificationRoutes(app, config.DB)
	routes.SetupAdminRoutes(app, config.DB)

	addr := ":" + config.GetEnv("PORT", "3000")
	zlog.Info("server ready", "addr", addr)
	if err := app.Listen(addr); err != nil {
		log.Fatal(err)
	}
}
