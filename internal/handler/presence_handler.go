package handler

import (
	"time"

	"field-presence-backend/internal/logger"
	"field-presence-backend/internal/model"
	"field-presence-backend/internal/repository"
	"field-presence-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type PresenceHandler struct {
	userRepo   repository.UserRepository
	settings   repository.SettingRepository
	presence   *usecase.PresenceUsecase
	colleagues *usecase.ColleagueUsecase
	awol       *usecase.AwolUsecase
	log        *logger.Logger
}

func NewPresenceHandler(userRepo repository.UserRepository, settings repository.SettingRepository, presence *usecase.PresenceUsecase, colleagues *usecase.ColleagueUsecase, awol *usecase.AwolUsecase, log *logger.Logger) *PresenceHandler {
	return &PresenceHandler{
		userRepo:   userRepo,
		settings:   settings,
		presence:   presence,
		colleagues: colleagues,
		awol:       awol,
		log:        log,
	}
}

type PingRequest struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Accuracy  *float64 `json:"accuracy"`
	AwolAlert bool     `json:"awol_alert"`
	Offline   bool     `json:"offline"`
}

// Ping is the single inbound presence endpoint: refresh last-seen, run
// the geofence time bridge, surface visible colleagues.
func (h *PresenceHandler) Ping(c *fiber.Ctx) error {
	userID := uint(c.Locals("user_id").(float64))

	var req PingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid ping payload"})
	}

	user, err := h.userRepo.GetByID(userID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unknown user"})
	}

	now := time.Now()
	ping := usecase.LocationPing{
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		Accuracy:   req.Accuracy,
		ReceivedAt: now,
		Offline:    req.Offline,
	}

	if err := h.presence.Ingest(user, ping); err != nil {
		h.log.Error("presence ingest failed", "user_id", userID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not process ping"})
	}

	// Client-observed excursion alert. Never blocks the response.
	if req.AwolAlert {
		h.awol.Report(userID, req.Latitude, req.Longitude, now)
	}

	colleagues, err := h.colleagues.VisibleColleagues(user)
	if err != nil {
		h.log.Error("colleague lookup failed", "user_id", userID, "error", err)
		colleagues = []usecase.Colleague{}
	}

	return c.JSON(fiber.Map{
		"colleagues":       colleagues,
		"colleagues_count": len(colleagues),
		"live_mode":        h.settings.GetBool(model.SettingLiveMode, true),
		"server_time":      now.Format(time.RFC3339),
	})
}
