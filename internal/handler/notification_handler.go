package handler

import (
	"field-presence-backend/internal/model"
	"field-presence-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	notifRepo repository.NotificationRepository
}

func NewNotificationHandler(notifRepo repository.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notifRepo: notifRepo}
}

// GetMine lists the newest alerts addressed to the authenticated user.
func (h *NotificationHandler) GetMine(c *fiber.Ctx) error {
	userID := uint(c.Locals("user_id").(float64))

	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	notifs, err := h.notifRepo.ListForScope(model.ScopeUser, userID, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load notifications"})
	}

	return c.JSON(fiber.Map{
		"message": "notifications loaded",
		"data":    notifs,
	})
}
