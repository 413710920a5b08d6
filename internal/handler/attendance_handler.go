package handler

import (
	"time"

	"field-presence-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type AttendanceHandler struct {
	attRepo repository.AttendanceRepository
}

func NewAttendanceHandler(attRepo repository.AttendanceRepository) *AttendanceHandler {
	return &AttendanceHandler{attRepo: attRepo}
}

func (h *AttendanceHandler) GetHistory(c *fiber.Ctx) error {
	userID := uint(c.Locals("user_id").(float64))

	limit := c.QueryInt("limit", 31)
	if limit < 1 || limit > 100 {
		limit = 31
	}

	history, err := h.attRepo.GetHistory(userID, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load history"})
	}

	return c.JSON(fiber.Map{
		"message": "history loaded",
		"data":    history,
	})
}

func (h *AttendanceHandler) GetToday(c *fiber.Ctx) error {
	userID := uint(c.Locals("user_id").(float64))
	today := time.Now().Format("2006-01-02")

	rec, err := h.attRepo.GetByUserAndDate(userID, today)
	if err != nil {
		// No record yet is a normal state, not a server error.
		return c.JSON(fiber.Map{
			"message": "no attendance record today",
			"status":  "NONE",
			"data":    nil,
		})
	}

	status := "OPEN"
	if rec.IsClosed() {
		status = "CLOSED"
	}
	return c.JSON(fiber.Map{
		"message": "attendance record found",
		"status":  status,
		"data":    rec,
	})
}
