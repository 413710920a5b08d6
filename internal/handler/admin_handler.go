package handler

import (
	"time"

	"field-presence-backend/internal/model"
	"field-presence-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	riskRepo repository.RiskRepository
	userRepo repository.UserRepository
}

func NewAdminHandler(riskRepo repository.RiskRepository, userRepo repository.UserRepository) *AdminHandler {
	return &AdminHandler{riskRepo: riskRepo, userRepo: userRepo}
}

// GetRiskOverview lists the latest risk scores for the caller's branch
// (defaulting to today's analysis date).
func (h *AdminHandler) GetRiskOverview(c *fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	var branchID *uint
	if raw, ok := c.Locals("branch_id").(float64); ok && raw > 0 {
		id := uint(raw)
		branchID = &id
	}

	scores, err := h.riskRepo.ListScoresByDate(date, branchID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load risk scores"})
	}

	out := make([]fiber.Map, 0, len(scores))
	for i := range scores {
		s := &scores[i]
		out = append(out, fiber.Map{
			"user_id":                 s.UserID,
			"analysis_date":           s.AnalysisDate,
			"risk_score":              s.RiskScore,
			"risk_level":              s.RiskLevel,
			"resignation_probability": s.ResignationProbability,
			"late_rate":               s.LateRate,
			"absent_rate":             s.AbsentRate,
			"trend_direction":         s.TrendDirection,
			"worst_weekday":           s.WorstWeekday,
			"risk_factors":            s.RiskFactors(),
			"lookback_days":           s.LookbackDays,
		})
	}

	return c.JSON(fiber.Map{
		"message": "risk overview loaded",
		"date":    date,
		"data":    out,
	})
}

// GetInfluenceEdges lists co-late edges touching the caller's branch.
// These are correlations over shared late days, not causal claims, and
// the response says so.
func (h *AdminHandler) GetInfluenceEdges(c *fiber.Ctx) error {
	var branchID uint
	if raw, ok := c.Locals("branch_id").(float64); ok {
		branchID = uint(raw)
	}

	users, err := h.userRepo.ListActiveByBranch(branchID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load branch employees"})
	}
	userIDs := make([]uint, 0, len(users))
	for i := range users {
		userIDs = append(userIDs, users[i].ID)
	}

	var edges []model.InfluenceEdge
	if len(userIDs) > 0 {
		edges, err = h.riskRepo.ListEdgesForUsers(userIDs)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load influence edges"})
		}
	}

	return c.JSON(fiber.Map{
		"message": "influence edges loaded",
		"note":    "edges are correlational (shared late days), not causal",
		"data":    edges,
	})
}
