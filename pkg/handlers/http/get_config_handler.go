package http

import (
	"github.com/TroHub/ListingGuard/pkg/moderation/decision"
	"github.com/TroHub/ListingGuard/pkg/moderation/predictor"
	"github.com/gofiber/fiber/v2"
)

type getConfigHandler struct {
	models     ModelStatusReader
	thresholds ThresholdsReader
}

func NewGetConfigHandler(models ModelStatusReader, thresholds ThresholdsReader) Handler {
	return &getConfigHandler{
		models:     models,
		thresholds: thresholds,
	}
}

// Handle @Summary Current moderation configuration
// @Tags Config
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/config [get]
func (h *getConfigHandler) Handle(c *fiber.Ctx) error {
	status := h.models.Status()
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"thresholds": h.thresholds.Thresholds(),
		"weights": fiber.Map{
			"rules": decision.RuleWeight,
			"ml":    decision.PriceWeight,
		},
		"models_status": fiber.Map{
			"price_model_loaded":   status.PriceModel != predictor.Absent,
			"anomaly_model_loaded": status.AnomalyModel != predictor.Absent,
			"scaler_loaded":        status.Scaler,
			"features":             status.Features,
		},
	})
}
