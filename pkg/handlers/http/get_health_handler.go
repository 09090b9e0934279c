package http

import (
	"time"

	"github.com/TroHub/ListingGuard/pkg/version"
	"github.com/gofiber/fiber/v2"
)

type getHealthHandler struct {
	models     ModelStatusReader
	thresholds ThresholdsReader
}

func NewGetHealthHandler(models ModelStatusReader, thresholds ThresholdsReader) Handler {
	return &getHealthHandler{
		models:     models,
		thresholds: thresholds,
	}
}

// Handle @Summary Detailed health
// @Description Reports which models are loaded, their breaker state and the active thresholds
// @Tags Service
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/health [get]
func (h *getHealthHandler) Handle(c *fiber.Ctx) error {
	status := h.models.Status()
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":        "healthy",
		"service":       version.AppName,
		"models_loaded": loadedFrom(status),
		"model_states": fiber.Map{
			"price_model":    status.PriceModel,
			"anomaly_model":  status.AnomalyModel,
			"schema_version": status.SchemaVersion,
			"model_version":  status.ModelVersion,
		},
		"thresholds": h.thresholds.Thresholds(),
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}
