package http

import (
	"fmt"

	appModeration "github.com/TroHub/ListingGuard/pkg/app/moderation"
	"github.com/TroHub/ListingGuard/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type batchModerateHandler struct {
	logger       *logrus.Logger
	service      appModeration.Service
	maxBatchSize int
}

func NewBatchModerateHandler(logger *logrus.Logger, service appModeration.Service, maxBatchSize int) Handler {
	return &batchModerateHandler{
		logger:       logger,
		service:      service,
		maxBatchSize: maxBatchSize,
	}
}

// Handle @Summary Moderate a batch of listings
// @Description Moderates every listing independently. A broken entry becomes a failed item, never a failed request.
// @Tags Moderation
// @Accept json
// @Produce json
// @Param request body request.BatchModerateRequest true "Listings to moderate"
// @Success 200 {object} moderation.BatchSummary
// @Failure 400 {object} map[string]interface{} "Missing properties, not an array, or too many items"
// @Router /api/moderate/batch [post]
func (h *batchModerateHandler) Handle(c *fiber.Ctx) error {
	var req request.BatchModerateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid request body"})
	}
	items, err := req.Items()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	if h.maxBatchSize > 0 && len(items) > h.maxBatchSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   fmt.Sprintf("batch of %d listings exceeds the limit of %d", len(items), h.maxBatchSize),
		})
	}

	summary := h.service.BatchModerate(c.UserContext(), items)
	return c.Status(fiber.StatusOK).JSON(summary)
}
