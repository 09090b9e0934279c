package http

import (
	"errors"

	appModeration "github.com/TroHub/ListingGuard/pkg/app/moderation"
	"github.com/TroHub/ListingGuard/pkg/domain"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type getModerationHandler struct {
	logger *logrus.Logger
	finder appModeration.Finder
}

func NewGetModerationHandler(logger *logrus.Logger, finder appModeration.Finder) Handler {
	return &getModerationHandler{
		logger: logger,
		finder: finder,
	}
}

// Handle @Summary Latest decision for a listing
// @Tags Moderation
// @Produce json
// @Param listing_id path string true "Listing ID"
// @Success 200 {object} moderation.Record
// @Failure 404 {object} map[string]interface{} "No decision recorded"
// @Failure 501 {object} map[string]interface{} "History disabled"
// @Router /api/moderations/{listing_id} [get]
func (h *getModerationHandler) Handle(c *fiber.Ctx) error {
	listingID := c.Params("listing_id")
	if listingID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "listing_id is required"})
	}

	record, err := h.finder.FindLatest(c.UserContext(), listingID)
	switch {
	case err == nil:
		return c.Status(fiber.StatusOK).JSON(record)
	case domain.IsNotFoundError(err):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, appModeration.ErrHistoryDisabled):
		return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{"error": err.Error()})
	default:
		h.logger.WithError(err).WithField("listing_id", listingID).Error("failed to read moderation history")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to read moderation history"})
	}
}
