package http

import (
	"github.com/TroHub/ListingGuard/pkg/app/thresholds"
	"github.com/TroHub/ListingGuard/pkg/handlers/http/request"
	"github.com/TroHub/ListingGuard/pkg/moderation/decision"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type updateConfigHandler struct {
	logger  *logrus.Logger
	updater thresholds.Updater
}

func NewUpdateConfigHandler(logger *logrus.Logger, updater thresholds.Updater) Handler {
	return &updateConfigHandler{
		logger:  logger,
		updater: updater,
	}
}

// Handle @Summary Update decision thresholds
// @Description Changes the thresholds on every replica. Values may be numbers or numeric strings.
// @Tags Config
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer admin token"
// @Param request body request.UpdateConfigRequest true "Threshold changes"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{} "Out of range or inverted thresholds"
// @Failure 401 {object} map[string]interface{} "Missing or invalid token"
// @Router /api/config [post]
func (h *updateConfigHandler) Handle(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	req, err := request.DecodeUpdateConfigRequest(body)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	th, err := h.updater.Update(c.UserContext(), req.AutoApproveThreshold, req.RejectThreshold)
	if err != nil {
		if decision.IsThresholdError(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		h.logger.WithError(err).Error("failed to update thresholds")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":    true,
		"message":    "Configuration updated",
		"thresholds": th,
	})
}
