package http

import (
	"errors"

	appModeration "github.com/TroHub/ListingGuard/pkg/app/moderation"
	"github.com/TroHub/ListingGuard/pkg/domain/listing"
	"github.com/TroHub/ListingGuard/pkg/handlers/http/request"
	"github.com/TroHub/ListingGuard/pkg/moderation/features"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type moderateHandler struct {
	logger  *logrus.Logger
	service appModeration.Service
}

func NewModerateHandler(logger *logrus.Logger, service appModeration.Service) Handler {
	return &moderateHandler{
		logger:  logger,
		service: service,
	}
}

// Handle @Summary Moderate a listing
// @Description Scores one rental listing and returns the moderation decision
// @Tags Moderation
// @Accept json
// @Produce json
// @Param request body request.ModerateRequest true "Listing to moderate"
// @Success 200 {object} moderation.Result
// @Failure 400 {object} map[string]interface{} "Missing or malformed listing"
// @Router /api/moderate [post]
func (h *moderateHandler) Handle(c *fiber.Ctx) error {
	var req request.ModerateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	l, err := listing.Parse(req.Property)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	res, err := h.service.Moderate(c.UserContext(), l)
	if err != nil {
		if listing.IsMalformed(err) || errors.Is(err, features.ErrNonFinite) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
		}
		h.logger.WithError(err).WithField("listing_id", l.ID).Error("failed to moderate listing")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.Status(fiber.StatusOK).JSON(res)
}
