package http

import (
	"errors"

	"github.com/TroHub/ListingGuard/pkg/app/models"
	infraModels "github.com/TroHub/ListingGuard/pkg/infra/models"
	"github.com/TroHub/ListingGuard/pkg/moderation/features"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type reloadModelsHandler struct {
	logger   *logrus.Logger
	reloader models.Reloader
}

func NewReloadModelsHandler(logger *logrus.Logger, reloader models.Reloader) Handler {
	return &reloadModelsHandler{
		logger:   logger,
		reloader: reloader,
	}
}

// Handle @Summary Reload model artifacts
// @Description Reads the artifact directory again and swaps the active model set. A broken set leaves the current one in place.
// @Tags Models
// @Produce json
// @Param Authorization header string true "Bearer admin token"
// @Success 200 {object} predictor.Status
// @Failure 422 {object} map[string]interface{} "Artifacts are corrupt or inconsistent"
// @Router /api/models/reload [post]
func (h *reloadModelsHandler) Handle(c *fiber.Ctx) error {
	status, err := h.reloader.Reload(c.UserContext())
	if err != nil {
		code := fiber.StatusInternalServerError
		if infraModels.IsArtifactError(err) || errors.Is(err, features.ErrSchemaMismatch) {
			code = fiber.StatusUnprocessableEntity
		}
		return c.Status(code).JSON(fiber.Map{
			"error":  err.Error(),
			"status": status,
		})
	}
	return c.Status(fiber.StatusOK).JSON(status)
}
