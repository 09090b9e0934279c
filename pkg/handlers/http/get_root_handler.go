package http

import (
	"time"

	"github.com/TroHub/ListingGuard/pkg/version"
	"github.com/gofiber/fiber/v2"
)

var endpoints = []string{
	"GET /api/health",
	"POST /api/moderate",
	"POST /api/moderate/batch",
	"GET /api/moderations/:listing_id",
	"GET /api/config",
	"POST /api/config",
	"POST /api/models/reload",
	"GET /version",
	"GET /docs",
}

type getRootHandler struct{}

func NewGetRootHandler() Handler {
	return &getRootHandler{}
}

// Handle @Summary Service information
// @Tags Service
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *getRootHandler) Handle(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"service":   version.AppName,
		"status":    "running",
		"version":   version.Version,
		"endpoints": endpoints,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
