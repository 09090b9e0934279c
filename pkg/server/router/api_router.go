package router

import (
	"errors"

	handlers "github.com/TroHub/ListingGuard/pkg/handlers/http"
	"github.com/TroHub/ListingGuard/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

var (
	ErrInvalidHandlerTransport = errors.New("invalid handler transport")
)

type apiRouter struct {
	middlewareTransport *middleware.Transport
	handlerTransport    *handlers.HandlerTransport
}

func NewAPIRouter(
	middlewareTransport *middleware.Transport,
	handlerTransport *handlers.HandlerTransport,
) ServerRouter {
	return &apiRouter{
		middlewareTransport: middlewareTransport,
		handlerTransport:    handlerTransport,
	}
}

func (r *apiRouter) BuildRoutes(router *fiber.App) error {
	h := r.handlerTransport
	if h == nil || h.ModerateHandler == nil || h.BatchModerateHandler == nil {
		return ErrInvalidHandlerTransport
	}
	m := r.middlewareTransport

	router.Use(m.PanicRecoverMiddleware.Middleware(), m.CORSMiddleware.Middleware())
	if m.MetricsMiddleware != nil {
		router.Use(m.MetricsMiddleware.Middleware())
	}

	router.Get("/", h.GetRootHandler.Handle)
	router.Get("/health", h.HealthHandler.Handle)
	router.Get("/__/health", h.HealthHandler.Handle)
	router.Get("/version", h.GetVersionHandler.Handle)
	router.Get("/docs/*", swagger.HandlerDefault)

	api := router.Group("/api")
	{
		api.Get("/health", h.GetHealthHandler.Handle)

		api.Post("/moderate", h.ModerateHandler.Handle)
		api.Post("/moderate/batch", h.BatchModerateHandler.Handle)
		api.Get("/moderations/:listing_id", h.GetModerationHandler.Handle)

		api.Get("/config", h.GetConfigHandler.Handle)

		adminAuth := m.AdminAuthMiddleware.Middleware()
		api.Post("/config", adminAuth, h.UpdateConfigHandler.Handle)
		api.Post("/models/reload", adminAuth, h.ReloadModelsHandler.Handle)
	}
	return nil
}
