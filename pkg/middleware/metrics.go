package middleware

import (
	"errors"

	"github.com/TroHub/ListingGuard/pkg/infra/metrics"
	"github.com/gofiber/fiber/v2"
)

type metricsMiddleware struct {
	worker metrics.Worker
}

// NewMetricsMiddleware counts every request by method and status class through the async worker.
func NewMetricsMiddleware(worker metrics.Worker) Middleware {
	return &metricsMiddleware{worker: worker}
}

func (m *metricsMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			}
		}
		m.worker.RecordRequest(c.Method(), status)
		return err
	}
}
