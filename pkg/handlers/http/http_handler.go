package http

import (
	"github.com/TroHub/ListingGuard/pkg/domain/moderation"
	"github.com/TroHub/ListingGuard/pkg/moderation/predictor"
	"github.com/gofiber/fiber/v2"
)

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

// ModelStatusReader is satisfied by *predictor.Predictor.
type ModelStatusReader interface {
	Status() predictor.Status
}

// ThresholdsReader is satisfied by *moderation.Engine.
type ThresholdsReader interface {
	Thresholds() moderation.Thresholds
}

type HandlerTransport struct {
	// Service
	GetRootHandler    Handler
	HealthHandler     Handler
	GetHealthHandler  Handler
	GetVersionHandler Handler

	// Moderation
	ModerateHandler      Handler
	BatchModerateHandler Handler
	GetModerationHandler Handler

	// Admin
	GetConfigHandler    Handler
	UpdateConfigHandler Handler
	ReloadModelsHandler Handler
}

type modelsLoaded struct {
	PriceModel   bool `json:"price_model"`
	AnomalyModel bool `json:"anomaly_model"`
	Scaler       bool `json:"scaler"`
}

func loadedFrom(status predictor.Status) modelsLoaded {
	return modelsLoaded{
		PriceModel:   status.PriceModel != predictor.Absent,
		AnomalyModel: status.AnomalyModel != predictor.Absent,
		Scaler:       status.Scaler,
	}
}
