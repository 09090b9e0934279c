package models

import (
	"context"
	"fmt"

	infraModels "github.com/TroHub/ListingGuard/pkg/infra/models"
	"github.com/TroHub/ListingGuard/pkg/moderation/predictor"
	"github.com/sirupsen/logrus"
)

type Reloader interface {
	Reload(ctx context.Context) (predictor.Status, error)
}

type reloader struct {
	logger    *logrus.Logger
	loader    infraModels.Loader
	predictor *predictor.Predictor
}

func NewReloader(logger *logrus.Logger, loader infraModels.Loader, p *predictor.Predictor) Reloader {
	return &reloader{
		logger:    logger,
		loader:    loader,
		predictor: p,
	}
}

// Reload reads the artifact directory and swaps the predictor's model set. On any error the active set is kept.
func (r *reloader) Reload(ctx context.Context) (predictor.Status, error) {
	set, err := r.loader.Load(ctx)
	if err != nil {
		r.logger.WithError(err).WithField("dir", r.loader.Dir()).Error("failed to load model artifacts")
		return r.predictor.Status(), err
	}
	if err := r.predictor.Swap(set); err != nil {
		r.logger.WithError(err).Error("failed to activate model set")
		return r.predictor.Status(), fmt.Errorf("activate model set: %w", err)
	}
	status := r.predictor.Status()
	r.logger.WithFields(logrus.Fields{
		"dir":           r.loader.Dir(),
		"price_model":   status.PriceModel.String(),
		"anomaly_model": status.AnomalyModel.String(),
		"scaler":        status.Scaler,
	}).Info("models reloaded")
	return status, nil
}
