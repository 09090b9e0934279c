package dependency_container

import (
	"context"
	"errors"
	"fmt"

	appModels "github.com/TroHub/ListingGuard/pkg/app/models"
	appModeration "github.com/TroHub/ListingGuard/pkg/app/moderation"
	"github.com/TroHub/ListingGuard/pkg/app/thresholds"
	"github.com/TroHub/ListingGuard/pkg/config"
	domainModeration "github.com/TroHub/ListingGuard/pkg/domain/moderation"
	handlers "github.com/TroHub/ListingGuard/pkg/handlers/http"
	"github.com/TroHub/ListingGuard/pkg/infra/cache"
	"github.com/TroHub/ListingGuard/pkg/infra/cache/channel"
	"github.com/TroHub/ListingGuard/pkg/infra/database"
	"github.com/TroHub/ListingGuard/pkg/infra/jwt"
	"github.com/TroHub/ListingGuard/pkg/infra/metrics"
	_ "github.com/TroHub/ListingGuard/pkg/infra/migrations"
	infraModels "github.com/TroHub/ListingGuard/pkg/infra/models"
	"github.com/TroHub/ListingGuard/pkg/infra/prometheus"
	"github.com/TroHub/ListingGuard/pkg/infra/repository"
	"github.com/TroHub/ListingGuard/pkg/infra/telemetry/kafka"
	"github.com/TroHub/ListingGuard/pkg/middleware"
	"github.com/TroHub/ListingGuard/pkg/moderation"
	"github.com/TroHub/ListingGuard/pkg/moderation/decision"
	"github.com/TroHub/ListingGuard/pkg/moderation/predictor"
	"github.com/sirupsen/logrus"
)

type Container struct {
	Cache               cache.Client
	RedisListener       cache.EventListener
	RedisPublisher      cache.EventPublisher
	DB                  *database.DB
	Predictor           *predictor.Predictor
	Engine              *moderation.Engine
	MetricsWorker       metrics.Worker
	ThresholdsSyncer    thresholds.Syncer
	JWTManager          jwt.Manager
	MiddlewareTransport *middleware.Transport
	HandlerTransport    *handlers.HandlerTransport
}

type ContainerDI struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	// Origin identifies this replica on the thresholds channel.
	Origin string
}

func NewContainer(ctx context.Context, di ContainerDI) (*Container, error) {
	cfg, logger := di.Cfg, di.Logger
	c := &Container{}

	prometheus.Initialize(prometheus.MetricsConfig{
		EnableLatency: cfg.Metrics.EnableLatency,
		EnableScores:  cfg.Metrics.EnableScores,
	})

	// models
	c.Predictor = predictor.New(logger, predictor.Config{
		BreakerTimeout:     cfg.Models.BreakerTimeout,
		BreakerMaxFailures: cfg.Models.BreakerMaxFailures,
		OnFallback:         prometheus.RecordFallback,
	})
	loader, err := infraModels.NewLoader(logger, cfg.Models.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize model loader: %w", err)
	}
	reloader := appModels.NewReloader(logger, loader, c.Predictor)
	if _, err := reloader.Reload(ctx); err != nil {
		logger.WithError(err).Warn("starting without trained models, heuristic pricing is active")
	}

	// engine
	th, err := decision.NewThresholds(domainModeration.Thresholds{
		AutoApprove: cfg.Moderation.AutoApproveThreshold,
		Reject:      cfg.Moderation.RejectThreshold,
	})
	if err != nil {
		return nil, fmt.Errorf("invalid configured thresholds: %w", err)
	}
	c.Engine = moderation.NewEngine(logger, c.Predictor, th, moderation.WithWorkers(cfg.Moderation.BatchWorkers))

	// redis
	var thresholdStore cache.ThresholdStore
	if cfg.Redis.Enabled {
		c.Cache, err = cache.NewClient(cache.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TLS:      cfg.Redis.TLS,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize cache: %w", err)
		}
		thresholdStore = cache.NewThresholdStore(c.Cache)
		c.RedisPublisher = cache.NewRedisEventPublisher(c.Cache, channel.ThresholdsChannel)
		c.RedisListener = cache.NewRedisEventListener(logger, c.Cache)
		c.ThresholdsSyncer = thresholds.NewSyncer(logger, th, thresholdStore, c.RedisListener)
	}

	// database
	var repo domainModeration.Repository
	if cfg.Database.Enabled {
		c.DB, err = database.NewDB(logger, &database.Config{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			DBName:   cfg.Database.DBName,
			SSLMode:  cfg.Database.SSLMode,
		})
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		repo = repository.NewModerationRepository(c.DB.DB)
	}

	// kafka
	var exporter domainModeration.EventExporter
	if cfg.Kafka.Enabled {
		kafkaExporter, err := kafka.NewExporter(cfg.Kafka.Settings())
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("failed to initialize kafka exporter: %w", err)
		}
		exporter = kafkaExporter
	}

	c.MetricsWorker = metrics.NewWorker(logger, repo, exporter)
	c.MetricsWorker.StartWorkers(cfg.Server.Workers)

	// services
	service := appModeration.NewService(logger, c.Engine, c.MetricsWorker)
	finder := appModeration.NewFinder(repo, logger)
	updater := thresholds.NewUpdater(logger, c.Engine, thresholdStore, c.RedisPublisher, di.Origin)

	// middleware
	c.JWTManager = jwt.NewJwtManager(&cfg.Server)
	metricsMiddleware := middleware.Middleware(nil)
	if cfg.Metrics.Enabled {
		metricsMiddleware = middleware.NewMetricsMiddleware(c.MetricsWorker)
	}
	c.MiddlewareTransport = &middleware.Transport{
		PanicRecoverMiddleware: middleware.NewPanicRecoverMiddleware(logger),
		CORSMiddleware: middleware.NewCORSGlobalMiddleware(
			middleware.SplitOrigins(cfg.Server.CorsAllowOrigins),
			[]string{"GET", "POST", "OPTIONS"},
			false,
			nil,
			"",
		),
		MetricsMiddleware:   metricsMiddleware,
		AdminAuthMiddleware: middleware.NewAdminAuthMiddleware(logger, c.JWTManager),
	}

	// handlers
	c.HandlerTransport = &handlers.HandlerTransport{
		GetRootHandler:       handlers.NewGetRootHandler(),
		HealthHandler:        handlers.NewHealthHandler(),
		GetHealthHandler:     handlers.NewGetHealthHandler(c.Predictor, c.Engine),
		GetVersionHandler:    handlers.NewGetVersionHandler(logger),
		ModerateHandler:      handlers.NewModerateHandler(logger, service),
		BatchModerateHandler: handlers.NewBatchModerateHandler(logger, service, cfg.Moderation.MaxBatchSize),
		GetModerationHandler: handlers.NewGetModerationHandler(logger, finder),
		GetConfigHandler:     handlers.NewGetConfigHandler(c.Predictor, c.Engine),
		UpdateConfigHandler:  handlers.NewUpdateConfigHandler(logger, updater),
		ReloadModelsHandler:  handlers.NewReloadModelsHandler(logger, reloader),
	}

	return c, nil
}

// StartBackground starts the thresholds sync when redis is configured.
func (c *Container) StartBackground(ctx context.Context) error {
	if c.ThresholdsSyncer == nil {
		return nil
	}
	return c.ThresholdsSyncer.Start(ctx)
}

// Close stops the worker and releases external connections.
func (c *Container) Close() error {
	var errs []error
	if c.MetricsWorker != nil {
		c.MetricsWorker.Shutdown()
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close cache: %w", err))
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(errs...)
}
