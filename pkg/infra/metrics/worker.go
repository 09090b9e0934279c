package metrics

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/TroHub/ListingGuard/pkg/domain/moderation"
	"github.com/TroHub/ListingGuard/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
)

const (
	ModeSingle = "single"
	ModeBatch  = "batch"

	queueSize   = 1000
	taskTimeout = 10 * time.Second
)

// Worker runs the side effects of a moderation off the request path: metrics, persistence and events.
type Worker interface {
	Shutdown()
	StartWorkers(n int)
	Process(results []*moderation.Result, mode string, elapsed time.Duration)
	RecordRequest(method string, statusCode int)
}

type worker struct {
	logger   *logrus.Logger
	repo     moderation.Repository
	exporter moderation.EventExporter
	taskChan chan func(ctx context.Context)
	ctx      context.Context
	cancel   context.CancelFunc
	closed   atomic.Bool
	wg       sync.WaitGroup
}

// NewWorker builds the worker. repo and exporter may be nil when persistence or events are disabled.
func NewWorker(logger *logrus.Logger, repo moderation.Repository, exporter moderation.EventExporter) Worker {
	ctx, cancel := context.WithCancel(context.Background())
	return &worker{
		logger:   logger,
		repo:     repo,
		exporter: exporter,
		taskChan: make(chan func(ctx context.Context), queueSize),
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (m *worker) Shutdown() {
	if m.closed.Swap(true) {
		return
	}
	m.logger.Info("shutting down moderation workers")
	m.cancel()
	m.wg.Wait()
	if m.exporter != nil {
		m.exporter.Close()
	}
	m.logger.Info("moderation workers stopped")
}

func (m *worker) Process(results []*moderation.Result, mode string, elapsed time.Duration) {
	m.enqueueTask(func(context.Context) {
		m.registryMetricsToPrometheus(results, mode, elapsed)
	}, mode)

	if m.repo == nil && m.exporter == nil {
		return
	}
	for _, res := range results {
		record := moderation.NewRecord(res)
		m.enqueueTask(func(ctx context.Context) {
			m.persist(ctx, record)
		}, record.ListingID)
	}
}

func (m *worker) RecordRequest(method string, statusCode int) {
	m.enqueueTask(func(context.Context) {
		prometheus.RequestTotal.WithLabelValues(method, statusClass(statusCode)).Inc()
	}, method)
}

func (m *worker) registryMetricsToPrometheus(results []*moderation.Result, mode string, elapsed time.Duration) {
	if prometheus.Config.EnableLatency {
		prometheus.ModerationLatency.WithLabelValues(mode).Observe(float64(elapsed.Microseconds()) / 1000)
	}
	for _, res := range results {
		prometheus.DecisionsTotal.WithLabelValues(string(res.Decision)).Inc()
		if prometheus.Config.EnableScores {
			prometheus.OverallScore.Observe(res.OverallScore)
		}
	}
}

func (m *worker) persist(ctx context.Context, record *moderation.Record) {
	ctx, cancel := context.WithTimeout(ctx, taskTimeout)
	defer cancel()

	fields := logrus.Fields{"listing_id": record.ListingID, "decision": record.Decision}
	if m.repo != nil {
		if err := m.repo.Save(ctx, record); err != nil {
			m.logger.WithFields(fields).WithError(err).Error("failed to persist moderation result")
		}
	}
	if m.exporter != nil {
		if err := m.exporter.Handle(ctx, moderation.NewDecisionEvent(record)); err != nil {
			m.logger.WithFields(fields).WithError(err).Error("failed to export decision event")
		}
	}
}

func (m *worker) StartWorkers(n int) {
	m.logger.WithField("workers", n).Info("starting moderation workers")
	for i := 0; i < n; i++ {
		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			for {
				select {
				case task := <-m.taskChan:
					m.run(task)
				case <-m.ctx.Done():
					return
				}
			}
		}()
	}
}

func (m *worker) run(task func(ctx context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Errorf("panic in moderation worker task: %v", r)
		}
	}()
	task(m.ctx)
}

func (m *worker) enqueueTask(task func(ctx context.Context), key string) {
	if m.closed.Load() {
		return
	}
	select {
	case m.taskChan <- task:
	default:
		m.logger.WithField("key", key).Warn("taskChan is full, dropping task")
	}
}

func statusClass(code int) string {
	if code < 100 || code > 599 {
		return "5xx"
	}
	return fmt.Sprintf("%dxx", code/100)
}
