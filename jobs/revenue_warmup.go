package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	jobmetrics "github.com/merx-commerce/merx/internal/jobs"
	"github.com/merx-commerce/merx/internal/revenue"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// RevenueWarmupJob pre-populates the revenue report caches so the first
// request after an invalidation does not pay the aggregation cost.
type RevenueWarmupJob struct {
	Revenue *revenue.Service
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewRevenueWarmupJob wires dependencies for the warmup handler.
func NewRevenueWarmupJob(revenueSvc *revenue.Service, logger *slog.Logger, metrics *jobmetrics.Metrics) *RevenueWarmupJob {
	return &RevenueWarmupJob{Revenue: revenueSvc, Logger: logger, Metrics: metrics}
}

// Handle processes revenue warmup tasks.
func (j *RevenueWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Revenue == nil {
		return errors.New("revenue warmup: handler not configured")
	}
	var payload RevenueWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if len(payload.Aggregates) == 0 {
		payload.Aggregates = []string{AggregateWeekly, AggregateTopMerchants, AggregateTopItems}
	}
	if payload.TopLimit <= 0 {
		payload.TopLimit = 10
	}

	tracker := j.metrics().Track(TaskRevenueWarmup)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	start := time.Now()
	logger := j.logger().With(slog.Int("top_limit", payload.TopLimit))
	logger.Info("starting revenue warmup", slog.Any("aggregates", payload.Aggregates))

	warmCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	g, gctx := errgroup.WithContext(warmCtx)
	for _, aggregate := range payload.Aggregates {
		switch aggregate {
		case AggregateWeekly:
			g.Go(func() error {
				_, err := j.Revenue.WeeklyRevenue(gctx)
				return err
			})
		case AggregateTopMerchants:
			g.Go(func() error {
				_, err := j.Revenue.TopMerchants(gctx, payload.TopLimit)
				return err
			})
		case AggregateTopItems:
			g.Go(func() error {
				_, err := j.Revenue.TopItems(gctx, payload.TopLimit)
				return err
			})
		default:
			logger.Warn("skipping unknown aggregate", slog.String("aggregate", aggregate))
		}
	}
	if err := g.Wait(); err != nil {
		resultErr = err
		logger.Error("revenue warmup failed", slog.Any("error", err))
		return resultErr
	}

	logger.Info("completed revenue warmup", slog.Duration("duration", time.Since(start)))
	return resultErr
}

func (j *RevenueWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskRevenueWarmup))
	}
	return slog.Default().With(slog.String("job", TaskRevenueWarmup))
}

func (j *RevenueWarmupJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}
