// Package engine orchestrates batch scoring: it validates a submission, runs
// the per-region analysis, orders the results for dispatch, and maintains the
// single retained latest batch.
package engine

import (
	"context"
	"log/slog"
	"sort"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/drought-relief-service/internal/domain"
	"github.com/couchcryptid/drought-relief-service/internal/observability"
)

// DispatchPublisher fans a scored batch's dispatch plan out to downstream
// consumers. Publishing is best effort; failures never fail the scoring run.
type DispatchPublisher interface {
	PublishDispatch(ctx context.Context, batch *domain.Batch, routes []DispatchRoute) error
}

// Engine is the single writer of the latest-batch slot. Readers take
// snapshots through Snapshot and never observe a partially replaced batch.
type Engine struct {
	publisher DispatchPublisher // nil disables fan-out
	logger    *slog.Logger
	metrics   *observability.Metrics

	latest atomic.Pointer[domain.Batch]
}

// New creates an Engine. Pass a nil publisher to disable dispatch fan-out.
func New(publisher DispatchPublisher, logger *slog.Logger, metrics *observability.Metrics) *Engine {
	return &Engine{
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// ScoreBatch validates and scores a full submission, sorts the results by
// priority score descending (stable, so equal priorities keep submission
// order), and atomically installs the batch as the new latest state.
//
// Any precondition violation rejects the whole submission and leaves the
// previous batch untouched.
func (e *Engine) ScoreBatch(ctx context.Context, regions []domain.RegionInput) (*domain.Batch, error) {
	start := time.Now()

	if err := domain.ValidateBatch(regions); err != nil {
		e.metrics.BatchesRejected.Inc()
		return nil, err
	}

	results := make([]domain.RegionResult, len(regions))
	for i := range regions {
		results[i] = domain.AnalyzeRegion(regions[i])
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].PriorityScore > results[j].PriorityScore
	})

	batch := domain.NewBatch(results)
	e.latest.Store(&batch)

	summary := Summarize(&batch)
	e.metrics.BatchesScored.Inc()
	e.metrics.RegionsScored.Add(float64(len(results)))
	e.metrics.BatchRegions.Observe(float64(len(results)))
	e.metrics.BatchScoringDuration.Observe(time.Since(start).Seconds())
	e.metrics.LatestBatchRegions.Set(float64(summary.TotalRegions))
	e.metrics.LatestCriticalRegions.Set(float64(summary.CriticalCount))
	e.metrics.LatestTankersNeeded.Set(float64(summary.TotalTankersNeeded))

	e.logger.Info("batch scored",
		"batch_id", batch.ID,
		"regions", summary.TotalRegions,
		"critical", summary.CriticalCount,
		"tankers_needed", summary.TotalTankersNeeded,
	)

	e.publishDispatch(ctx, &batch)

	return &batch, nil
}

// Snapshot returns the most recently scored batch, or nil before the first
// successful submission. The returned batch is immutable.
func (e *Engine) Snapshot() *domain.Batch {
	return e.latest.Load()
}

// CheckReadiness reports whether the engine can serve. State is in-memory
// with no startup dependencies, so the engine is ready as soon as it exists;
// an empty batch slot is a valid serving state.
func (e *Engine) CheckReadiness(_ context.Context) error {
	return nil
}

func (e *Engine) publishDispatch(ctx context.Context, batch *domain.Batch) {
	if e.publisher == nil {
		return
	}

	routes := DispatchPlan(batch)
	if err := e.publisher.PublishDispatch(ctx, batch, routes); err != nil {
		e.metrics.DispatchPublishes.WithLabelValues("error").Inc()
		e.logger.Warn("dispatch publish failed",
			"batch_id", batch.ID,
			"routes", len(routes),
			"error", err,
		)
		return
	}
	e.metrics.DispatchPublishes.WithLabelValues("success").Inc()
}
