package idgen

import (
	"context"
	"time"

	"github.com/dilipkumar2k6/uuid-generation/internal/idserrors"
	"github.com/dilipkumar2k6/uuid-generation/internal/metrics"
	"github.com/dilipkumar2k6/uuid-generation/internal/tracing"
)

var (
	idEmissionsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Name: "idgen_emissions_total",
			Help: "Identifiers successfully emitted, by generator.",
		},
		[]string{"generator"},
	)

	coordinatorCallLatency = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Name:    "idgen_coordinator_call_latency_seconds",
			Help:    "Latency of an externally-coordinated generator's full NextID/NextIDString round trip.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
		},
		[]string{"generator"},
	)

	dualBufferFetchesTotal = metrics.NewGauge(
		metrics.GaugeOpts{
			Name: "idgen_dual_buffer_fetches_total",
			Help: "Number of segment fetches the dual-buffer generator has completed.",
		},
	)
)

// recordEmission marks one successfully emitted identifier for generator.
func recordEmission(generator string) {
	idEmissionsTotal.WithLabelValues(generator).Inc()
}

// instrumentedNextID wraps an externally-coordinated generator's NextID call
// in a trace span and a coordinator-call latency observation, per the
// domain stack's tracing and metrics bindings (§1.2/§1.3).
func instrumentedNextID(generator string, fn func(ctx context.Context) (uint64, error)) (uint64, error) {
	ctx, span := tracing.Start(context.Background(), "idgen."+generator+".NextID")
	defer span.End()

	start := time.Now()
	id, err := fn(ctx)
	coordinatorCallLatency.WithLabelValues(generator).Observe(time.Since(start).Seconds())

	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	recordEmission(generator)
	return id, nil
}

// instrumentedNextIDString mirrors instrumentedNextID for generators whose
// real coordinator work happens in NextIDString rather than NextID (Spanner
// TrueTime, whose NextID is a no-op per §4.10).
func instrumentedNextIDString(generator string, fn func(ctx context.Context) string) string {
	ctx, span := tracing.Start(context.Background(), "idgen."+generator+".NextIDString")
	defer span.End()

	start := time.Now()
	id := fn(ctx)
	coordinatorCallLatency.WithLabelValues(generator).Observe(time.Since(start).Seconds())

	if id == "" {
		span.RecordError(idserrors.ErrCoordinatorUnavailable)
		return id
	}
	recordEmission(generator)
	return id
}
