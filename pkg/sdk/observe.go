package boardka

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Operation names reported in SDK logs and metrics.
const (
	opRecommend        = "recommend"
	opLike             = "like"
	opPreferences      = "preferences"
	opResetPreferences = "reset_preferences"
	opReload           = "reload"
)

// sdkMetrics holds prometheus metrics registered for the SDK.
type sdkMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	results    prometheus.Histogram
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "boardka",
			Subsystem: "sdk",
			Name:      "operations_total",
			Help:      "Total SDK operations by type and status.",
		}, []string{"operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "boardka",
			Subsystem: "sdk",
			Name:      "operation_duration_seconds",
			Help:      "SDK operation duration in seconds.",
			Buckets:   []float64{0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}, []string{"operation"}),
		results: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "boardka",
			Subsystem: "sdk",
			Name:      "recommend_results",
			Help:      "Games returned per SDK recommendation.",
			Buckets:   []float64{0, 1, 2, 3, 5, 10, 20, 50},
		}),
	}
	if err := registerOrReuse(reg, &m.operations); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.results); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers a collector or reuses an existing one, so several
// clients can share one registry.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return fmt.Errorf("boardka: metric already registered with incompatible type: %T", are.ExistingCollector)
			}
			*c = existing
			return nil
		}
		return fmt.Errorf("boardka: register metric: %w", err)
	}
	return nil
}

// observer provides logging and metrics for SDK operations.
// A nil logger or registerer disables that half.
type observer struct {
	logger  *slog.Logger
	metrics *sdkMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	var m *sdkMetrics
	if reg != nil {
		var err error
		m, err = newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
	}
	return &observer{logger: logger, metrics: m}, nil
}

func (o *observer) observe(op string, start time.Time, err error, attrs ...any) {
	if o == nil {
		return
	}
	dur := time.Since(start)

	if o.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		o.metrics.operations.WithLabelValues(op, status).Inc()
		o.metrics.duration.WithLabelValues(op).Observe(dur.Seconds())
	}

	if o.logger == nil {
		return
	}
	args := append([]any{"op", op, "duration", dur}, attrs...)
	if err != nil {
		o.logger.Warn("operation failed", append(args, "error", err)...)
		return
	}
	o.logger.Debug("operation completed", args...)
}

// observeRecommend records a ranking call with its result count.
func (o *observer) observeRecommend(start time.Time, rec *Recommendation, err error) {
	if o == nil {
		return
	}
	if err != nil {
		o.observe(opRecommend, start, err)
		return
	}
	if o.metrics != nil {
		o.metrics.results.Observe(float64(len(rec.Results)))
	}
	o.observe(opRecommend, start, nil,
		"recommendation_id", rec.ID,
		"results", len(rec.Results),
		"preferred_tags", rec.PreferredTags,
	)
}
