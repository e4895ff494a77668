package middleware

import (
	"context"
	"time"

	"github.com/aretw0/memimg/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for an instrumented event log.
// One Metrics value can be shared by several logs if they should report
// into the same series.
type Metrics struct {
	Appends        prometheus.Counter
	AppendFailures prometheus.Counter
	ReplayedEvents prometheus.Counter
	AppendDuration prometheus.Histogram
}

// NewMetrics creates and registers the event log collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Appends: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "memimg_log_appends_total",
			Help: "Number of commands successfully appended to the event log.",
		}),
		AppendFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "memimg_log_append_failures_total",
			Help: "Number of failed append attempts.",
		}),
		ReplayedEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "memimg_log_replayed_events_total",
			Help: "Number of commands delivered during replay.",
		}),
		AppendDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "memimg_log_append_duration_seconds",
			Help:    "Latency of durable append operations.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.Appends, m.AppendFailures, m.ReplayedEvents, m.AppendDuration)
	return m
}

type metricsLog[C any] struct {
	next    ports.EventLog[C]
	metrics *Metrics
}

// NewMetricsMiddleware creates a middleware that reports append and
// replay activity to Prometheus.
func NewMetricsMiddleware[C any](metrics *Metrics) Middleware[C] {
	return func(next ports.EventLog[C]) ports.EventLog[C] {
		return &metricsLog[C]{next: next, metrics: metrics}
	}
}

func (m *metricsLog[C]) Replay(ctx context.Context, consume func(C) error) error {
	return m.next.Replay(ctx, func(command C) error {
		m.metrics.ReplayedEvents.Inc()
		return consume(command)
	})
}

func (m *metricsLog[C]) Append(ctx context.Context, command C) error {
	start := time.Now()
	err := m.next.Append(ctx, command)
	if err != nil {
		m.metrics.AppendFailures.Inc()
		return err
	}
	m.metrics.Appends.Inc()
	m.metrics.AppendDuration.Observe(time.Since(start).Seconds())
	return nil
}

func (m *metricsLog[C]) Close() error {
	return m.next.Close()
}
