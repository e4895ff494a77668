package middleware_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/memimg/pkg/persistence/middleware"
	"github.com/aretw0/memimg/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsMiddleware_CountsAppends(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	metrics := middleware.NewMetrics(reg)

	log := middleware.Chain[ports.ContractCommand](&mockLog{},
		middleware.NewMetricsMiddleware[ports.ContractCommand](metrics))

	require.NoError(t, log.Append(ctx, ports.ContractCommand{Seq: 1}))
	require.NoError(t, log.Append(ctx, ports.ContractCommand{Seq: 2}))

	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.Appends))
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.AppendFailures))
}

func TestMetricsMiddleware_CountsFailures(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	metrics := middleware.NewMetrics(reg)

	inner := &mockLog{appendErr: errors.New("disk full")}
	log := middleware.Chain[ports.ContractCommand](inner,
		middleware.NewMetricsMiddleware[ports.ContractCommand](metrics))

	assert.Error(t, log.Append(ctx, ports.ContractCommand{Seq: 1}))
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.Appends))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.AppendFailures))
}

func TestMetricsMiddleware_CountsReplayedEvents(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	metrics := middleware.NewMetrics(reg)

	inner := &mockLog{entries: []ports.ContractCommand{{Seq: 1}, {Seq: 2}, {Seq: 3}}}
	log := middleware.Chain[ports.ContractCommand](inner,
		middleware.NewMetricsMiddleware[ports.ContractCommand](metrics))

	require.NoError(t, log.Replay(ctx, func(ports.ContractCommand) error { return nil }))
	assert.Equal(t, float64(3), testutil.ToFloat64(metrics.ReplayedEvents))
}
