package middleware_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/aretw0/memimg/pkg/persistence/middleware"
	"github.com/aretw0/memimg/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingMiddleware_TracesActivity(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	inner := &mockLog{}
	log := middleware.Chain[ports.ContractCommand](inner,
		middleware.NewLoggingMiddleware[ports.ContractCommand](logger))

	require.NoError(t, log.Append(ctx, ports.ContractCommand{Seq: 1}))
	require.NoError(t, log.Replay(ctx, func(ports.ContractCommand) error { return nil }))

	out := buf.String()
	assert.Contains(t, out, "command appended")
	assert.Contains(t, out, "replay finished")
	assert.Contains(t, out, "events=1")
}

func TestLoggingMiddleware_LogsFailures(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	inner := &mockLog{appendErr: errors.New("disk full")}
	log := middleware.Chain[ports.ContractCommand](inner,
		middleware.NewLoggingMiddleware[ports.ContractCommand](logger))

	err := log.Append(ctx, ports.ContractCommand{Seq: 1})
	require.Error(t, err)
	assert.Contains(t, buf.String(), "append failed")
	assert.Contains(t, buf.String(), "disk full")
}
