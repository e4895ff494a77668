package cli

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/aretw0/memimg"
	"github.com/aretw0/memimg/internal/bank"
	"github.com/aretw0/memimg/pkg/adapters/file"
	"github.com/aretw0/memimg/pkg/adapters/redis"
	codecmw "github.com/aretw0/memimg/pkg/codec/middleware"
	logmw "github.com/aretw0/memimg/pkg/persistence/middleware"
	"github.com/aretw0/memimg/pkg/ports"
	"github.com/aretw0/memimg/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
)

// Engine bundles the constructed demo engine with its metrics registry.
type Engine struct {
	Guard    *session.Guard[*bank.Bank, bank.Command]
	Registry *prometheus.Registry
}

// NewEngine builds the guarded bank engine described by cfg: bank codec
// (optionally encrypted), file or redis event log, metrics and logging
// middleware, then replay.
func NewEngine(ctx context.Context, cfg Config, logger *slog.Logger) (*Engine, error) {
	codec, err := buildCodec(cfg)
	if err != nil {
		return nil, err
	}

	var eventLog ports.EventLog[bank.Command]
	if cfg.Redis.Addr != "" {
		key := cfg.Redis.Key
		if key == "" {
			key = "memimg:bank:events"
		}
		eventLog = redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, codec, redis.WithKey(key))
		logger.Info("using redis event log", "addr", cfg.Redis.Addr, "key", key)
	} else {
		eventLog, err = file.Open(cfg.LogFile, codec)
		if err != nil {
			return nil, fmt.Errorf("failed to open event log: %w", err)
		}
		logger.Info("using file event log", "path", cfg.LogFile)
	}

	registry := prometheus.NewRegistry()
	metrics := logmw.NewMetrics(registry)
	eventLog = logmw.Chain(eventLog,
		logmw.NewMetricsMiddleware[bank.Command](metrics),
		logmw.NewLoggingMiddleware[bank.Command](logger),
	)

	engine, err := memimg.New(ctx, bank.New(), eventLog, memimg.WithLogger(logger))
	if err != nil {
		_ = eventLog.Close()
		return nil, err
	}

	return &Engine{
		Guard:    session.NewGuard(engine),
		Registry: registry,
	}, nil
}

func buildCodec(cfg Config) (ports.Codec[bank.Command], error) {
	codec := ports.Codec[bank.Command](bank.NewCodec())
	if cfg.EncryptionKey == "" {
		return codec, nil
	}

	key, err := base64.StdEncoding.DecodeString(cfg.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode encryption key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("encryption key must be 32 bytes, got %d", len(key))
	}

	return codecmw.Chain(codec,
		codecmw.NewEncryptionMiddleware[bank.Command](codecmw.EncryptionConfig{ActiveKey: key}),
	), nil
}
