package middleware

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/memimg/pkg/ports"
)

type loggingLog[C any] struct {
	next   ports.EventLog[C]
	logger *slog.Logger
}

// NewLoggingMiddleware creates a middleware that traces log activity
// through slog: appends at Debug, failures at Error.
func NewLoggingMiddleware[C any](logger *slog.Logger) Middleware[C] {
	return func(next ports.EventLog[C]) ports.EventLog[C] {
		return &loggingLog[C]{next: next, logger: logger}
	}
}

func (l *loggingLog[C]) Replay(ctx context.Context, consume func(C) error) error {
	count := 0
	err := l.next.Replay(ctx, func(command C) error {
		count++
		return consume(command)
	})
	if err != nil {
		l.logger.Error("replay failed", "error", err, "delivered", count)
		return err
	}
	l.logger.Debug("replay finished", "events", count)
	return nil
}

func (l *loggingLog[C]) Append(ctx context.Context, command C) error {
	if err := l.next.Append(ctx, command); err != nil {
		l.logger.Error("append failed", "error", err, "command", fmt.Sprintf("%T", command))
		return err
	}
	l.logger.Debug("command appended", "command", fmt.Sprintf("%T", command))
	return nil
}

func (l *loggingLog[C]) Close() error {
	if err := l.next.Close(); err != nil {
		l.logger.Error("log close failed", "error", err)
		return err
	}
	return nil
}
