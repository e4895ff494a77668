package memimg

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/memimg/internal/logging"
	"github.com/aretw0/memimg/pkg/domain"
	"github.com/aretw0/memimg/pkg/ports"
)

// Version is the library version, surfaced by the demo CLI.
var Version = "0.3.0"

// Engine owns the live system state and the event log that makes it
// durable. It is generic over the domain's system type S and command
// type C.
//
// The engine performs no internal locking: it assumes at most one
// in-flight ExecuteCommand at a time. Wrap it in a session.Guard when
// calling from multiple goroutines.
type Engine[S domain.Cloneable[S], C domain.Command[S]] struct {
	state  S
	log    ports.EventLog[C]
	logger *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*config)

type config struct {
	logger *slog.Logger
}

// WithLogger sets a custom structured logger for the engine.
// By default the engine logs nothing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// New constructs an Engine by replaying every command recorded in log
// into initial, in append order. On success the engine is Ready and
// initial (as mutated by replay) becomes the live state.
//
// Any replay failure aborts construction: a partially replayed state is
// never returned. The returned error is a *domain.Error of KindSystem.
func New[S domain.Cloneable[S], C domain.Command[S]](ctx context.Context, initial S, log ports.EventLog[C], opts ...Option) (*Engine[S, C], error) {
	cfg := config{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	replayed := 0
	err := log.Replay(ctx, func(command C) error {
		replayed++
		return command.ApplyTo(initial)
	})
	if err != nil {
		return nil, domain.NewSystemFailure(err, domain.PhaseReplay, "EventLog")
	}
	cfg.logger.Info("replay complete", "events", replayed)

	return &Engine[S, C]{
		state:  initial,
		log:    log,
		logger: cfg.logger,
	}, nil
}

// ExecuteCommand applies command transactionally:
//
//  1. Clone the live state (shadow copy).
//  2. Apply the command to the clone.
//  3. Durably append the command to the event log.
//  4. Swap the clone in as the new live state.
//
// If step 2 fails the caller gets a KindCommand error; if step 3 fails,
// a KindSystem error. In both cases the live state and the log are
// untouched: the mutated clone is simply discarded, which erases any
// partial mutation a multi-step command may have made before failing.
func (e *Engine[S, C]) ExecuteCommand(ctx context.Context, command C) error {
	shadow := e.state.Clone()

	if err := command.ApplyTo(shadow); err != nil {
		return domain.NewCommandFailure(err, domain.PhaseExecute, fmt.Sprintf("%T", command))
	}

	// The log is the authority: an effect that was not persisted must
	// never become visible, even though it succeeded against the clone.
	if err := e.log.Append(ctx, command); err != nil {
		return domain.NewSystemFailure(err, domain.PhaseAppend, fmt.Sprintf("%T", command))
	}

	e.state = shadow
	e.logger.Debug("command committed", "command", fmt.Sprintf("%T", command))
	return nil
}

// State returns the current live system value. Callers must treat it as
// read-only; all mutation goes through ExecuteCommand.
func (e *Engine[S, C]) State() S {
	return e.state
}

// Close flushes and releases the event log. The engine must not be used
// afterwards.
func (e *Engine[S, C]) Close() error {
	return e.log.Close()
}

// ExecuteQuery applies a read-only query to the engine's live state and
// returns its result. It is a package function rather than a method so
// the result type R can be inferred per call site.
//
// Queries never touch the clone path or the log; a failure is wrapped as
// a KindCommand error carrying the query's type name.
func ExecuteQuery[S domain.Cloneable[S], C domain.Command[S], R any](e *Engine[S, C], query domain.Query[S, R]) (R, error) {
	result, err := query.ExtractFrom(e.state)
	if err != nil {
		var zero R
		return zero, domain.NewCommandFailure(err, domain.PhaseQuery, fmt.Sprintf("%T", query))
	}
	return result, nil
}
