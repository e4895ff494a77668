package ports

import "context"

// EventLog is the durable, ordered record of commands. It is the only
// persisted artifact in the memory-image pattern: the live state is
// reconstructed from it on every restart.
type EventLog[C any] interface {
	// Replay streams every persisted command, in append order, into
	// consume. It stops on the first decode or consume error and returns
	// it. The engine calls Replay exactly once, at construction, before
	// any Append.
	Replay(ctx context.Context, consume func(C) error) error

	// Append durably writes one command past the end of the log. It must
	// force the write to stable storage before returning nil; an error
	// means the command must be considered unpersisted.
	Append(ctx context.Context, command C) error

	// Close flushes any buffered output and releases the underlying
	// resources. The log must not be used afterwards.
	Close() error
}
