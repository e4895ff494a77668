package redis

import (
	"context"
	"fmt"

	"github.com/aretw0/memimg/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// replayPageSize is the number of entries fetched per LRANGE call.
const replayPageSize = 512

// Log implements ports.EventLog using a Redis list as the append-only
// record. Each entry is one encoded command; RPUSH preserves append
// order and LRANGE replays it.
type Log[C any] struct {
	client *backend.Client
	codec  ports.Codec[C]
	key    string
}

type Option func(*options)

type options struct {
	key string
}

// WithKey sets the Redis key holding the log list.
func WithKey(key string) Option {
	return func(o *options) {
		o.key = key
	}
}

// New creates a new Redis-backed event log with its own client.
func New[C any](address, password string, db int, codec ports.Codec[C], opts ...Option) *Log[C] {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, codec, opts...)
}

// NewFromClient creates a new Redis-backed event log from an existing client.
func NewFromClient[C any](client *backend.Client, codec ports.Codec[C], opts ...Option) *Log[C] {
	o := options{key: "memimg:events"}
	for _, opt := range opts {
		opt(&o)
	}
	return &Log[C]{client: client, codec: codec, key: o.key}
}

// Replay pages through the list from the head and delivers each decoded
// command in append order.
func (l *Log[C]) Replay(ctx context.Context, consume func(C) error) error {
	for start := int64(0); ; start += replayPageSize {
		lines, err := l.client.LRange(ctx, l.key, start, start+replayPageSize-1).Result()
		if err != nil {
			return fmt.Errorf("failed to read from redis: %w", err)
		}
		if len(lines) == 0 {
			return nil
		}

		for _, line := range lines {
			command, err := l.codec.Decode(line)
			if err != nil {
				return fmt.Errorf("failed to decode log entry: %w", err)
			}
			if err := consume(command); err != nil {
				return err
			}
		}
	}
}

// Append encodes command and pushes it onto the tail of the list.
// Redis acknowledges the write before RPUSH returns, which is the
// durability this adapter offers; configure AOF on the server for
// crash safety comparable to the file adapter.
func (l *Log[C]) Append(ctx context.Context, command C) error {
	line, err := l.codec.Encode(command)
	if err != nil {
		return fmt.Errorf("failed to encode command: %w", err)
	}
	if err := l.client.RPush(ctx, l.key, line).Err(); err != nil {
		return fmt.Errorf("failed to append to redis: %w", err)
	}
	return nil
}

// Close releases the underlying client connection.
func (l *Log[C]) Close() error {
	return l.client.Close()
}
