package memory

import (
	"context"
	"sync"

	"github.com/aretw0/memimg/pkg/ports"
)

// Log implements ports.EventLog in memory. It stores the encoded lines
// rather than the command values, so the codec round-trip is exercised
// exactly as it would be against a real file.
// Safe for concurrent use. Intended for tests and embedded scenarios.
type Log[C any] struct {
	codec ports.Codec[C]
	mu    sync.RWMutex
	lines []string
}

// NewLog creates a new empty in-memory event log.
func NewLog[C any](codec ports.Codec[C]) *Log[C] {
	return &Log[C]{codec: codec}
}

// Replay decodes and delivers every recorded command in append order.
func (l *Log[C]) Replay(ctx context.Context, consume func(C) error) error {
	l.mu.RLock()
	lines := make([]string, len(l.lines))
	copy(lines, l.lines)
	l.mu.RUnlock()

	for _, line := range lines {
		command, err := l.codec.Decode(line)
		if err != nil {
			return err
		}
		if err := consume(command); err != nil {
			return err
		}
	}
	return nil
}

// Append encodes and records one command.
func (l *Log[C]) Append(ctx context.Context, command C) error {
	line, err := l.codec.Encode(command)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, line)
	return nil
}

// Close is a no-op; the log lives and dies with the process.
func (l *Log[C]) Close() error { return nil }

// Len returns the number of recorded entries.
func (l *Log[C]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.lines)
}

// Lines returns a copy of the recorded entries, in append order.
func (l *Log[C]) Lines() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}
