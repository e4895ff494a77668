package file

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/memimg/pkg/ports"
)

// Log implements ports.EventLog using a line-oriented text file on the
// local filesystem: one encoded command per line, in strict append order.
type Log[C any] struct {
	path   string
	codec  ports.Codec[C]
	writer *os.File // lazily opened on first Append
}

// Open prepares a file-backed event log at path, creating the file and
// any missing parent directories if absent. The file is not held open
// for writing until the first Append.
func Open[C any](path string, codec ports.Codec[C]) (*Log[C], error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to ensure log directory: %w", err)
		}
	}

	// Create the file if it doesn't exist so Replay on a fresh log
	// succeeds instead of failing with a missing-file error.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close log file: %w", err)
	}

	return &Log[C]{path: path, codec: codec}, nil
}

// Replay reads every line of the log in write order, decodes it, and
// hands the command to consume. Blank lines are tolerated and skipped.
// It stops on the first decode or consume error and returns it.
func (l *Log[C]) Replay(ctx context.Context, consume func(C) error) error {
	f, err := os.Open(l.path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		command, err := l.codec.Decode(line)
		if err != nil {
			return fmt.Errorf("failed to decode log line: %w", err)
		}
		if err := consume(command); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read log file: %w", err)
	}
	return nil
}

// Append encodes command, writes it as one line past the end of the
// file, and fsyncs before returning. The write handle is opened lazily
// on the first call and kept for the lifetime of the log.
func (l *Log[C]) Append(ctx context.Context, command C) error {
	if l.writer == nil {
		f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file for append: %w", err)
		}
		l.writer = f
	}

	line, err := l.codec.Encode(command)
	if err != nil {
		return fmt.Errorf("failed to encode command: %w", err)
	}
	// One command per line is the whole file format; an embedded newline
	// would corrupt every replay after this point.
	if strings.ContainsAny(line, "\r\n") {
		return fmt.Errorf("encoded command contains a line terminator: %q", line)
	}

	if _, err := l.writer.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("failed to write log line: %w", err)
	}
	if err := l.writer.Sync(); err != nil {
		return fmt.Errorf("failed to fsync log file: %w", err)
	}
	return nil
}

// Close flushes and releases the write handle, if one was opened.
func (l *Log[C]) Close() error {
	if l.writer == nil {
		return nil
	}
	f := l.writer
	l.writer = nil

	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to fsync log file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	return nil
}
