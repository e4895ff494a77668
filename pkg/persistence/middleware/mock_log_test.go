package middleware_test

import (
	"context"
	"errors"

	"github.com/aretw0/memimg/pkg/ports"
)

// mockLog is a scriptable EventLog for middleware tests.
type mockLog struct {
	entries   []ports.ContractCommand
	appendErr error
	closed    bool
}

var _ ports.EventLog[ports.ContractCommand] = (*mockLog)(nil)

func (m *mockLog) Replay(ctx context.Context, consume func(ports.ContractCommand) error) error {
	for _, c := range m.entries {
		if err := consume(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockLog) Append(ctx context.Context, command ports.ContractCommand) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.entries = append(m.entries, command)
	return nil
}

func (m *mockLog) Close() error {
	if m.closed {
		return errors.New("already closed")
	}
	m.closed = true
	return nil
}
