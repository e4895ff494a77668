// Package jsonline provides a single-line JSON codec for domains whose
// command type is an interface over several concrete structs.
//
// Each command is wrapped in a {"type": ..., "data": ...} envelope so the
// concrete type can be recovered on decode. Concrete command types are
// registered up front under a stable wire name; renaming a Go type does
// not invalidate an existing log as long as the wire name is kept.
package jsonline

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Typed is implemented by commands that carry a stable wire name.
type Typed interface {
	CommandName() string
}

// Codec implements ports.Codec for a registered set of command types.
type Codec[C Typed] struct {
	factories map[string]func() C
}

type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// New creates an empty codec. Register each concrete command type before
// decoding; factories must return a pointer so Decode can unmarshal into it.
func New[C Typed]() *Codec[C] {
	return &Codec[C]{factories: make(map[string]func() C)}
}

// Register binds a wire name to a factory producing an empty command of
// the matching concrete type. It returns the codec for chaining.
func (c *Codec[C]) Register(name string, factory func() C) *Codec[C] {
	c.factories[name] = factory
	return c
}

// Encode marshals command into a one-line envelope.
func (c *Codec[C]) Encode(command C) (string, error) {
	data, err := json.Marshal(command)
	if err != nil {
		return "", fmt.Errorf("failed to marshal command: %w", err)
	}

	out, err := json.Marshal(envelope{Type: command.CommandName(), Data: data})
	if err != nil {
		return "", fmt.Errorf("failed to marshal envelope: %w", err)
	}

	// json.Marshal emits no newlines, but the one-line contract is load
	// bearing for the log format, so normalize anyway.
	return strings.ReplaceAll(string(out), "\n", " "), nil
}

// Decode unmarshals one envelope line back into its concrete command.
func (c *Codec[C]) Decode(line string) (C, error) {
	var zero C

	var env envelope
	if err := json.Unmarshal([]byte(line), &env); err != nil {
		return zero, fmt.Errorf("failed to unmarshal envelope: %w", err)
	}

	factory, ok := c.factories[env.Type]
	if !ok {
		return zero, fmt.Errorf("unknown command type %q", env.Type)
	}

	command := factory()
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, command); err != nil {
			return zero, fmt.Errorf("failed to unmarshal %q command: %w", env.Type, err)
		}
	}
	return command, nil
}
