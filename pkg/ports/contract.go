package ports

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ContractCommand is the command type used by the EventLog contract
// suite. Adapters instantiate their log with it when running the suite.
type ContractCommand struct {
	Seq  int    `json:"seq"`
	Note string `json:"note"`
}

// ContractCodec encodes ContractCommand as single-line JSON.
type ContractCodec struct{}

func (ContractCodec) Encode(c ContractCommand) (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (ContractCodec) Decode(line string) (ContractCommand, error) {
	var c ContractCommand
	if err := json.Unmarshal([]byte(line), &c); err != nil {
		return ContractCommand{}, err
	}
	return c, nil
}

// RunEventLogContract runs a suite of tests to verify that an EventLog
// implementation adheres to the defined interface contract. open must
// return a fresh, empty log.
func RunEventLogContract(t *testing.T, open func(t *testing.T) EventLog[ContractCommand]) {
	ctx := context.Background()

	t.Run("Replay Empty", func(t *testing.T) {
		log := open(t)
		defer func() { _ = log.Close() }()

		calls := 0
		err := log.Replay(ctx, func(ContractCommand) error {
			calls++
			return nil
		})
		require.NoError(t, err, "replaying an empty log should not return error")
		assert.Zero(t, calls, "empty log should deliver no commands")
	})

	t.Run("Append and Replay In Order", func(t *testing.T) {
		log := open(t)
		defer func() { _ = log.Close() }()

		want := []ContractCommand{
			{Seq: 1, Note: "first"},
			{Seq: 2, Note: "second"},
			{Seq: 3, Note: "third"},
		}
		for _, c := range want {
			require.NoError(t, log.Append(ctx, c))
		}

		var got []ContractCommand
		err := log.Replay(ctx, func(c ContractCommand) error {
			got = append(got, c)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, want, got, "replay must yield all commands in append order")
	})

	t.Run("Consumer Error Propagates", func(t *testing.T) {
		log := open(t)
		defer func() { _ = log.Close() }()

		require.NoError(t, log.Append(ctx, ContractCommand{Seq: 1}))
		require.NoError(t, log.Append(ctx, ContractCommand{Seq: 2}))

		boom := errors.New("boom")
		seen := 0
		err := log.Replay(ctx, func(ContractCommand) error {
			seen++
			return boom
		})
		assert.ErrorIs(t, err, boom, "replay must propagate the consumer error")
		assert.Equal(t, 1, seen, "replay must stop at the first consumer error")
	})

	t.Run("Close", func(t *testing.T) {
		log := open(t)
		require.NoError(t, log.Append(ctx, ContractCommand{Seq: 1, Note: "closing"}))
		assert.NoError(t, log.Close())
	})
}
