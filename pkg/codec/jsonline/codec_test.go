package jsonline_test

import (
	"strings"
	"testing"

	"github.com/aretw0/memimg/pkg/codec/jsonline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCommand interface {
	jsonline.Typed
}

type addItem struct {
	SKU   string `json:"sku"`
	Count int    `json:"count"`
}

func (*addItem) CommandName() string { return "add_item" }

type renameItem struct {
	SKU  string `json:"sku"`
	Name string `json:"name"`
}

func (*renameItem) CommandName() string { return "rename_item" }

func newCodec() *jsonline.Codec[testCommand] {
	return jsonline.New[testCommand]().
		Register("add_item", func() testCommand { return &addItem{} }).
		Register("rename_item", func() testCommand { return &renameItem{} })
}

func TestCodec_RoundTrip(t *testing.T) {
	codec := newCodec()

	commands := []testCommand{
		&addItem{SKU: "widget", Count: 3},
		&renameItem{SKU: "widget", Name: "Widget, with \n newline and ünïcode"},
	}

	for _, want := range commands {
		line, err := codec.Encode(want)
		require.NoError(t, err)
		assert.False(t, strings.ContainsAny(line, "\n\r"), "encoded line must not contain line terminators")

		got, err := codec.Decode(line)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestCodec_UnknownType(t *testing.T) {
	codec := newCodec()

	_, err := codec.Decode(`{"type":"drop_table","data":{}}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command type")
}

func TestCodec_MalformedLine(t *testing.T) {
	codec := newCodec()

	_, err := codec.Decode("not json at all")
	assert.Error(t, err)
}
