package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseToolCalls_Single(t *testing.T) {
	calls := ParseToolCalls(` {"name": "add", "arguments": {"a": "2", "b": 3}} `)
	require.Len(t, calls, 1)
	assert.Equal(t, "add", calls[0].Name)
	assert.Equal(t, "2", calls[0].Arguments["a"])
	assert.Equal(t, json.Number("3"), calls[0].Arguments["b"])
	assert.False(t, calls[0].IsError())
}

func TestParseToolCalls_ArrayIsFlattened(t *testing.T) {
	calls := ParseToolCalls(`[{"name": "a", "arguments": {}}, {"name": "b", "arguments": {"x": 1}}]`)
	require.Len(t, calls, 2)
	assert.Equal(t, "a", calls[0].Name)
	assert.Equal(t, "b", calls[1].Name)
}

func TestParseToolCalls_RepairedArray(t *testing.T) {
	calls := ParseToolCalls(`[{"name": "a", "arguments": {}},]`)
	require.Len(t, calls, 1)
	assert.Equal(t, "a", calls[0].Name)
}

func TestParseToolCalls_Blank(t *testing.T) {
	assert.Empty(t, ParseToolCalls("   "))
}

func TestParseToolCalls_GarbageYieldsErrorCall(t *testing.T) {
	calls := ParseToolCalls(`not json at all`)
	require.Len(t, calls, 1)
	assert.True(t, calls[0].IsError())
	assert.NotEmpty(t, calls[0].Arguments["error"])
}

func TestParseToolCalls_NonObjectArguments(t *testing.T) {
	calls := ParseToolCalls(`{"name": "a", "arguments": "x"}`)
	require.Len(t, calls, 1)
	assert.True(t, calls[0].IsError())
}

func TestParseToolCalls_MissingArguments(t *testing.T) {
	calls := ParseToolCalls(`{"name": "now"}`)
	require.Len(t, calls, 1)
	assert.Equal(t, "now", calls[0].Name)
	assert.NotNil(t, calls[0].Arguments)
	assert.Empty(t, calls[0].Arguments)
}

func TestParseToolCallBlocks(t *testing.T) {
	calls := ParseToolCallBlocks([]string{
		`{"name": "a", "arguments": {}}`,
		`[{"name": "b", "arguments": {}}, {"name": "c", "arguments": {}}]`,
	})
	require.Len(t, calls, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{calls[0].Name, calls[1].Name, calls[2].Name})
}

func TestCall_String(t *testing.T) {
	c := Call{Name: "add", Arguments: map[string]any{"a": 1}}
	assert.Equal(t, `{"name":"add","arguments":{"a":1}}`, c.String())
}
