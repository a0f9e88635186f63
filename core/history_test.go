package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed() []Message {
	return []Message{NewSystemMessage("sys"), NewUserMessage("<question>q</question>")}
}

func TestHistory_AppendWithinBound(t *testing.T) {
	h := NewHistory(2, 3, seed()...)
	h.Append(NewAssistantMessage("a1"))
	h.Append(NewUserMessage("u1"))

	assert.Equal(t, 4, h.Len())
	msgs := h.Messages()
	assert.Equal(t, "a1", msgs[2].Content)
	assert.Equal(t, "u1", msgs[3].Content)
}

func TestHistory_TrimsOldestTailEntries(t *testing.T) {
	h := NewHistory(2, 3, seed()...)
	for i := 0; i < 10; i++ {
		h.Append(NewAssistantMessage(fmt.Sprintf("m%d", i)))
		assert.LessOrEqual(t, h.Len(), 5)
	}

	msgs := h.Messages()
	require.Len(t, msgs, 5)
	assert.Equal(t, "sys", msgs[0].Content)
	assert.Equal(t, "<question>q</question>", msgs[1].Content)
	assert.Equal(t, "m7", msgs[2].Content)
	assert.Equal(t, "m8", msgs[3].Content)
	assert.Equal(t, "m9", msgs[4].Content)
}

func TestHistory_ZeroTailKeepsOnlyHead(t *testing.T) {
	h := NewHistory(2, 0, seed()...)
	h.Append(NewAssistantMessage("dropped"))

	assert.Equal(t, 2, h.Len())
	assert.Equal(t, RoleSystem, h.Messages()[0].Role)
}

func TestHistory_NegativeTailIsUnbounded(t *testing.T) {
	h := NewHistory(2, -1, seed()...)
	for i := 0; i < 50; i++ {
		h.Append(NewUserMessage("x"))
	}
	assert.Equal(t, 52, h.Len())
}

func TestHistory_MessagesIsCopy(t *testing.T) {
	h := NewHistory(2, 10, seed()...)
	msgs := h.Messages()
	msgs[0].Content = "mutated"
	assert.Equal(t, "sys", h.Messages()[0].Content)
}

func TestHistory_ExplicitTrim(t *testing.T) {
	h := NewHistory(1, -1, NewSystemMessage("s"))
	for i := 0; i < 5; i++ {
		h.Append(NewUserMessage(fmt.Sprintf("%d", i)))
	}
	h.Trim(1, 2)

	msgs := h.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "s", msgs[0].Content)
	assert.Equal(t, "3", msgs[1].Content)
	assert.Equal(t, "4", msgs[2].Content)
}
