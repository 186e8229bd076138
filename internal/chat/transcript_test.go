package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTranscript_SeedsSingleSystemMessage(t *testing.T) {
	tr := NewTranscript("persona prompt")

	require.Equal(t, 1, tr.Len())
	assert.Equal(t, RoleSystem, tr.Last().Role)
	assert.Equal(t, "persona prompt", tr.Last().Content)
}

func TestTranscript_AppendPreservesOrder(t *testing.T) {
	tr := NewTranscript("system")
	tr.Append(RoleAssistant, "What is your name?")
	tr.Append(RoleUser, "Ada Lovelace")

	msgs := tr.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, RoleSystem, msgs[0].Role)
	assert.Equal(t, RoleAssistant, msgs[1].Role)
	assert.Equal(t, RoleUser, msgs[2].Role)
	assert.Equal(t, "Ada Lovelace", msgs[2].Content)
}

func TestTranscript_MessagesReturnsIndependentCopy(t *testing.T) {
	tr := NewTranscript("system")
	tr.Append(RoleAssistant, "What is your name?")

	snapshot := tr.Messages()
	snapshot = append(snapshot, Message{Role: RoleUser, Content: "transient"})
	snapshot[0].Content = "mutated"

	assert.Equal(t, 2, tr.Len())
	assert.Equal(t, "system", tr.Messages()[0].Content)
}

func TestTranscript_VisibleHidesSystemMessage(t *testing.T) {
	tr := NewTranscript("system")
	assert.Empty(t, tr.Visible())

	tr.Append(RoleAssistant, "What is your name?")
	tr.Append(RoleUser, "Ada")

	visible := tr.Visible()
	require.Len(t, visible, 2)
	assert.Equal(t, RoleAssistant, visible[0].Role)
	assert.Equal(t, RoleUser, visible[1].Role)
}

func TestTranscript_ToleratesConsecutiveSameRoleMessages(t *testing.T) {
	tr := NewTranscript("system")
	tr.Append(RoleUser, "first")
	tr.Append(RoleUser, "second")

	msgs := tr.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "second", tr.Last().Content)
}
