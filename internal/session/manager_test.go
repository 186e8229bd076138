package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/chat"
)

type scriptedGateway struct {
	replies []string
}

func (g *scriptedGateway) Complete(_ context.Context, _ []chat.Message) (string, error) {
	reply := g.replies[0]
	g.replies = g.replies[1:]
	return reply, nil
}

func newTestManager(gw chat.Gateway) *Manager {
	return NewManager(Config{
		Gateway:      gw,
		SystemPrompt: "system prompt",
		FinalPrompt:  "final prompt",
	})
}

func TestManager_CreateSeedsFreshSession(t *testing.T) {
	m := newTestManager(&scriptedGateway{})

	s := m.Create()
	assert.NotEqual(t, "", s.ID.String())
	assert.Equal(t, 1, s.Controller.Transcript().Len())
	assert.Equal(t, chat.RoleSystem, s.Controller.Transcript().Last().Role)
	assert.Equal(t, chat.StateCollecting, s.Controller.State())

	got, found := m.Get(s.ID.String())
	require.True(t, found)
	assert.Same(t, s, got)
}

func TestManager_GetUnknownID(t *testing.T) {
	m := newTestManager(&scriptedGateway{})
	_, found := m.Get("nope")
	assert.False(t, found)
}

func TestManager_ResetFromReadyYieldsFreshTranscript(t *testing.T) {
	gw := &scriptedGateway{replies: []string{"Your resume is ready."}}
	m := newTestManager(gw)

	s := m.Create()
	_, err := s.Controller.Advance(context.Background())
	require.NoError(t, err)
	require.Equal(t, chat.StateReady, s.Controller.State())

	got, found := m.Reset(s.ID.String())
	require.True(t, found)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, 1, got.Controller.Transcript().Len())
	assert.Equal(t, chat.RoleSystem, got.Controller.Transcript().Last().Role)
	assert.Equal(t, chat.StateCollecting, got.Controller.State())
}

func TestManager_ResetUnknownID(t *testing.T) {
	m := newTestManager(&scriptedGateway{})
	_, found := m.Reset("nope")
	assert.False(t, found)
}

func TestManager_Delete(t *testing.T) {
	m := newTestManager(&scriptedGateway{})
	s := m.Create()

	m.Delete(s.ID.String())
	_, found := m.Get(s.ID.String())
	assert.False(t, found)
}
