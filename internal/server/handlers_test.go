package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/chat"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/session"
)

// scriptedGateway returns queued replies in order, or a queued error.
type scriptedGateway struct {
	replies []string
	err     error
}

func (g *scriptedGateway) Complete(_ context.Context, _ []chat.Message) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	reply := g.replies[0]
	g.replies = g.replies[1:]
	return reply, nil
}

func newTestServer(gw chat.Gateway) *Server {
	sessions := session.NewManager(session.Config{
		Gateway:      gw,
		SystemPrompt: "system prompt",
		FinalPrompt:  "final prompt",
	})
	return New(Config{Port: 0, Sessions: sessions})
}

func createSession(t *testing.T, srv *Server) TurnResponse {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("POST", "/sessions", nil))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var turn TurnResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &turn))
	return turn
}

func submitMessage(srv *Server, id, message string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(MessageRequest{Message: message})
	req := httptest.NewRequest("POST", "/sessions/"+id+"/messages", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestCreateSession_ReturnsOpeningQuestion(t *testing.T) {
	gw := &scriptedGateway{replies: []string{"What is your full name?"}}
	srv := newTestServer(gw)

	turn := createSession(t, srv)
	assert.NotEmpty(t, turn.SessionID)
	assert.Equal(t, "What is your full name?", turn.Reply)
	assert.Equal(t, chat.StateCollecting, turn.State)
}

func TestCreateSession_GatewayFailureDiscardsSession(t *testing.T) {
	gw := &scriptedGateway{err: &llm.GatewayError{Kind: llm.KindTransport, Message: "down"}}
	srv := newTestServer(gw)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("POST", "/sessions", nil))
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}

func TestSubmitMessage_RunsTurn(t *testing.T) {
	gw := &scriptedGateway{replies: []string{"What is your name?", "What is your phone number?"}}
	srv := newTestServer(gw)
	turn := createSession(t, srv)

	rec := submitMessage(srv, turn.SessionID, "Ada Lovelace")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var next TurnResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &next))
	assert.Equal(t, "What is your phone number?", next.Reply)
	assert.Equal(t, chat.StateCollecting, next.State)
}

func TestSubmitMessage_EnforcesSingleQuestion(t *testing.T) {
	gw := &scriptedGateway{replies: []string{"Q1?", "What is your email? What is your address?"}}
	srv := newTestServer(gw)
	turn := createSession(t, srv)

	rec := submitMessage(srv, turn.SessionID, "Ada")
	require.Equal(t, http.StatusOK, rec.Code)

	var next TurnResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &next))
	assert.Equal(t, "What is your email?", next.Reply)
}

func TestSubmitMessage_MarkerMovesSessionToReady(t *testing.T) {
	gw := &scriptedGateway{replies: []string{"Q1?", "Great - your resume is ready."}}
	srv := newTestServer(gw)
	turn := createSession(t, srv)

	rec := submitMessage(srv, turn.SessionID, "Ada")
	require.Equal(t, http.StatusOK, rec.Code)

	var next TurnResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &next))
	assert.Equal(t, chat.StateReady, next.State)

	// Further turns conflict with the terminal state.
	rec = submitMessage(srv, turn.SessionID, "more info")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSubmitMessage_ValidationFailure(t *testing.T) {
	gw := &scriptedGateway{replies: []string{"Q1?"}}
	srv := newTestServer(gw)
	turn := createSession(t, srv)

	rec := submitMessage(srv, turn.SessionID, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitMessage_UnknownSession(t *testing.T) {
	srv := newTestServer(&scriptedGateway{})
	rec := submitMessage(srv, "does-not-exist", "hello")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitMessage_GatewayErrorsMapToUpstreamStatuses(t *testing.T) {
	gw := &scriptedGateway{replies: []string{"Q1?"}}
	srv := newTestServer(gw)
	turn := createSession(t, srv)

	gw.err = &llm.GatewayError{Kind: llm.KindAuth, Message: "bad key"}
	rec := submitMessage(srv, turn.SessionID, "Ada")
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	gw.err = &llm.GatewayError{Kind: llm.KindRateLimit, Message: "slow down"}
	rec = submitMessage(srv, turn.SessionID, "Ada")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestGetSession_HidesSystemMessage(t *testing.T) {
	gw := &scriptedGateway{replies: []string{"What is your name?", "Q2?"}}
	srv := newTestServer(gw)
	turn := createSession(t, srv)
	submitMessage(srv, turn.SessionID, "Ada")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/sessions/"+turn.SessionID, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Messages, 3)
	for _, msg := range got.Messages {
		assert.NotEqual(t, chat.RoleSystem, msg.Role)
	}
}

func TestResetSession_YieldsFreshCollectingSession(t *testing.T) {
	gw := &scriptedGateway{replies: []string{"Your resume is ready."}}
	srv := newTestServer(gw)
	turn := createSession(t, srv)
	require.Equal(t, chat.StateReady, turn.State)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("POST", "/sessions/"+turn.SessionID+"/reset", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, chat.StateCollecting, got.State)
	assert.Empty(t, got.Messages)
}

// steadyGateway always returns the same reply; safe for concurrent use.
type steadyGateway struct {
	reply string
}

func (g *steadyGateway) Complete(_ context.Context, _ []chat.Message) (string, error) {
	return g.reply, nil
}

func TestResetSession_SerializedAgainstConcurrentMessages(t *testing.T) {
	srv := newTestServer(&steadyGateway{reply: "What else?"})
	turn := createSession(t, srv)

	// Hammer reset and submit on the same session; the per-session lock
	// must order every transcript access (run with -race).
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, httptest.NewRequest("POST", "/sessions/"+turn.SessionID+"/reset", nil))
			assert.Equal(t, http.StatusOK, rec.Code)

			var got SessionResponse
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, chat.StateCollecting, got.State)
			// An even visible length means a user message slipped into
			// the snapshot without its reply.
			assert.Equal(t, 0, len(got.Messages)%2)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			rec := submitMessage(srv, turn.SessionID, "Ada")
			assert.Contains(t, []int{http.StatusOK, http.StatusConflict}, rec.Code)
		}
	}()
	wg.Wait()
}

func TestResumeText_RequiresReadyState(t *testing.T) {
	gw := &scriptedGateway{replies: []string{"What is your name?"}}
	srv := newTestServer(gw)
	turn := createSession(t, srv)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/sessions/"+turn.SessionID+"/resume.txt", nil))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestResumeText_ServesPlainTextArtifact(t *testing.T) {
	gw := &scriptedGateway{replies: []string{"Your resume is ready."}}
	srv := newTestServer(gw)
	turn := createSession(t, srv)
	require.Equal(t, chat.StateReady, turn.State)

	gw.replies = []string{"# Ada Lovelace\n\n- Analytical engines"}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/sessions/"+turn.SessionID+"/resume.txt", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain"))
	assert.Equal(t, "# Ada Lovelace\n\n- Analytical engines", rec.Body.String())
}

func TestHealth(t *testing.T) {
	srv := newTestServer(&scriptedGateway{})
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSubmitMessageStream_EmitsReplyAndReadyEvents(t *testing.T) {
	gw := &scriptedGateway{replies: []string{"Q1?", "Your resume is ready."}}
	srv := newTestServer(gw)
	turn := createSession(t, srv)

	body, _ := json.Marshal(MessageRequest{Message: "Ada"})
	req := httptest.NewRequest("POST", "/sessions/"+turn.SessionID+"/messages/stream", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	out := rec.Body.String()
	assert.Contains(t, out, "event: thinking")
	assert.Contains(t, out, "event: reply")
	assert.Contains(t, out, "event: ready")
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
}

func TestHTTPStatus_ErrorMapping(t *testing.T) {
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(&llm.GatewayError{Kind: llm.KindAuth}))
	assert.Equal(t, http.StatusTooManyRequests, HTTPStatus(&llm.GatewayError{Kind: llm.KindRateLimit}))
	assert.Equal(t, http.StatusGatewayTimeout, HTTPStatus(&llm.GatewayError{Kind: llm.KindTransport}))
	assert.Equal(t, http.StatusConflict, HTTPStatus(&chat.ErrAwaitingReply{}))
	assert.Equal(t, http.StatusConflict, HTTPStatus(&chat.ErrSessionComplete{}))
	assert.Equal(t, http.StatusConflict, HTTPStatus(&chat.ErrNotReady{}))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(&chat.ErrEmptyInput{}))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("anything else")))
}
