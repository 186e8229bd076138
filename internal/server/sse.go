package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-builder/internal/chat"
)

// SSEWriter helps write Server-Sent Events.
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter creates a new SSE writer.
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends an SSE event.
func (s *SSEWriter) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\n", event); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteError sends an error event.
func (s *SSEWriter) WriteError(message string) {
	s.WriteEvent("error", map[string]string{"error": message}) //nolint:errcheck
}

// handleSubmitMessageStream is the SSE variant of the turn endpoint: it
// emits "thinking" when the gateway call starts, "reply" with the
// enforced assistant text, and "ready" once the collection phase ends.
func (s *Server) handleSubmitMessageStream(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "message is required")
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	sess.Lock()
	defer sess.Unlock()

	sse.WriteEvent("thinking", map[string]string{"session_id": sess.ID.String()}) //nolint:errcheck

	reply, err := sess.Controller.Submit(r.Context(), req.Message)
	if err != nil {
		sse.WriteError(err.Error())
		return
	}

	s.sessions.Touch(sess)
	sse.WriteEvent("reply", TurnResponse{ //nolint:errcheck
		SessionID: sess.ID.String(),
		Reply:     reply,
		State:     sess.Controller.State(),
	})

	if sess.Controller.State() == chat.StateReady {
		sse.WriteEvent("ready", map[string]string{"session_id": sess.ID.String()}) //nolint:errcheck
	}
}
