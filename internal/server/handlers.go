package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-builder/internal/chat"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/session"
)

// MessageRequest is the request body for submitting an interview answer.
type MessageRequest struct {
	Message string `json:"message" validate:"required,min=1"`
}

// Validate validates the MessageRequest using the validator.
func (r *MessageRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// TurnResponse is the result of one interview turn.
type TurnResponse struct {
	SessionID string     `json:"session_id"`
	Reply     string     `json:"reply"`
	State     chat.State `json:"state"`
}

// SessionResponse represents a session for API responses. Messages hold
// the visible transcript (the system prompt is never exposed).
type SessionResponse struct {
	SessionID string         `json:"session_id"`
	State     chat.State     `json:"state"`
	Messages  []chat.Message `json:"messages"`
}

// handleCreateSession starts a new interview and returns the opening
// question.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Create()

	sess.Lock()
	defer sess.Unlock()

	reply, err := sess.Controller.Advance(r.Context())
	if err != nil {
		// The session never produced a turn; don't leave it around.
		s.sessions.Delete(sess.ID.String())
		s.turnErrorResponse(w, err)
		return
	}

	log.Printf("[SESSION] started %s", sess.ID)
	s.jsonResponse(w, http.StatusCreated, TurnResponse{
		SessionID: sess.ID.String(),
		Reply:     reply,
		State:     sess.Controller.State(),
	})
}

// handleGetSession returns the session's state and visible transcript.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	sess.Lock()
	defer sess.Unlock()

	s.jsonResponse(w, http.StatusOK, SessionResponse{
		SessionID: sess.ID.String(),
		State:     sess.Controller.State(),
		Messages:  sess.Controller.Transcript().Visible(),
	})
}

// handleSubmitMessage records the user's answer and runs the next turn.
func (s *Server) handleSubmitMessage(w http.ResponseWriter, r *http.Request) {
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

	sess.Lock()
	defer sess.Unlock()

	reply, err := sess.Controller.Submit(r.Context(), req.Message)
	if err != nil {
		s.turnErrorResponse(w, err)
		return
	}

	s.sessions.Touch(sess)
	s.jsonResponse(w, http.StatusOK, TurnResponse{
		SessionID: sess.ID.String(),
		Reply:     reply,
		State:     sess.Controller.State(),
	})
}

// handleResetSession discards the conversation and reseeds the session.
func (s *Server) handleResetSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sess, found := s.sessions.Reset(id)
	if !found {
		s.errorResponse(w, http.StatusNotFound, "Session not found: "+id)
		return
	}

	sess.Lock()
	defer sess.Unlock()

	log.Printf("[SESSION] reset %s", sess.ID)
	s.jsonResponse(w, http.StatusOK, SessionResponse{
		SessionID: sess.ID.String(),
		State:     sess.Controller.State(),
		Messages:  sess.Controller.Transcript().Visible(),
	})
}

// handleResumeText serves the raw generated resume as a plain-text file.
func (s *Server) handleResumeText(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	text, err := s.finalText(r.Context(), sess)
	if err != nil {
		s.turnErrorResponse(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="resume.txt"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(text)); err != nil {
		log.Printf("Error writing resume text: %v", err)
	}
}

// handleResumePDF serves the paginated rendering of the generated resume.
func (s *Server) handleResumePDF(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	text, err := s.finalText(r.Context(), sess)
	if err != nil {
		s.turnErrorResponse(w, err)
		return
	}

	doc := rendering.Render(text)
	pdf, err := rendering.Paginate(r.Context(), doc)
	if err != nil {
		// The plain-text artifact is still available on its own endpoint.
		s.turnErrorResponse(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="resume.pdf"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		log.Printf("Error writing resume PDF: %v", err)
	}
}

// finalText generates the resume text for a ready session. Concurrent
// requests for the same session share one gateway call; nothing is
// cached beyond that, so a reset always starts clean.
func (s *Server) finalText(ctx context.Context, sess *session.Session) (string, error) {
	v, err, _ := s.finalDocs.Do(sess.ID.String(), func() (any, error) {
		sess.Lock()
		defer sess.Unlock()
		return sess.Controller.FinalDocument(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// lookupSession resolves the {id} path parameter to a live session,
// writing the error response itself when it can't.
func (s *Server) lookupSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := r.PathValue("id")
	if id == "" {
		s.errorResponse(w, http.StatusBadRequest, "Session ID is required")
		return nil, false
	}

	sess, found := s.sessions.Get(id)
	if !found {
		s.errorResponse(w, http.StatusNotFound, "Session not found: "+id)
		return nil, false
	}
	return sess, true
}
