package chat

import (
	"context"
	"strings"
)

// Gateway is the completion service the controller depends on. Given the
// full transcript it returns exactly one assistant reply. Implementations
// must be safe for concurrent use; the controller itself is not.
type Gateway interface {
	Complete(ctx context.Context, transcript []Message) (string, error)
}

// State is the dialogue phase of a session.
type State string

// Dialogue states. A session starts in StateCollecting and moves to
// StateReady exactly once; StateReady is terminal until a reset recreates
// the session.
const (
	StateCollecting State = "collecting"
	StateReady      State = "ready"
)

// Controller drives the interview turn cycle over a single transcript.
// It is the transcript's only writer. All methods assume serialized
// access within a session.
type Controller struct {
	gateway     Gateway
	markers     []string
	finalPrompt string
	transcript  *Transcript
	state       State
}

// NewController creates a controller with a fresh transcript seeded with
// the system prompt. An empty marker set falls back to
// DefaultReadyMarkers.
func NewController(gateway Gateway, systemPrompt, finalPrompt string, markers []string) *Controller {
	if len(markers) == 0 {
		markers = DefaultReadyMarkers
	}
	return &Controller{
		gateway:     gateway,
		markers:     markers,
		finalPrompt: finalPrompt,
		transcript:  NewTranscript(systemPrompt),
		state:       StateCollecting,
	}
}

// State returns the current dialogue state.
func (c *Controller) State() State {
	return c.state
}

// Transcript exposes the conversation history for display.
func (c *Controller) Transcript() *Transcript {
	return c.transcript
}

// AwaitingReply reports whether the next step of the turn cycle is an
// assistant reply, i.e. the transcript ends in the system or a user
// message.
func (c *Controller) AwaitingReply() bool {
	return c.transcript.Last().Role != RoleAssistant
}

// Advance requests the next assistant reply if one is due and returns the
// enforced reply text. If the transcript already ends in an assistant
// message the gateway is not called and the existing reply is returned,
// so two assistant replies are never requested back to back. On gateway
// failure nothing is appended and the state is unchanged, which makes the
// same turn retryable.
func (c *Controller) Advance(ctx context.Context) (string, error) {
	if c.state == StateReady {
		return "", &ErrSessionComplete{}
	}
	if !c.AwaitingReply() {
		return c.transcript.Last().Content, nil
	}

	reply, err := c.gateway.Complete(ctx, c.transcript.Messages())
	if err != nil {
		return "", err
	}

	reply = EnforceSingleQuestion(reply)
	c.transcript.Append(RoleAssistant, reply)

	if ContainsReadyMarker(reply, c.markers) {
		c.state = StateReady
	}
	return reply, nil
}

// Submit records the user's answer and runs the next turn. Submitting the
// identical answer again while its reply is still pending (a retried turn
// after a gateway failure) does not append a duplicate message; differing
// input while a reply is pending is rejected.
func (c *Controller) Submit(ctx context.Context, input string) (string, error) {
	if c.state == StateReady {
		return "", &ErrSessionComplete{}
	}
	if strings.TrimSpace(input) == "" {
		return "", &ErrEmptyInput{}
	}

	if last := c.transcript.Last(); last.Role == RoleUser {
		if last.Content != input {
			return "", &ErrAwaitingReply{}
		}
		// Same answer resubmitted after a failed turn: retry the reply
		// without appending the message a second time.
	} else {
		c.transcript.Append(RoleUser, input)
	}

	return c.Advance(ctx)
}

// FinalDocument asks the gateway for the completed resume text. The final
// instruction is sent on a snapshot of the transcript and is not recorded
// in it, so repeated requests see identical context. Only valid once the
// session is ready.
func (c *Controller) FinalDocument(ctx context.Context) (string, error) {
	if c.state != StateReady {
		return "", &ErrNotReady{}
	}

	snapshot := append(c.transcript.Messages(), Message{Role: RoleUser, Content: c.finalPrompt})
	return c.gateway.Complete(ctx, snapshot)
}
