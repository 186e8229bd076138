// Package chat implements the guided resume interview: the conversation
// transcript, the single-question rule, ready-marker detection, and the
// dialogue state machine that drives the turn cycle.
package chat

// Role identifies the author of a transcript message.
type Role string

// Roles recognized by the completion gateway.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single turn in the conversation. Messages are immutable
// once appended to a Transcript; ordering is significant.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
