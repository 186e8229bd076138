package chat

// Transcript is the append-only conversation history sent to the
// completion gateway. It always begins with exactly one system message,
// created when the session starts. The dialogue Controller is the only
// writer; message alternation is not enforced here, so consecutive
// same-role messages are tolerated without corrupting state.
type Transcript struct {
	messages []Message
}

// NewTranscript creates a transcript seeded with the system prompt.
func NewTranscript(systemPrompt string) *Transcript {
	return &Transcript{
		messages: []Message{{Role: RoleSystem, Content: systemPrompt}},
	}
}

// Append adds a message to the end of the transcript.
func (t *Transcript) Append(role Role, content string) {
	t.messages = append(t.messages, Message{Role: role, Content: content})
}

// Len returns the number of messages, including the system message.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Last returns the most recent message.
func (t *Transcript) Last() Message {
	return t.messages[len(t.messages)-1]
}

// Messages returns a copy of the full history. Callers may extend the
// copy (e.g. with a transient final prompt) without mutating the
// transcript.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Visible returns a copy of the history without the leading system
// message, which is never shown to the user.
func (t *Transcript) Visible() []Message {
	out := make([]Message, len(t.messages)-1)
	copy(out, t.messages[1:])
	return out
}
