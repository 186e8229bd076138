package chat

// ErrAwaitingReply indicates new user input arrived while a prior user
// message is still waiting for its assistant reply. The pending turn must
// be retried first.
type ErrAwaitingReply struct{}

func (e *ErrAwaitingReply) Error() string {
	return "an assistant reply is pending; retry the current turn before submitting new input"
}

// ErrSessionComplete indicates a turn operation on a session whose
// collection phase has already finished.
type ErrSessionComplete struct{}

func (e *ErrSessionComplete) Error() string {
	return "the interview is complete; reset the session to start over"
}

// ErrNotReady indicates the final document was requested before the
// collection phase finished.
type ErrNotReady struct{}

func (e *ErrNotReady) Error() string {
	return "the interview is still collecting information; the resume is not ready yet"
}

// ErrEmptyInput indicates a blank user submission.
type ErrEmptyInput struct{}

func (e *ErrEmptyInput) Error() string {
	return "user input must not be empty"
}
