package chat

import "strings"

// EnforceSingleQuestion truncates an assistant reply to its first
// interrogative clause, so the assistant never asks more than one
// question per turn. Replies without a question mark pass through
// unchanged. Otherwise the reply is split on "?", whitespace-only
// fragments are discarded, and the first remaining fragment is returned
// with a single "?" appended. A reply made of nothing but question marks
// collapses to "?".
func EnforceSingleQuestion(reply string) string {
	if !strings.Contains(reply, "?") {
		return reply
	}

	for _, fragment := range strings.Split(reply, "?") {
		if strings.TrimSpace(fragment) == "" {
			continue
		}
		return fragment + "?"
	}

	return "?"
}
