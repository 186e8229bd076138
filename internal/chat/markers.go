package chat

import "strings"

// DefaultReadyMarkers are the phrases the system prompt instructs the
// assistant to emit when the collection phase is complete. The set is
// configuration, not business logic: deployments can override it without
// touching code (the upstream phrasing drifted between model versions).
var DefaultReadyMarkers = []string{
	"resume is ready",
	"resume ready",
	"generating your resume",
	"i have enough information",
}

// ContainsReadyMarker reports whether an assistant reply contains any of
// the given marker phrases. Matching is a case-insensitive substring
// check.
func ContainsReadyMarker(reply string, markers []string) bool {
	lowered := strings.ToLower(reply)
	for _, marker := range markers {
		marker = strings.TrimSpace(strings.ToLower(marker))
		if marker == "" {
			continue
		}
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}
