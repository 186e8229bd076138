package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/resume-builder/internal/chat"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/rendering"
)

// HTTPStatus returns the appropriate HTTP status code for a turn or
// export error. Gateway failures map to upstream statuses so clients can
// tell a retryable turn from a misconfigured deployment.
func HTTPStatus(err error) int {
	var gw *llm.GatewayError
	if errors.As(err, &gw) {
		switch gw.Kind {
		case llm.KindAuth:
			return http.StatusBadGateway
		case llm.KindRateLimit:
			return http.StatusTooManyRequests
		default:
			return http.StatusGatewayTimeout
		}
	}

	var (
		awaiting *chat.ErrAwaitingReply
		complete *chat.ErrSessionComplete
		notReady *chat.ErrNotReady
		empty    *chat.ErrEmptyInput
	)
	switch {
	case errors.As(err, &awaiting), errors.As(err, &complete), errors.As(err, &notReady):
		return http.StatusConflict
	case errors.As(err, &empty):
		return http.StatusBadRequest
	}

	var renderErr *rendering.RenderError
	var paginateErr *rendering.PaginateError
	if errors.As(err, &renderErr) || errors.As(err, &paginateErr) {
		return http.StatusInternalServerError
	}

	return http.StatusInternalServerError
}

// turnErrorResponse reports a turn or export failure with its mapped
// status. The error is surfaced, never swallowed; transcript state is
// preserved by the controller, so the client may retry.
func (s *Server) turnErrorResponse(w http.ResponseWriter, err error) {
	s.errorResponse(w, HTTPStatus(err), err.Error())
}
