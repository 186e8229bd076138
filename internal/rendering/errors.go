package rendering

import "fmt"

// RenderError represents a failure building the document layout.
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// PaginateError represents a failure producing the paginated PDF
// artifact. The plain-text artifact is unaffected by it.
type PaginateError struct {
	Message string
	Cause   error
}

func (e *PaginateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("paginate error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("paginate error: %s", e.Message)
}

func (e *PaginateError) Unwrap() error {
	return e.Cause
}
