package esdeep

import "fmt"

// ValidationError reports a malformed request, caught before any I/O.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return fmt.Sprintf("esdeep: validation: %s", e.Msg) }

// TransportError wraps a non-200 response from the cluster, carrying the
// status code and the response body verbatim (Body), both included in its
// message, matching the teacher's BasicScroller convention of surfacing the
// body on failure.
type TransportError struct {
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("esdeep: transport: status %d: %s", e.StatusCode, e.Body)
}

// ParseError reports a response that didn't have the shape the pager
// expects: a missing field, or a sort value that isn't a parseable int64.
type ParseError struct {
	Msg  string
	Path string
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("esdeep: parse: %s", e.Msg)
	}
	return fmt.Sprintf("esdeep: parse: %s: %s", e.Path, e.Msg)
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func parseErrorf(path, format string, args ...any) error {
	return &ParseError{Path: path, Msg: fmt.Sprintf(format, args...)}
}
