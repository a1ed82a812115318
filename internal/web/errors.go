package web

import "fmt"

// HTTPError carries an HTTP status and a visitor-safe message through
// the error pipeline. Err holds the underlying cause for the logs.
type HTTPError struct {
	Status  int
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d %s: %v", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("%d %s", e.Status, e.Message)
}

func (e *HTTPError) Unwrap() error { return e.Err }

// NotFoundError builds a 404 with a message safe to show the visitor.
func NotFoundError(format string, args ...any) *HTTPError {
	return &HTTPError{Status: 404, Message: fmt.Sprintf(format, args...)}
}
