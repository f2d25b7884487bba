package client

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTransport wraps every failure to reach the store: connection errors,
// timeouts and unreadable responses.
var ErrTransport = errors.New("could not reach the expense store")

// StatusError is a non-2xx answer. Message is the store's {"message"} body,
// empty when the body had none.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("store returned status %d", e.StatusCode)
	}

	return fmt.Sprintf("store returned status %d: %s", e.StatusCode, e.Message)
}

// ValidationError lists the required fields a request is missing. It is
// returned before any request is sent.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// UserMessage picks the text to show for err: the store's message when it
// sent one, a prompt for missing fields, or fallback.
func UserMessage(err error, fallback string) string {
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.Message != "" {
		return statusErr.Message
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return "Please fill all required fields"
	}

	return fallback
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == code
}
