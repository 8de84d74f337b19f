package graphql

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorMessage is one entry of a GraphQL response's errors array.
type ErrorMessage struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// ServerError is returned when the server answered with structured errors.
type ServerError struct {
	Operation  string
	StatusCode int
	Errors     []ErrorMessage
}

func (e *ServerError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("graphql %s: server error", e.Operation)
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("graphql %s: %s", e.Operation, e.Errors[0].Message)
	}
	return fmt.Sprintf("graphql %s: %s (and %d more)", e.Operation, e.Errors[0].Message, len(e.Errors)-1)
}

// Code returns the extensions.code of the first error, if any.
func (e *ServerError) Code() string {
	if len(e.Errors) == 0 {
		return ""
	}
	code, _ := e.Errors[0].Extensions["code"].(string)
	return code
}

// TransportError is returned when no usable GraphQL response was received:
// network failures, non-2xx statuses without a GraphQL body, undecodable bodies.
type TransportError struct {
	Operation  string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("graphql %s: transport error (status %d): %v", e.Operation, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("graphql %s: transport error: %v", e.Operation, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Message converts an error into the single human readable line shown to the
// user: the first structured server message when present, otherwise the
// transport level message.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		for _, e := range serverErr.Errors {
			if msg := strings.TrimSpace(e.Message); msg != "" {
				return msg
			}
		}
	}
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		if transportErr.Err != nil {
			return transportErr.Err.Error()
		}
		return "request failed"
	}
	return err.Error()
}

// Kind classifies an error for metrics: "server", "transport", or "other".
func Kind(err error) string {
	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		return "server"
	}
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return "transport"
	}
	return "other"
}
