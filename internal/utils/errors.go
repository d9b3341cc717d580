package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// CustomError carries an HTTP status alongside the message shown to clients.
type CustomError struct {
	Code    int
	Message string
	Err     error
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("Code: %d, Message: %s", e.Code, e.Message)
}

func (e *CustomError) Unwrap() error { return e.Err }

func New(code int, message string) error {
	return &CustomError{
		Code:    code,
		Message: message,
	}
}

// Wrap attaches a status code to err, keeping err reachable through errors.Is.
func Wrap(code int, err error) error {
	return &CustomError{
		Code:    code,
		Message: err.Error(),
		Err:     err,
	}
}

// StatusCode returns the status carried by err, or 500.
func StatusCode(err error) int {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return http.StatusInternalServerError
}

// Message returns the client-facing message of err.
func Message(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Message
	}
	return err.Error()
}
