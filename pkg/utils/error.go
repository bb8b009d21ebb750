package utils

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrBadRequest    = errors.New("bad request")
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrUnavailable   = errors.New("unavailable")
	ErrTerminated    = errors.New("terminated")
	ErrParse         = errors.New("parse error")
)

// An error with additional details not part of the main message,
// such as captured process output.
type DetailedError interface {
	error
	Details() string
}

type detailedError struct {
	err     error
	details string
}

func NewDetailedError(err error, details string) error {
	return &detailedError{
		err:     err,
		details: details,
	}
}

func (e *detailedError) Error() string {
	return e.err.Error()
}

func (e *detailedError) Details() string {
	return e.details
}

func (e *detailedError) Unwrap() error {
	return e.err
}

// Convert errors to errors with grpc status codes
func GrpcError(err error) error {
	switch {
	case errors.Is(err, ErrBadRequest):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, ErrAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, ErrUnavailable):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, ErrTerminated):
		return status.Error(codes.FailedPrecondition, err.Error())
	}
	return err
}

// Errorf wraps a sentinel with a formatted detail message while
// remaining matchable with errors.Is.
func Errorf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...)
}
