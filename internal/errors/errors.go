package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"gogeomap/domain/core"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context, keeping the code of a wrapped
// AppError or deriving one from the domain sentinel it carries.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    codeFor(err),
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// GetCode returns the error code of the outermost AppError, falling back to
// the code of a recognised domain sentinel and finally "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	if code := codeFor(err); code != CodeInternalError {
		return code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid          = "CONFIG_INVALID"
	CodeInternalError          = "INTERNAL_ERROR"
	CodeInvalidInput           = "INVALID_INPUT"
	CodeInputUnreadable        = "INPUT_UNREADABLE"
	CodeInputTooLarge          = "INPUT_TOO_LARGE"
	CodeCoordinatesUnavailable = "COORDINATES_UNAVAILABLE"
	CodeNoValidPoints          = "NO_VALID_POINTS"
	CodeNoSelection            = "NO_SELECTION"
)

func codeFor(err error) string {
	switch {
	case stderrors.Is(err, core.ErrInputTooLarge):
		return CodeInputTooLarge
	case stderrors.Is(err, core.ErrInputUnreadable):
		return CodeInputUnreadable
	case stderrors.Is(err, core.ErrCoordinatesUnavailable):
		return CodeCoordinatesUnavailable
	case stderrors.Is(err, core.ErrNoValidPoints):
		return CodeNoValidPoints
	case stderrors.Is(err, core.ErrNoSelection):
		return CodeNoSelection
	case stderrors.Is(err, core.ErrUnknownColumn):
		return CodeInvalidInput
	default:
		return CodeInternalError
	}
}

// HTTPStatus maps an error to the status code the HTTP layers respond with
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case CodeInvalidInput, CodeNoSelection, CodeCoordinatesUnavailable:
		return http.StatusBadRequest
	case CodeInputUnreadable, CodeNoValidPoints:
		return http.StatusUnprocessableEntity
	case CodeInputTooLarge:
		return http.StatusRequestEntityTooLarge
	case CodeConfigInvalid, CodeInternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func NoSelection() *AppError {
	return &AppError{
		Code:    CodeNoSelection,
		Message: "please select at least one variable for grouping or analysis",
		Cause:   core.ErrNoSelection,
	}
}
