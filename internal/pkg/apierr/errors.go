package apierr

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const (
	CodeNotFound           = "NOT_FOUND"
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidDNASequence = "INVALID_DNA_SEQUENCE"
	CodeForbidden          = "FORBIDDEN"
	CodeTooManyRequests    = "TOO_MANY_REQUESTS"
	CodeInternalError      = "INTERNAL_ERROR"
)

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = New(fiber.StatusNotFound, CodeNotFound, "resource not found with given parameters")

	// ErrInvalidReq is returned when a request is invalid.
	ErrInvalidReq = New(fiber.StatusBadRequest, CodeInvalidRequest, "invalid request: some or all request parameters are invalid")

	// ErrInvalidDNA is returned when the submitted grid is malformed.
	ErrInvalidDNA = New(fiber.StatusBadRequest, CodeInvalidDNASequence, "invalid dna sequence")

	// ErrForbidden is returned when a submitted sequence classifies as human.
	ErrForbidden = New(fiber.StatusForbidden, CodeForbidden, "DNA sequence belongs to a human")

	// ErrTooManyRequests is returned when a client exceeds its rate limit.
	ErrTooManyRequests = New(fiber.StatusTooManyRequests, CodeTooManyRequests, "too many requests, please slow down")

	// ErrInternalError is returned when an internal error occurs.
	ErrInternalError = New(fiber.StatusInternalServerError, CodeInternalError, "internal server error occurred")
)

type Extras map[string]any

type APIError struct {
	StatusCode int     `json:"-"`
	ErrorCode  string  `json:"code"`
	Message    string  `json:"message"`
	Extras     *Extras `json:"-"`
}

func New(statusCode int, errorCode string, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

func (e APIError) Msg(format string, parts ...any) *APIError {
	e.Message = fmt.Sprintf(format, parts...)
	return &e
}

func (e APIError) WithExtras(extras Extras) *APIError {
	e.Extras = &extras
	return &e
}

func NewInvalidViolations(violations any) *APIError {
	// copy ErrInvalidReq as e
	e := *ErrInvalidReq
	e.Extras = &Extras{
		"violations": violations,
	}
	return &e
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.ErrorCode, e.Message)
}
