package utils

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/clinicdesk/patient-booking/models"
)

// ErrorResponse is a struct for error response
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// ValidationError is bad user input, shown inline.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func Validation(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError is a missing entity.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string { return e.Entity + " not found" }

func NotFound(entity string) error {
	return &NotFoundError{Entity: entity}
}

// ConflictError is a double-booking or an already-exists condition.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return e.Reason }

func Conflict(format string, args ...any) error {
	return &ConflictError{Reason: fmt.Sprintf(format, args...)}
}

// UnauthorizedError is a wrong role or missing credentials.
type UnauthorizedError struct {
	Reason string
}

func (e *UnauthorizedError) Error() string { return e.Reason }

func Unauthorized(reason string) error {
	return &UnauthorizedError{Reason: reason}
}

// ExternalServiceError wraps a failed best-effort call to an outside
// service. It is surfaced as a warning, never as a crash.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

// RenderError maps an error kind onto an HTTP status and the standard
// JSON error payload. Unknown errors become 500 without leaking detail.
func RenderError(c *fiber.Ctx, err error) error {
	var (
		validation *ValidationError
		notFound   *NotFoundError
		conflict   *ConflictError
		unauth     *UnauthorizedError
		external   *ExternalServiceError
		transition *models.InvalidTransitionError
	)

	switch {
	case errors.As(err, &validation):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: validation.Reason,
		})
	case errors.As(err, &notFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": notFound.Error(),
		})
	case errors.As(err, &conflict):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Message: conflict.Reason,
		})
	case errors.As(err, &unauth):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Message: unauth.Reason,
		})
	case errors.As(err, &external):
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Message: "Service not available. Please try again later.",
			Error:   external.Error(),
		})
	case errors.As(err, &transition):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Message: transition.Error(),
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Message: "Something went wrong",
		Error:   err.Error(),
	})
}
