// Package response implements the uniform success/error envelope used
// by every endpoint.
package response

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"bozor/internal/services"
)

// ErrorBody describes a failed request inside the envelope.
type ErrorBody struct {
	Exception string `json:"exception"`
	Message   string `json:"message"`
	Code      int    `json:"code"`
}

// Envelope is the body of every response:
// {success, data|null, error|null}.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Error   *ErrorBody  `json:"error"`
}

// OK writes a success envelope.
func OK(c *fiber.Ctx, data interface{}) error {
	return c.JSON(Envelope{
		Success: true,
		Data:    data,
	})
}

// Fail writes an error envelope with the given HTTP status. For client
// errors the exception and message are the same text, matching the
// envelope convention.
func Fail(c *fiber.Ctx, status int, exception, message string) error {
	return c.Status(status).JSON(Envelope{
		Success: false,
		Error: &ErrorBody{
			Exception: exception,
			Message:   message,
			Code:      status,
		},
	})
}

// FailWith maps a service error onto the envelope. Known client
// conditions keep their message and a 4xx code; anything else becomes
// a server error carrying the underlying message as the exception.
func FailWith(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		return Fail(c, status, err.Error(), "Internal server error")
	}
	return Fail(c, status, err.Error(), err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrPasswordMismatch),
		errors.Is(err, services.ErrDuplicateCredential),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrNoFieldsToUpdate):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrNoProductsFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrExpiredToken),
		errors.Is(err, services.ErrInvalidToken),
		errors.Is(err, services.ErrInvalidTokenPayload):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrNotProductOwner):
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}
