// FILE: internal/pkg/serverutils/error_handler.go
package serverutils

import (
	"errors"

	"portfolio-chat-be/internal/dto"

	"github.com/gofiber/fiber/v2"
)

const errorLabelLocalKey = "error_label"

const (
	ErrorTypeValidation        = "ValidationError"
	ErrorTypeNotOwner          = "DenyNotOwner"
	ErrorTypeStorageFailure    = "StorageFailure"
	ErrorTypeDownstreamFailure = "DownstreamFailure"
	ErrorTypeDownstreamTimeout = "DownstreamTimeout"
	ErrorTypeUnauthorized      = "Unauthorized"
	ErrorTypeUnavailable       = "Unavailable"
	ErrorTypeInternal          = "InternalError"
)

// ErrorLabel sets the public "error" title used for 5xx responses of the
// routes it is mounted on.
func ErrorLabel(label string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		ctx.Locals(errorLabelLocalKey, label)
		return ctx.Next()
	}
}

func failureLabel(ctx *fiber.Ctx) string {
	if label, ok := ctx.Locals(errorLabelLocalKey).(string); ok && label != "" {
		return label
	}
	return "Failed to process request"
}

// ErrorHandlerMiddleware is installed as fiber's ErrorHandler. It turns typed
// errors returned from handlers into status codes and the shared ErrorBody.
func ErrorHandlerMiddleware() fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		status, body := classify(ctx, err)
		return ctx.Status(status).JSON(body)
	}
}

func classify(ctx *fiber.Ctx, err error) (int, *ErrorBody) {
	var validationErr *ValidationError
	var rateErr *dto.RateLimitError
	var storageErr *dto.StorageError
	var downstreamErr *dto.DownstreamError
	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest, &ErrorBody{
			Error:  validationErr.Message,
			Type:   ErrorTypeValidation,
			Fields: validationErr.Fields,
		}

	case errors.As(err, &rateErr):
		return fiber.StatusTooManyRequests, &ErrorBody{
			Error:       rateErr.Label(),
			Message:     rateErr.Message,
			RateLimited: true,
		}

	case errors.Is(err, dto.ErrSessionNotOwned):
		return fiber.StatusForbidden, &ErrorBody{
			Error:   "Session not found",
			Message: "This conversation does not belong to you. Start a new one.",
			Type:    ErrorTypeNotOwner,
		}

	case errors.Is(err, dto.ErrAssistantTimeout):
		return fiber.StatusGatewayTimeout, &ErrorBody{
			Error:   failureLabel(ctx),
			Details: dto.ErrAssistantTimeout.Error(),
			Type:    ErrorTypeDownstreamTimeout,
		}

	case errors.As(err, &downstreamErr):
		return fiber.StatusInternalServerError, &ErrorBody{
			Error:   failureLabel(ctx),
			Details: downstreamErr.PublicDetails(),
			Type:    ErrorTypeDownstreamFailure,
		}

	case errors.As(err, &storageErr):
		return fiber.StatusInternalServerError, &ErrorBody{
			Error:   failureLabel(ctx),
			Details: storageErr.PublicDetails(),
			Type:    ErrorTypeStorageFailure,
		}

	case errors.Is(err, dto.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, &ErrorBody{
			Error: "Invalid credentials",
			Type:  ErrorTypeUnauthorized,
		}

	case errors.Is(err, dto.ErrFeatureDisabled):
		return fiber.StatusServiceUnavailable, &ErrorBody{
			Error: dto.ErrFeatureDisabled.Error(),
			Type:  ErrorTypeUnavailable,
		}

	case errors.As(err, &fiberErr):
		return fiberErr.Code, &ErrorBody{
			Error: fiberErr.Message,
		}
	}

	return fiber.StatusInternalServerError, &ErrorBody{
		Error: failureLabel(ctx),
		Type:  ErrorTypeInternal,
	}
}
