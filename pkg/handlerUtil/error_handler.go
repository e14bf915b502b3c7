package handlerUtil

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/sammie004/intent-classifier-for-chatbot/pkg/log"
	"github.com/sammie004/intent-classifier-for-chatbot/pkg/response"
)

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

// Handle converts a service error into an HTTP response. Coded errors keep
// their status; anything unexpected becomes a generic apology with a trace
// id logged server-side, never a raw internal error.
func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	var respErr *response.Error
	if errors.As(err, &respErr) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"code":       respErr.Code,
			"path":       path,
			"operation":  operation,
		}).Warn("Operation failed with error response")
		return c.Status(respErr.Code).JSON(fiber.Map{"error": err.Error()})
	}

	traceID := log.ErrorWithTraceID(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}, "Unexpected internal error")

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":    "Sorry, something went wrong on our end. Please try again in a moment.",
		"trace_id": traceID,
	})
}

// HandleValidationError flattens validator.v10 violations into a 400.
func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return h.Handle(c, requestID, err, path, "validate_request")
	}

	fields := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		fields = append(fields, strings.ToLower(fieldErr.Field()))
	}

	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"fields":     fields,
		"path":       path,
	}).Warn("Request validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  "Invalid request body",
		"fields": fields,
	})
}
