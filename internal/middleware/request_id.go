package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/sammie004/intent-classifier-for-chatbot/pkg/utils"
)

const RequestIDKey = "X-Request-ID"

// NewRequestIDMiddleware assigns a ULID to every request. An incoming
// X-Request-ID header wins so upstream proxies can correlate logs.
func NewRequestIDMiddleware() fiber.Handler {
	util := utils.New()

	return func(ctx *fiber.Ctx) error {
		requestID := ctx.Get(RequestIDKey)
		if requestID == "" {
			id, err := util.NewULIDFromTimestamp(time.Now())
			if err != nil {
				id = uuid.NewString()
			}
			requestID = id
		}

		ctx.Locals(RequestIDKey, requestID)
		ctx.Set(RequestIDKey, requestID)

		return ctx.Next()
	}
}
