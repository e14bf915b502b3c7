package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/sammie004/intent-classifier-for-chatbot/pkg/log"
)

var jsonCodec = jsoniter.ConfigCompatibleWithStandardLibrary

// LoggerConfig logs one structured line per request with latency and
// a sanitized copy of the body so user messages stay out of the logs.
func LoggerConfig(logger *logrus.Logger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()

		err := ctx.Next()

		requestID, _ := ctx.Locals(RequestIDKey).(string)

		fields := log.Fields{
			"request_id": requestID,
			"method":     ctx.Method(),
			"path":       ctx.Path(),
			"status":     ctx.Response().StatusCode(),
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         ctx.IP(),
		}

		if body := sanitizeRequestBody(ctx.Body()); body != "" {
			fields["body"] = body
		}

		if err != nil {
			fields["error"] = err.Error()
			logger.WithFields(logrus.Fields(fields)).Error("request failed")
			return err
		}

		logger.WithFields(logrus.Fields(fields)).Info("request completed")
		return nil
	}
}

// sanitizeRequestBody redacts free-text fields before logging.
func sanitizeRequestBody(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}

	var parsed map[string]interface{}
	if err := jsonCodec.Unmarshal(raw, &parsed); err != nil {
		return "<unparseable body>"
	}

	for _, field := range []string{"message", "name"} {
		if _, ok := parsed[field]; ok {
			parsed[field] = "<redacted>"
		}
	}

	sanitized, err := jsonCodec.MarshalToString(parsed)
	if err != nil {
		return "<unparseable body>"
	}

	if len(sanitized) > 512 {
		sanitized = sanitized[:512]
	}

	return strings.TrimSpace(sanitized)
}
