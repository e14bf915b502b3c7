package chatHandler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"

	"github.com/sammie004/intent-classifier-for-chatbot/internal/api/chat"
	contextPkg "github.com/sammie004/intent-classifier-for-chatbot/pkg/context"
	"github.com/sammie004/intent-classifier-for-chatbot/pkg/handlerUtil"
	"github.com/sammie004/intent-classifier-for-chatbot/pkg/log"
)

func (h *ChatHandler) ProcessIntent(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing intent request")

	var req chat.IntentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, chat.ErrMessageRequired, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if req.User.Empty() {
		return errHandler.Handle(ctx, requestID, chat.ErrUserRequired, ctx.Path(), "resolve_user")
	}

	result, err := h.chatService.ProcessMessage(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "process_message")
	}

	return ctx.Status(fiber.StatusOK).JSON(result)
}
