package chat

import "github.com/sammie004/intent-classifier-for-chatbot/pkg/response"

var (
	ErrMessageRequired = response.NewError(400, "message is required")
	ErrUserRequired    = response.NewError(400, "user is required")
	ErrSessionBackend  = response.NewError(500, "session store unavailable")
)
