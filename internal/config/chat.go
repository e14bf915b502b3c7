package config

import (
	"os"
	"strconv"
	"time"

	chatRepository "github.com/sammie004/intent-classifier-for-chatbot/internal/api/chat/repository"
	chatService "github.com/sammie004/intent-classifier-for-chatbot/internal/api/chat/service"
)

// ChatConfig collects the tunables for the chat domain. Every field has
// a sensible default so the service boots with an empty environment.
type ChatConfig struct {
	SessionBackend       string
	StalenessWindow      time.Duration
	RetentionWindow      time.Duration
	SweepInterval        time.Duration
	HistoryCap           int
	GatewayTimeout       time.Duration
	MaxReplyLength       int
	DeterministicNoMatch bool
}

func NewChatConfig() ChatConfig {
	return ChatConfig{
		SessionBackend:       envString("SESSION_BACKEND", "memory"),
		StalenessWindow:      envDuration("CHAT_STALENESS_WINDOW", 30*time.Minute),
		RetentionWindow:      envDuration("CHAT_RETENTION_WINDOW", 2*time.Hour),
		SweepInterval:        envDuration("CHAT_SWEEP_INTERVAL", 15*time.Minute),
		HistoryCap:           envInt("CHAT_HISTORY_CAP", 20),
		GatewayTimeout:       envDuration("GATEWAY_TIMEOUT", 15*time.Second),
		MaxReplyLength:       envInt("CHAT_MAX_REPLY_LENGTH", 1600),
		DeterministicNoMatch: envBool("CHAT_DETERMINISTIC_NOMATCH", false),
	}
}

func (c ChatConfig) RepositoryConfig() chatRepository.Config {
	return chatRepository.Config{
		StalenessWindow: c.StalenessWindow,
		RetentionWindow: c.RetentionWindow,
		SweepInterval:   c.SweepInterval,
		HistoryCap:      c.HistoryCap,
	}
}

func (c ChatConfig) ServiceConfig() chatService.Config {
	return chatService.Config{
		GatewayTimeout: c.GatewayTimeout,
		MaxReplyLength: c.MaxReplyLength,
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
