package config

import (
	"context"
	"fmt"
	"math/rand"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	chatHandler "github.com/sammie004/intent-classifier-for-chatbot/internal/api/chat/handler"
	chatRepository "github.com/sammie004/intent-classifier-for-chatbot/internal/api/chat/repository"
	chatService "github.com/sammie004/intent-classifier-for-chatbot/internal/api/chat/service"
	"github.com/sammie004/intent-classifier-for-chatbot/internal/middleware"
	"github.com/sammie004/intent-classifier-for-chatbot/pkg/gemini"
	"github.com/sammie004/intent-classifier-for-chatbot/pkg/nlp"
	"github.com/sammie004/intent-classifier-for-chatbot/pkg/redis"
	"github.com/sammie004/intent-classifier-for-chatbot/pkg/utils"
)

type ServerOption func(*Server) error

type Server struct {
	engine       *fiber.App
	log          *logrus.Logger
	middleware   middleware.Middleware
	validator    *validator.Validate
	utils        utils.IUtils
	handlers     []handler
	redisServer  redis.IRedis
	geminiClient gemini.IGemini
	sessions     chatRepository.Repository
	rng          *rand.Rand
	chatCfg      ChatConfig
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithRedisServer() ServerOption {
	return func(s *Server) error {
		s.redisServer = redis.New()
		return nil
	}
}

func WithGeminiClient() ServerOption {
	return func(s *Server) error {
		client, err := gemini.NewGeminiClient()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to create Gemini client: %v", err)
			}
			return fmt.Errorf("failed to create Gemini client: %w", err)
		}
		s.geminiClient = client
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithRand(rng *rand.Rand) ServerOption {
	return func(s *Server) error {
		s.rng = rng
		return nil
	}
}

func WithChatConfig(cfg ChatConfig) ServerOption {
	return func(s *Server) error {
		s.chatCfg = cfg
		return nil
	}
}

func WithSessionStore() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before the session store")
		}
		s.sessions = chatRepository.New(s.chatCfg.SessionBackend, s.chatCfg.RepositoryConfig(), s.redisServer, s.log)
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Chat Domain
	scorer := nlp.NewScorer(s.rng, s.chatCfg.DeterministicNoMatch)
	chatServices := chatService.New(s.log, s.sessions, scorer, s.geminiClient, s.utils, s.rng, s.chatCfg.ServiceConfig())
	chatHandlers := chatHandler.New(s.log, s.validator, s.middleware, chatServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, chatHandlers)
}

// StartSweeper launches the session eviction loop. It returns immediately
// and stops when ctx is cancelled.
func (s *Server) StartSweeper(ctx context.Context) {
	if s.sessions == nil {
		return
	}
	s.sessions.StartSweeper(ctx)
}

func (s *Server) Run() error {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig(s.log))

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) Shutdown() error {
	return s.engine.Shutdown()
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
