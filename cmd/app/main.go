package main

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sammie004/intent-classifier-for-chatbot/internal/config"
	"github.com/sammie004/intent-classifier-for-chatbot/pkg/log"
)

func main() {
	logger := log.NewLogger()
	if err := godotenv.Load(); err != nil {
		logger.Warnf("No .env file loaded: %v", err)
	}

	fiberApp := config.NewFiber(logger)
	validator := config.NewValidator()
	chatCfg := config.NewChatConfig()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	options := []config.ServerOption{
		config.WithFiber(fiberApp),
		config.WithLogger(logger),
		config.WithValidator(validator),
		config.WithChatConfig(chatCfg),
		config.WithRand(rng),
		config.WithMiddleware(),
		config.WithGeminiClient(),
		config.WithUtils(),
	}
	if chatCfg.SessionBackend == "redis" {
		options = append(options, config.WithRedisServer())
	}
	options = append(options, config.WithSessionStore())

	server, err := config.NewServer(options...)
	if err != nil {
		logger.Fatal(err)
	}

	server.RegisterHandler()

	sweepCtx, cancelSweep := context.WithCancel(context.Background())
	server.StartSweeper(sweepCtx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	logger.Info("Server started successfully")

	<-sigChan
	logger.Info("Shutting down server...")
	cancelSweep()
	if err := server.Shutdown(); err != nil {
		logger.Errorf("Error during shutdown: %v", err)
	}
}
