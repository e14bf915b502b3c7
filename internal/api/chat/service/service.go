package chatService

import (
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"github.com/sammie004/intent-classifier-for-chatbot/internal/api/chat"
	chatRepository "github.com/sammie004/intent-classifier-for-chatbot/internal/api/chat/repository"
	"github.com/sammie004/intent-classifier-for-chatbot/pkg/gemini"
	"github.com/sammie004/intent-classifier-for-chatbot/pkg/nlp"
	"github.com/sammie004/intent-classifier-for-chatbot/pkg/utils"
)

// Config carries the dialogue-layer knobs.
type Config struct {
	GatewayTimeout time.Duration
	MaxReplyLength int
}

type IChatService interface {
	ProcessMessage(ctx context.Context, req chat.IntentRequest) (*chat.IntentResponse, error)
}

type chatService struct {
	log      *logrus.Logger
	sessions chatRepository.Repository
	scorer   nlp.IScorer
	gateway  gemini.IGemini
	utils    utils.IUtils
	rng      *rand.Rand
	cfg      Config
}

func New(
	log *logrus.Logger,
	sessions chatRepository.Repository,
	scorer nlp.IScorer,
	gateway gemini.IGemini,
	utilsPkg utils.IUtils,
	rng *rand.Rand,
	cfg Config,
) IChatService {
	if cfg.GatewayTimeout <= 0 {
		cfg.GatewayTimeout = 15 * time.Second
	}
	if cfg.MaxReplyLength <= 0 {
		cfg.MaxReplyLength = 1600
	}
	return &chatService{
		log:      log,
		sessions: sessions,
		scorer:   scorer,
		gateway:  gateway,
		utils:    utilsPkg,
		rng:      rng,
		cfg:      cfg,
	}
}
