package chatRepository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sammie004/intent-classifier-for-chatbot/internal/api/chat"
	"github.com/sammie004/intent-classifier-for-chatbot/internal/entity"
	"github.com/sammie004/intent-classifier-for-chatbot/pkg/log"
	redisPkg "github.com/sammie004/intent-classifier-for-chatbot/pkg/redis"
)

const sessionKeyPrefix = "chat:session:"

// redisStore keeps the Session Store contract on a shared Redis instance.
// Inactivity eviction rides on the key TTL, which is refreshed on every
// Save, so the sweeper has nothing to do here. Per-user serialization is
// process-local only.
type redisStore struct {
	client redisPkg.IRedis
	locks  *userLocks
	cfg    Config
	log    *logrus.Logger
	now    func() time.Time
}

func newRedisStore(cfg Config, client redisPkg.IRedis, logger *logrus.Logger) *redisStore {
	return &redisStore{
		client: client,
		locks:  newUserLocks(),
		cfg:    cfg,
		log:    logger,
		now:    time.Now,
	}
}

func (r *redisStore) Lock(userID string) func() {
	return r.locks.acquire(userID)
}

func (r *redisStore) Ensure(ctx context.Context, user chat.UserRef) (*entity.Session, error) {
	id := NormalizeUserID(user.ID)
	if id == "" {
		return nil, chat.ErrUserRequired
	}

	now := r.now()

	payload, err := r.client.GetJSON(ctx, sessionKeyPrefix+id)
	if err != nil && !errors.Is(err, redisPkg.ErrNotFound) {
		return nil, chat.ErrSessionBackend
	}

	if errors.Is(err, redisPkg.ErrNotFound) {
		session := &entity.Session{
			UserID:      id,
			DisplayName: user.Name,
			History:     []entity.Interaction{},
			LastSeenAt:  now,
			CreatedAt:   now,
		}
		if err := r.Save(ctx, session); err != nil {
			return nil, err
		}
		r.log.WithFields(log.Fields{"user_id": id}).Debug("New user session created")
		return session, nil
	}

	var session entity.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		r.log.WithFields(log.Fields{"user_id": id, "error": err.Error()}).Warn("Corrupt session payload, starting fresh")
		session = entity.Session{UserID: id, History: []entity.Interaction{}, CreatedAt: now}
	}

	resetIfStale(&session, r.cfg.StalenessWindow, now)
	if user.Name != "" {
		session.DisplayName = user.Name
	}
	session.LastSeenAt = now

	return &session, nil
}

func (r *redisStore) Save(ctx context.Context, session *entity.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return chat.ErrSessionBackend
	}
	if err := r.client.SetJSON(ctx, sessionKeyPrefix+session.UserID, payload, r.cfg.RetentionWindow); err != nil {
		return chat.ErrSessionBackend
	}
	return nil
}

func (r *redisStore) RecordInteraction(session *entity.Session, record entity.Interaction) {
	session.History = append(session.History, record)
	if cap := r.cfg.HistoryCap; cap > 0 && len(session.History) > cap {
		session.History = session.History[len(session.History)-cap:]
	}
}

func (r *redisStore) EvictInactive(_ context.Context) int {
	// retention TTL on each key handles this
	return 0
}

func (r *redisStore) StartSweeper(_ context.Context) {}
