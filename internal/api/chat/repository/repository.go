package chatRepository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sammie004/intent-classifier-for-chatbot/internal/api/chat"
	"github.com/sammie004/intent-classifier-for-chatbot/internal/entity"
	redisPkg "github.com/sammie004/intent-classifier-for-chatbot/pkg/redis"
)

// Config carries the session-lifecycle constants. They are deployment
// knobs, not algorithmic properties.
type Config struct {
	StalenessWindow time.Duration
	RetentionWindow time.Duration
	SweepInterval   time.Duration
	HistoryCap      int
}

// Repository is the Session Store contract. Sessions are retrieved-or-created
// exactly once per request, before scoring; all mutation happens while the
// caller holds the per-user lock from Lock.
type Repository interface {
	// Ensure resolves the raw user reference into a normalized session,
	// creating it with defaults on first contact. A stale session (gap
	// beyond the staleness window) has its short-term context cleared
	// before the visit is recorded.
	Ensure(ctx context.Context, user chat.UserRef) (*entity.Session, error)

	// Save persists session mutations. A no-op for the in-memory backend.
	Save(ctx context.Context, session *entity.Session) error

	// RecordInteraction appends to history and truncates from the front
	// past the configured cap.
	RecordInteraction(session *entity.Session, record entity.Interaction)

	// EvictInactive removes sessions unseen for longer than the retention
	// window. It is the only deletion path.
	EvictInactive(ctx context.Context) int

	// StartSweeper runs EvictInactive on the configured interval until ctx
	// is cancelled.
	StartSweeper(ctx context.Context)

	// Lock serializes request handling (and eviction) per user id.
	Lock(userID string) (unlock func())
}

// transport-specific namespace prefixes stripped from incoming ids
var channelPrefixes = []string{"whatsapp:", "tel:", "sms:"}

// NormalizeUserID strips channel namespace prefixes and surrounding space.
func NormalizeUserID(raw string) string {
	id := strings.TrimSpace(raw)
	lower := strings.ToLower(id)
	for _, prefix := range channelPrefixes {
		if strings.HasPrefix(lower, prefix) {
			id = id[len(prefix):]
			break
		}
	}
	return strings.TrimSpace(id)
}

// userLocks hands out one lock per user id so distinct users never contend
// while same-user requests serialize. Entries are refcounted: an entry stays
// registered while any holder or waiter references it, so a waiter and a
// later acquirer can never end up on two different locks for the same id.
type userLock struct {
	mu   sync.Mutex
	refs int
}

type userLocks struct {
	mu    sync.Mutex
	locks map[string]*userLock
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[string]*userLock)}
}

// acquire blocks until the per-id lock is held and returns its release func.
func (u *userLocks) acquire(id string) func() {
	u.mu.Lock()
	entry, ok := u.locks[id]
	if !ok {
		entry = &userLock{}
		u.locks[id] = entry
	}
	entry.refs++
	u.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		u.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(u.locks, id)
		}
		u.mu.Unlock()
	}
}

// New selects the session backend. "redis" keeps the same contract on a
// shared store; anything else is the process-local map the design favors.
func New(backend string, cfg Config, redisClient redisPkg.IRedis, log *logrus.Logger) Repository {
	if backend == "redis" && redisClient != nil {
		return newRedisStore(cfg, redisClient, log)
	}
	return newMemoryStore(cfg, log)
}

func resetIfStale(session *entity.Session, window time.Duration, now time.Time) bool {
	if session.LastSeenAt.IsZero() || now.Sub(session.LastSeenAt) <= window {
		return false
	}
	session.CurrentTopic = ""
	session.PendingAction = ""
	session.Prefs.SuppressGreetings = false
	return true
}
