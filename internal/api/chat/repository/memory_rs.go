package chatRepository

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sammie004/intent-classifier-for-chatbot/internal/api/chat"
	"github.com/sammie004/intent-classifier-for-chatbot/internal/entity"
	"github.com/sammie004/intent-classifier-for-chatbot/pkg/log"
)

// memoryStore is the default backend: a process-local map. All session data
// is intentionally lost on restart.
type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*entity.Session
	locks    *userLocks
	cfg      Config
	log      *logrus.Logger
	now      func() time.Time
}

func newMemoryStore(cfg Config, logger *logrus.Logger) *memoryStore {
	return &memoryStore{
		sessions: make(map[string]*entity.Session),
		locks:    newUserLocks(),
		cfg:      cfg,
		log:      logger,
		now:      time.Now,
	}
}

func (m *memoryStore) Lock(userID string) func() {
	return m.locks.acquire(userID)
}

func (m *memoryStore) Ensure(_ context.Context, user chat.UserRef) (*entity.Session, error) {
	id := NormalizeUserID(user.ID)
	if id == "" {
		return nil, chat.ErrUserRequired
	}

	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[id]
	if !ok {
		session = &entity.Session{
			UserID:      id,
			DisplayName: user.Name,
			History:     []entity.Interaction{},
			LastSeenAt:  now,
			CreatedAt:   now,
		}
		m.sessions[id] = session
		m.log.WithFields(log.Fields{"user_id": id}).Debug("New user session created")
		return session, nil
	}

	if resetIfStale(session, m.cfg.StalenessWindow, now) {
		m.log.WithFields(log.Fields{"user_id": id}).Debug("Stale session context reset")
	}
	if user.Name != "" {
		session.DisplayName = user.Name
	}
	session.LastSeenAt = now

	return session, nil
}

func (m *memoryStore) Save(_ context.Context, _ *entity.Session) error {
	// mutations happen on the shared pointer under the per-user lock
	return nil
}

func (m *memoryStore) RecordInteraction(session *entity.Session, record entity.Interaction) {
	session.History = append(session.History, record)
	if cap := m.cfg.HistoryCap; cap > 0 && len(session.History) > cap {
		session.History = session.History[len(session.History)-cap:]
	}
}

func (m *memoryStore) EvictInactive(_ context.Context) int {
	cutoff := m.now().Add(-m.cfg.RetentionWindow)

	m.mu.RLock()
	var stale []string
	for id, session := range m.sessions {
		if session.LastSeenAt.Before(cutoff) {
			stale = append(stale, id)
		}
	}
	m.mu.RUnlock()

	evicted := 0
	for _, id := range stale {
		unlock := m.Lock(id)

		m.mu.Lock()
		session, ok := m.sessions[id]
		// the session may have been touched between the scan and the lock
		if ok && session.LastSeenAt.Before(cutoff) {
			delete(m.sessions, id)
			evicted++
		}
		m.mu.Unlock()

		unlock()
	}

	if evicted > 0 {
		m.log.WithFields(log.Fields{"evicted": evicted}).Info("Inactive sessions evicted")
	}
	return evicted
}

func (m *memoryStore) StartSweeper(ctx context.Context) {
	// a non-positive interval disables the sweep
	if m.cfg.SweepInterval <= 0 {
		m.log.Warn("Session sweeper disabled: non-positive sweep interval")
		return
	}
	go func() {
		ticker := time.NewTicker(m.cfg.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.EvictInactive(ctx)
			}
		}
	}()
}
