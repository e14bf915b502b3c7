package chatRepository

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sammie004/intent-classifier-for-chatbot/internal/api/chat"
	"github.com/sammie004/intent-classifier-for-chatbot/internal/entity"
)

func testConfig() Config {
	return Config{
		StalenessWindow: 30 * time.Minute,
		RetentionWindow: 2 * time.Hour,
		SweepInterval:   15 * time.Minute,
		HistoryCap:      20,
	}
}

func newTestStore(t *testing.T) *memoryStore {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return newMemoryStore(testConfig(), logger)
}

func TestNormalizeUserID(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"plain id", "user-123", "user-123"},
		{"whatsapp prefix", "whatsapp:+2348012345678", "+2348012345678"},
		{"tel prefix", "tel:08012345678", "08012345678"},
		{"sms prefix uppercased", "SMS:08012345678", "08012345678"},
		{"surrounding whitespace", "  whatsapp:+234801  ", "+234801"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeUserID(tt.raw))
		})
	}
}

func TestEnsureCreatesSessionWithDefaults(t *testing.T) {
	store := newTestStore(t)

	session, err := store.Ensure(context.Background(), chat.UserRef{ID: "whatsapp:+234801", Name: "Ada"})
	require.NoError(t, err)

	assert.Equal(t, "+234801", session.UserID)
	assert.Equal(t, "Ada", session.DisplayName)
	assert.Empty(t, session.History)
	assert.Empty(t, session.CurrentTopic)
	assert.False(t, session.LastSeenAt.IsZero())
	assert.False(t, session.CreatedAt.IsZero())
}

func TestEnsureRejectsEmptyUser(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Ensure(context.Background(), chat.UserRef{ID: "   "})
	assert.ErrorIs(t, err, chat.ErrUserRequired)
}

func TestEnsureSameIdentitySharesSession(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Ensure(context.Background(), chat.UserRef{ID: "whatsapp:+234801"})
	require.NoError(t, err)
	second, err := store.Ensure(context.Background(), chat.UserRef{ID: "+234801"})
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestEnsureResetsStaleContext(t *testing.T) {
	store := newTestStore(t)

	base := time.Now()
	store.now = func() time.Time { return base }

	session, err := store.Ensure(context.Background(), chat.UserRef{ID: "u1"})
	require.NoError(t, err)
	session.CurrentTopic = "loan"
	session.PendingAction = "loan_application"
	session.Prefs.SuppressGreetings = true
	session.DisplayName = "Ada"
	store.RecordInteraction(session, entity.Interaction{UserMessage: "loan please"})

	// 31 minutes of silence crosses the 30-minute staleness window.
	store.now = func() time.Time { return base.Add(31 * time.Minute) }

	session, err = store.Ensure(context.Background(), chat.UserRef{ID: "u1"})
	require.NoError(t, err)

	assert.Empty(t, session.CurrentTopic)
	assert.Empty(t, session.PendingAction)
	assert.False(t, session.Prefs.SuppressGreetings)
	// long-lived profile data survives the reset
	assert.Equal(t, "Ada", session.DisplayName)
	assert.Len(t, session.History, 1)
}

func TestEnsureFreshVisitKeepsContext(t *testing.T) {
	store := newTestStore(t)

	base := time.Now()
	store.now = func() time.Time { return base }

	session, err := store.Ensure(context.Background(), chat.UserRef{ID: "u1"})
	require.NoError(t, err)
	session.CurrentTopic = "loan"

	store.now = func() time.Time { return base.Add(29 * time.Minute) }

	session, err = store.Ensure(context.Background(), chat.UserRef{ID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "loan", string(session.CurrentTopic))
}

func TestRecordInteractionCapsHistory(t *testing.T) {
	store := newTestStore(t)

	session, err := store.Ensure(context.Background(), chat.UserRef{ID: "u1"})
	require.NoError(t, err)

	for i := 0; i < 25; i++ {
		store.RecordInteraction(session, entity.Interaction{UserMessage: fmt.Sprintf("msg-%d", i)})
	}

	require.Len(t, session.History, 20)
	// oldest entries are dropped from the front
	assert.Equal(t, "msg-5", session.History[0].UserMessage)
	assert.Equal(t, "msg-24", session.History[19].UserMessage)
}

func TestEvictInactive(t *testing.T) {
	store := newTestStore(t)

	base := time.Now()
	store.now = func() time.Time { return base }

	_, err := store.Ensure(context.Background(), chat.UserRef{ID: "old"})
	require.NoError(t, err)

	store.now = func() time.Time { return base.Add(90 * time.Minute) }
	_, err = store.Ensure(context.Background(), chat.UserRef{ID: "fresh"})
	require.NoError(t, err)

	// "old" is beyond the 2h retention window, "fresh" is not.
	store.now = func() time.Time { return base.Add(3 * time.Hour) }
	evicted := store.EvictInactive(context.Background())

	assert.Equal(t, 1, evicted)
	store.mu.RLock()
	_, oldExists := store.sessions["old"]
	_, freshExists := store.sessions["fresh"]
	store.mu.RUnlock()
	assert.False(t, oldExists)
	assert.True(t, freshExists)
}

func TestLockSerializesPerUser(t *testing.T) {
	store := newTestStore(t)

	unlock := store.Lock("u1")

	done := make(chan struct{})
	go func() {
		inner := store.Lock("u1")
		inner()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("second lock acquired while first still held")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second lock never acquired after release")
	}

	// a different user never contends
	otherUnlock := store.Lock("u2")
	otherUnlock()
}

func TestUserLockExclusionSurvivesRelease(t *testing.T) {
	locks := newUserLocks()

	release1 := locks.acquire("u1")

	second := make(chan func(), 1)
	go func() { second <- locks.acquire("u1") }()

	// let the second acquirer block on the registered entry
	time.Sleep(20 * time.Millisecond)
	release1()

	var release2 func()
	select {
	case release2 = <-second:
	case <-time.After(time.Second):
		t.Fatal("second acquire never completed after release")
	}

	// while the second holder is inside, a third acquire must land on the
	// same entry and block, not mint a fresh lock
	third := make(chan func(), 1)
	go func() { third <- locks.acquire("u1") }()

	select {
	case <-third:
		t.Fatal("third acquire succeeded while second holder still active")
	case <-time.After(50 * time.Millisecond):
	}

	release2()

	select {
	case release3 := <-third:
		release3()
	case <-time.After(time.Second):
		t.Fatal("third acquire never completed after release")
	}

	locks.mu.Lock()
	remaining := len(locks.locks)
	locks.mu.Unlock()
	assert.Zero(t, remaining)
}

func TestEvictionKeepsLockRegisteredForWaiters(t *testing.T) {
	store := newTestStore(t)

	base := time.Now()
	store.now = func() time.Time { return base }
	_, err := store.Ensure(context.Background(), chat.UserRef{ID: "u1"})
	require.NoError(t, err)

	store.now = func() time.Time { return base.Add(3 * time.Hour) }

	// hold the user lock so the sweep queues behind it
	unlock := store.Lock("u1")

	swept := make(chan int, 1)
	go func() { swept <- store.EvictInactive(context.Background()) }()

	time.Sleep(20 * time.Millisecond)
	unlock()

	select {
	case evicted := <-swept:
		assert.Equal(t, 1, evicted)
	case <-time.After(time.Second):
		t.Fatal("eviction never completed")
	}

	// after eviction two new requests for the same id still serialize
	first := store.Lock("u1")
	acquired := make(chan struct{})
	go func() {
		inner := store.Lock("u1")
		inner()
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("lock acquired concurrently after eviction")
	case <-time.After(50 * time.Millisecond):
	}

	first()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("lock never handed over after eviction")
	}
}

func TestStartSweeperDisabledOnZeroInterval(t *testing.T) {
	cfg := testConfig()
	cfg.SweepInterval = 0

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	store := newMemoryStore(cfg, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// must not panic on ticker construction
	store.StartSweeper(ctx)
}
