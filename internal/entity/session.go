package entity

import (
	"time"

	"github.com/sammie004/intent-classifier-for-chatbot/pkg/nlp"
)

// Interaction is one history record of a user turn and the assistant's
// reply excerpt.
type Interaction struct {
	Timestamp    time.Time `json:"timestamp"`
	UserMessage  string    `json:"user_message"`
	Topic        nlp.Topic `json:"topic"`
	Confidence   float64   `json:"confidence"`
	ReplyExcerpt string    `json:"reply_excerpt"`
}

// Preferences are per-user reply-shaping flags.
type Preferences struct {
	SuppressGreetings bool `json:"suppress_greetings"`
}

// Session is the per-user conversational state. It lives for the process's
// uptime or until inactivity eviction; the only deletion path is the sweep.
// Concurrent requests for the same user serialize on the store's per-user
// lock, as does the sweeper before deleting.
type Session struct {
	UserID        string        `json:"user_id"`
	DisplayName   string        `json:"display_name,omitempty"`
	CurrentTopic  nlp.Topic     `json:"current_topic,omitempty"`
	PendingAction string        `json:"pending_action,omitempty"`
	History       []Interaction `json:"history"`
	Prefs         Preferences   `json:"prefs"`
	LastSeenAt    time.Time     `json:"last_seen_at"`
	CreatedAt     time.Time     `json:"created_at"`
}

// LastTopic returns the topic of the most recent turn: the sticky current
// topic if set, otherwise the newest history entry.
func (s *Session) LastTopic() nlp.Topic {
	if s.CurrentTopic != "" {
		return s.CurrentTopic
	}
	if n := len(s.History); n > 0 {
		return s.History[n-1].Topic
	}
	return ""
}
