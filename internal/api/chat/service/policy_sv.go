package chatService

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"github.com/sammie004/intent-classifier-for-chatbot/internal/api/chat"
	chatRepository "github.com/sammie004/intent-classifier-for-chatbot/internal/api/chat/repository"
	"github.com/sammie004/intent-classifier-for-chatbot/internal/entity"
	contextPkg "github.com/sammie004/intent-classifier-for-chatbot/pkg/context"
	"github.com/sammie004/intent-classifier-for-chatbot/pkg/nlp"
)

// Exact cutpoints; comparison directions are part of the behavior.
const (
	minConfidenceForDirect        = 0.55 // >= lets fresh topic detection assign a primary topic
	lowConfidenceBankingThreshold = 0.30 // < with a banking message forces a clarification menu
	hardFallbackThreshold         = 0.40 // < with no banking relevance at all forces the redirect
	intentCorrectionThreshold     = 0.35 // < (or greeting) with a banking message relabels the tag
	followUpConfidence            = 0.9
	greetingDemotionTokenCount    = 5
	historyExcerptLength          = 100
)

// dialogueDecision is the policy's output, consumed by the refiner. Never
// persisted beyond the request.
type dialogueDecision struct {
	intent        string
	topic         nlp.Topic
	useGenerative bool
	canned        string
	confidence    float64
	followUp      bool

	// fallbackGuard defers the hard fallback until after generation: the
	// redirect is substituted only when the candidate answer is not
	// banking-relevant either.
	fallbackGuard bool
}

func (s *chatService) ProcessMessage(ctx context.Context, req chat.IntentRequest) (*chat.IntentResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, chat.ErrMessageRequired
	}
	if req.User.Empty() {
		return nil, chat.ErrUserRequired
	}

	unlock := s.sessions.Lock(chatRepository.NormalizeUserID(req.User.ID))
	defer unlock()

	session, err := s.sessions.Ensure(ctx, req.User)
	if err != nil {
		return nil, err
	}

	decision := s.decide(requestID, message, session)

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"user_id":    session.UserID,
		"intent":     decision.intent,
		"confidence": decision.confidence,
		"generative": decision.useGenerative,
	}).Info("Dialogue decision made")

	var finalText string
	if decision.useGenerative {
		candidate := s.generateAnswer(ctx, requestID, message, decision, session)
		if decision.fallbackGuard && !answerIsBanking(candidate) {
			decision.intent = string(nlp.TopicWebhookFallback)
			decision.topic = ""
			finalText = hardFallbackReply(session)
		} else {
			finalText = s.Refine(candidate, decision.topic, message, decision.confidence, session)
		}
	} else {
		finalText = decision.canned
	}

	s.sessions.RecordInteraction(session, entity.Interaction{
		Timestamp:    time.Now(),
		UserMessage:  message,
		Topic:        decision.topic,
		Confidence:   decision.confidence,
		ReplyExcerpt: s.utils.TruncateWithEllipsis(finalText, historyExcerptLength),
	})
	if decision.topic != "" {
		session.CurrentTopic = decision.topic
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    session.UserID,
			"error":      err.Error(),
		}).Warn("Failed to persist session")
	}

	resp := &chat.IntentResponse{
		Intent:     decision.intent,
		Confidence: decision.confidence,
		Response:   finalText,
		MemoryContext: chat.MemoryContext{
			ConversationLength: len(session.History),
		},
	}
	if session.DisplayName != "" {
		name := session.DisplayName
		resp.MemoryContext.DisplayName = &name
	}
	if session.CurrentTopic != "" {
		last := string(session.CurrentTopic)
		resp.MemoryContext.LastIntent = &last
	}

	return resp, nil
}

// decide applies the precedence rules over one request. The first matching
// rule wins; rules that skip the gateway return a canned body.
func (s *chatService) decide(requestID, message string, session *entity.Session) dialogueDecision {
	norm := nlp.Normalize(message)

	// 1. Name statement
	if name, ok := extractName(message); ok && !asksForName(message) {
		display := s.utils.CapitalizeWords(name)
		session.DisplayName = display
		session.Prefs.SuppressGreetings = true
		return dialogueDecision{
			intent:     "name_update",
			topic:      nlp.TopicIdentity,
			canned:     fmt.Sprintf("Nice to meet you, %s! 😊 How can I help you with your LAPO banking today?", display),
			confidence: 1,
		}
	}

	// 2. Name recall
	if asksForName(message) {
		canned := unknownNameReply
		if session.DisplayName != "" {
			canned = fmt.Sprintf("Your name is %s! 😊 What can I do for you?", session.DisplayName)
		}
		return dialogueDecision{
			intent:     "name_recall",
			topic:      nlp.TopicIdentity,
			canned:     canned,
			confidence: 1,
		}
	}

	scored := s.scorer.Score(message)
	relevance := nlp.CheckRelevance(message)

	// 3. Off-topic short-circuit, gateway never called
	if relevance == nlp.RelevanceOffTopic {
		return dialogueDecision{
			intent:     "off_topic",
			topic:      "",
			canned:     offTopicRedirects[s.rng.Intn(len(offTopicRedirects))],
			confidence: scored.Confidence,
		}
	}

	// 4. Implicit follow-up: previous topic stays active
	if containsFollowUpPhrase(norm) && len(session.History) > 0 {
		if prev := session.LastTopic(); prev != "" {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"user_id":    session.UserID,
				"last_topic": prev,
			}).Debug("Implicit follow-up detected")

			s.markPendingAction(session, prev, norm)
			return dialogueDecision{
				intent:        string(prev) + "_followup",
				topic:         prev,
				useGenerative: true,
				confidence:    followUpConfidence,
				followUp:      true,
			}
		}
	}

	// 5. Fresh topic detection
	topic := nlp.TopicGeneral
	confidence := scored.Confidence
	if len(scored.OrderedTopics) > 0 && meetsTopicThreshold(confidence) {
		topic = scored.OrderedTopics[0]

		// A question or a substantive message that merely contains a
		// greeting word is not a greeting.
		if topic == nlp.TopicGreeting &&
			(isQuestion(message, norm) || len(strings.Fields(norm)) > greetingDemotionTokenCount) {
			if len(scored.OrderedTopics) > 1 {
				topic = scored.OrderedTopics[1]
			} else {
				topic = nlp.TopicGeneral
			}
		}
	}

	messageIsBanking := nlp.IsBankingRelated(message)

	// 6. Low-confidence banking override: never surface a shaky generative
	// answer for an on-topic question.
	if confidence < lowConfidenceBankingThreshold && messageIsBanking {
		return dialogueDecision{
			intent:     string(nlp.TopicBankingInquiry),
			topic:      nlp.TopicBankingInquiry,
			canned:     bankingClarification,
			confidence: confidence,
		}
	}

	// 7. Hard fallback guard: armed here, resolved after generation. The
	// redirect only lands when neither the message nor the candidate answer
	// shows banking relevance.
	fallbackGuard := !messageIsBanking && confidence < hardFallbackThreshold

	// 8. Intent correction: keep the topic for prompting, relabel the tag
	intent := string(topic)
	if (topic == nlp.TopicGreeting || confidence < intentCorrectionThreshold) && messageIsBanking {
		intent = string(nlp.TopicBankingInquiry)
	}

	return dialogueDecision{
		intent:        intent,
		topic:         topic,
		useGenerative: true,
		confidence:    confidence,
		fallbackGuard: fallbackGuard,
	}
}

// meetsTopicThreshold reports whether confidence lets fresh topic detection
// assign a primary topic. Exactly 0.55 meets it; 0.5499 does not.
func meetsTopicThreshold(confidence float64) bool {
	return confidence >= minConfidenceForDirect
}

// markPendingAction opens a multi-step action when a follow-up confirms one.
func (s *chatService) markPendingAction(session *entity.Session, topic nlp.Topic, norm string) {
	confirmed := strings.Contains(norm, "yes") || strings.Contains(norm, "sure") ||
		strings.Contains(norm, "ok") || strings.Contains(norm, "proceed")
	if !confirmed {
		return
	}
	switch topic {
	case nlp.TopicLoan:
		session.PendingAction = "loan_application"
	case nlp.TopicSavings:
		session.PendingAction = "savings_requirements"
	}
}

// generateAnswer is the single gateway call site. Failure is recovered with
// a per-topic canned fallback, never surfaced to the caller.
func (s *chatService) generateAnswer(ctx context.Context, requestID, message string, decision dialogueDecision, session *entity.Session) string {
	prompt := s.buildPrompt(message, decision, session)

	gwCtx, cancel := context.WithTimeout(ctx, s.cfg.GatewayTimeout)
	defer cancel()

	answer, err := s.gateway.GenerateReply(gwCtx, prompt)
	if err != nil || strings.TrimSpace(answer) == "" {
		fields := logrus.Fields{
			"request_id": requestID,
			"user_id":    session.UserID,
			"topic":      decision.topic,
		}
		if err != nil {
			fields["error"] = err.Error()
		}
		s.log.WithFields(fields).Warn("Gateway failed, using canned fallback")
		return fallbackFor(decision.topic, timeOfDay(time.Now()), s.rng)
	}

	return strings.TrimSpace(answer)
}

func timeOfDay(t time.Time) string {
	switch hour := t.Hour(); {
	case hour < 12:
		return "morning"
	case hour < 17:
		return "afternoon"
	default:
		return "evening"
	}
}
