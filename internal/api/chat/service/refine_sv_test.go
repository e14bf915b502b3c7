package chatService

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sammie004/intent-classifier-for-chatbot/internal/entity"
	"github.com/sammie004/intent-classifier-for-chatbot/pkg/nlp"
)

func refinerService(t *testing.T) *chatService {
	t.Helper()
	return newTestService(t, &mockGateway{})
}

func TestRefineAlignmentClarification(t *testing.T) {
	svc := refinerService(t)
	session := &entity.Session{UserID: "u1"}

	// a banking question answered with nothing banking at all
	final := svc.Refine("The sky is quite blue today.", nlp.TopicLoan, "how do i get a loan", 0.9, session)
	assert.Equal(t, alignmentClarification, final)
}

func TestRefineAlignmentRedirectsDriftedAnswer(t *testing.T) {
	svc := refinerService(t)
	session := &entity.Session{UserID: "u1"}

	// the candidate drifted into off-topic territory entirely
	final := svc.Refine("You should watch a movie about cooking pizza.", nlp.TopicLoan, "how do i get a loan", 0.9, session)
	assert.Contains(t, offTopicRedirects, final)
}

func TestRefineKeepsAlignedAnswer(t *testing.T) {
	svc := refinerService(t)
	session := &entity.Session{UserID: "u1"}

	candidate := "LAPO loans come with flexible repayment plans and competitive interest."
	final := svc.Refine(candidate, nlp.TopicLoan, "how do i get a loan", 0.9, session)
	assert.Equal(t, candidate, final)
}

func TestRefineVaguenessPrompt(t *testing.T) {
	svc := refinerService(t)
	session := &entity.Session{UserID: "u1"}

	// short answer that never echoes the banking term the user named
	final := svc.Refine("Sure, the bank can help with that.", nlp.TopicLoan, "i need a loan", 0.9, session)
	assert.Equal(t, vaguenessPrompt, final)
}

func TestRefineEnrichmentIsIdempotent(t *testing.T) {
	svc := refinerService(t)
	session := &entity.Session{UserID: "u1"}

	message := "tell me about the education loan"
	candidate := "LAPO supports students with dedicated loan products."

	once := svc.Refine(candidate, nlp.TopicLoan, message, 0.9, session)
	assert.Contains(t, once, "Education Loan")

	twice := svc.Refine(once, nlp.TopicLoan, message, 0.9, session)
	assert.Equal(t, 1, strings.Count(twice, "🎓"))
}

func TestRefineHelpHintOnLowConfidence(t *testing.T) {
	svc := refinerService(t)
	session := &entity.Session{UserID: "u1"}

	candidate := "LAPO savings accounts are available at every branch for your deposits."
	final := svc.Refine(candidate, nlp.TopicSavings, "savings info", 0.40, session)
	assert.Contains(t, final, helpHintMarker)

	// the hint is appended once even when refined again
	again := svc.Refine(final, nlp.TopicSavings, "savings info", 0.40, session)
	assert.Equal(t, 1, strings.Count(again, helpHintMarker))
}

func TestRefineNoHelpHintAtThreshold(t *testing.T) {
	svc := refinerService(t)
	session := &entity.Session{UserID: "u1"}

	candidate := "LAPO savings accounts are available at every branch for your deposits."
	final := svc.Refine(candidate, nlp.TopicSavings, "savings info", 0.45, session)
	assert.NotContains(t, final, helpHintMarker)
}

func TestRefineStripsRepeatedGreeting(t *testing.T) {
	svc := refinerService(t)
	session := &entity.Session{
		UserID:      "u1",
		DisplayName: "Ada",
		Prefs:       entity.Preferences{SuppressGreetings: true},
	}

	final := svc.Refine("Good morning Ada, your loan options are Personal and Business.", nlp.TopicLoan, "loan options", 0.9, session)
	assert.Equal(t, "your loan options are Personal and Business.", final)
}

func TestRefineScrubsHallucinatedPhoneNumbers(t *testing.T) {
	svc := refinerService(t)
	session := &entity.Session{UserID: "u1"}

	final := svc.Refine("Call our loan desk on 0803-555-1234 today.", nlp.TopicLoan, "loan contact", 0.9, session)
	assert.NotContains(t, final, "0803-555-1234")
	assert.Contains(t, final, lapoContact.Phone)

	// the official alternative line survives untouched
	official := "Reach us on 0700-5276-632 for loan support."
	final = svc.Refine(official, nlp.TopicLoan, "loan contact", 0.9, session)
	assert.Contains(t, final, "0700-5276-632")
}

func TestRefineClampsOverlongReplies(t *testing.T) {
	svc := refinerService(t)
	svc.cfg.MaxReplyLength = 120
	session := &entity.Session{UserID: "u1"}

	candidate := strings.Repeat("LAPO loan details. ", 30)
	final := svc.Refine(candidate, nlp.TopicLoan, "loan details", 0.9, session)
	assert.LessOrEqual(t, len(final), 120)
}

func TestRefineSurvivesNilSessionPanic(t *testing.T) {
	svc := refinerService(t)

	candidate := "LAPO loan information."
	// a nil session would panic inside the greeting check; the refiner
	// recovers and returns the candidate untouched
	final := svc.Refine(candidate, nlp.TopicLoan, "loan info", 0.9, nil)
	assert.Equal(t, candidate, final)
}
