package chatService

import (
	"regexp"
	"strings"

	"github.com/sammie004/intent-classifier-for-chatbot/internal/entity"
	"github.com/sammie004/intent-classifier-for-chatbot/pkg/nlp"
)

const (
	vaguenessLengthThreshold = 80
	helpHintThreshold        = 0.45
)

// Terms whose mention in the user message demands the answer echo at least
// one of them back.
var specificBankingTerms = []string{"loan", "balance", "transfer", "account", "savings"}

// Refine validates and enriches a candidate answer. It never fails: any
// internal error returns the candidate unchanged.
func (s *chatService) Refine(candidate string, topic nlp.Topic, message string, confidence float64, session *entity.Session) (final string) {
	final = candidate
	defer func() {
		if r := recover(); r != nil {
			s.log.WithField("panic", r).Error("Refiner panicked, returning candidate unchanged")
			final = candidate
		}
	}()

	text := strings.TrimSpace(candidate)
	lowerMsg := strings.ToLower(message)
	messageIsBanking := nlp.IsBankingRelated(message)
	candidateIsBanking := answerIsBanking(text)

	// Topical alignment: a banking question deserves a banking answer.
	if messageIsBanking && !candidateIsBanking {
		if nlp.CountKeywordMatches(text, nlp.OffTopicKeywords) > 0 {
			return offTopicRedirects[s.rng.Intn(len(offTopicRedirects))]
		}
		return alignmentClarification
	}

	// Vagueness: a named banking term must be echoed by a substantive answer.
	if namesSpecificTerm(lowerMsg) &&
		len(text) < vaguenessLengthThreshold && !mentionsAnySpecificTerm(text) {
		return vaguenessPrompt
	}

	text = s.enrich(text, lowerMsg)

	if confidence < helpHintThreshold && (messageIsBanking || candidateIsBanking) &&
		!strings.Contains(strings.ToLower(text), "please rephrase") &&
		!strings.Contains(text, helpHintMarker) {
		text += helpHint
	}

	if session.Prefs.SuppressGreetings && session.DisplayName != "" {
		text = stripRepeatedGreeting(text, session.DisplayName)
	}

	text = s.scrubPhoneNumbers(text)

	if len(text) > s.cfg.MaxReplyLength {
		text = s.utils.TruncateWithEllipsis(text, s.cfg.MaxReplyLength)
	}

	return text
}

// enrich appends the canned explainer for recognized sub-topics. Keyed on a
// marker keyword, so re-running on enriched text is a no-op.
func (s *chatService) enrich(text, lowerMsg string) string {
	lowerText := strings.ToLower(text)

	switch {
	case strings.Contains(lowerMsg, "education loan") || strings.Contains(lowerMsg, "student loan") || strings.Contains(lowerMsg, "education"):
		if !strings.Contains(lowerText, "education loan") {
			text += educationLoanBlock
		}
	case strings.Contains(lowerMsg, "business loan") || strings.Contains(lowerMsg, "sme loan") || strings.Contains(lowerMsg, "small business"):
		if !strings.Contains(lowerText, "business") {
			text += businessLoanBlock
		}
	case strings.Contains(lowerMsg, "open account") || strings.Contains(lowerMsg, "savings account") || strings.Contains(lowerMsg, "open a savings"):
		if !strings.Contains(lowerText, "open") {
			text += accountOpenBlock
		}
	}

	return text
}

// answerIsBanking reports whether a candidate answer carries any banking
// relevance, by level or by raw keyword.
func answerIsBanking(text string) bool {
	return nlp.CheckRelevance(text).Relevant() ||
		nlp.CountKeywordMatches(text, nlp.BankingKeywords) >= 1
}

func namesSpecificTerm(lowerMsg string) bool {
	for _, term := range specificBankingTerms {
		if strings.Contains(lowerMsg, term) {
			return true
		}
	}
	return false
}

func mentionsAnySpecificTerm(text string) bool {
	lower := strings.ToLower(text)
	for _, term := range specificBankingTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// stripRepeatedGreeting removes a leading salutation aimed at the stored
// name when the user has opted out of repeated greetings.
func stripRepeatedGreeting(text, displayName string) string {
	pattern := regexp.MustCompile(`(?i)^(good\s(morning|afternoon|evening)|hello|hi|hey)[,\s]*` + regexp.QuoteMeta(displayName) + `[,\s]*`)
	return strings.TrimSpace(pattern.ReplaceAllString(text, ""))
}

// scrubPhoneNumbers replaces any phone number the gateway may have invented
// with the official contact line.
func (s *chatService) scrubPhoneNumbers(text string) string {
	official := map[string]bool{
		strings.NewReplacer("-", "", " ", "").Replace(lapoContact.Phone):            true,
		strings.NewReplacer("-", "", " ", "").Replace(lapoContact.AlternativePhone): true,
	}

	return phonePattern.ReplaceAllStringFunc(text, func(num string) string {
		clean := strings.NewReplacer("-", "", " ", "").Replace(num)
		if official[clean] {
			return num
		}
		s.log.WithField("number", num).Warn("Replacing hallucinated phone number")
		return lapoContact.Phone
	})
}
