package chatService

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"github.com/sammie004/intent-classifier-for-chatbot/internal/entity"
	"github.com/sammie004/intent-classifier-for-chatbot/pkg/nlp"
)

// Fixed pool of off-topic redirects; selection is driven by the injected
// randomness source so tests can pin it down.
var offTopicRedirects = []string{
	"Ha! I like where your head's at! 😄 But I'm more of a banking whiz. How about we talk loans, savings, or transfers instead?",
	"That's a fun question! 🤔 But my expertise is in LAPO banking. Can I help with your account, a loan, or a transfer?",
	"You know what? I wish I could help with that! 😅 But I'm laser-focused on banking. Need help with savings, loans, or balance?",
	"Interesting! 💡 But I'm a banking assistant. Want to chat about your finances instead?",
	"I appreciate the creativity! 😊 However, I specialize in LAPO banking. Account, loans, or transfers?",
}

const bankingClarification = "I think you're asking about banking with LAPO. Could you tell me exactly what you want to do - open an account, check balance, apply for a loan, or something else?"

const alignmentClarification = "I want to make sure I give you accurate LAPO banking information! 🏦\n\nI can help with:\n• Loans & Applications\n• Savings Accounts\n• Transfers & Payments\n• Branch Locations\n• Interest Rates\n\nWhat would you like to know?"

const vaguenessPrompt = "I'd love to help with that! Could you be a bit more specific - for example, which loan, account, or transfer are you asking about?"

const helpHintMarker = "(If you want more detailed help"

const helpHint = "\n\n(If you want more detailed help, reply with \"Tell me how\" or \"Connect me to an officer\".)"

const unknownNameReply = "I don't know your name yet! Tell me with \"my name is ...\" and I'll remember it. 😊"

// Enrichment blocks: appended once, keyed on a marker keyword so re-running
// is a no-op.
const (
	educationLoanBlock = "\n\n🎓 LAPO's Education Loan helps students and parents cover school fees and education-related expenses. We can check eligibility or connect you with a loan officer - would you like that?"
	businessLoanBlock  = "\n\n💼 LAPO's Business/SME loans support traders and entrepreneurs. I can give eligibility details or connect you with a loan officer. Which would you prefer?"
	accountOpenBlock   = "\n\n💰 To open a LAPO savings account: you can visit any branch or start with our customer support. Would you like the nearest branch or the required documents?"
)

// Implicit-continuation phrases: any of these on a non-empty history treats
// the previous topic as still active.
var followUpPhrases = []string{
	"i have all the documents", "documents ready", "i have the documents",
	"i have them", "i have it", "got them ready", "everything ready",
	"what's next", "whats next", "what now", "next step", "what do i do now",
	"how do i proceed", "where do i go", "where should i go",
	"tell me more", "more details", "explain more", "continue",
	"go on", "and then", "after that", "what about", "what if",
	"yes", "okay", "sure", "alright", "proceed", "let's go", "lets go", "i'm ready", "im ready",
}

var questionStarters = []string{
	"can you", "could you", "would you", "will you", "should you",
	"do you", "does", "did you", "have you", "has",
	"are you", "is", "was", "were", "am i",
	"what", "when", "where", "why", "who", "whom", "whose",
	"how", "which", "may i", "might", "shall",
	"tell me", "show me", "explain", "describe", "give me",
	"i want to know", "i need to know", "i would like to know",
	"please tell", "can i", "could i", "may i ask", "do i need", "is it possible",
}

var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)my name is\s+([a-zA-Z]{2,20})`),
	regexp.MustCompile(`(?i)call me\s+([a-zA-Z]{2,20})`),
	regexp.MustCompile(`(?i)i'?m\s+([a-zA-Z]{2,20})`),
	regexp.MustCompile(`(?i)i am\s+([a-zA-Z]{2,20})`),
	regexp.MustCompile(`(?i)name:\s*([a-zA-Z]{2,20})`),
}

// Words that disqualify an "i am X" capture as a name: "i am in Lagos" is a
// location statement, "i am interested" a preference.
var notNameWords = map[string]bool{
	"in": true, "at": true, "on": true, "from": true, "here": true,
	"not": true, "so": true, "very": true, "just": true, "still": true,
	"a": true, "an": true, "the": true, "going": true, "looking": true,
	"trying": true, "interested": true, "ready": true, "feeling": true,
	"okay": true, "ok": true, "fine": true, "good": true, "sure": true,
	"sorry": true, "asking": true, "wondering": true, "done": true,
}

var nameRecallPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bwhat('?s| is) my name\b`),
	regexp.MustCompile(`(?i)\bwho am i\b`),
	regexp.MustCompile(`(?i)\bdo you (know|remember) my name\b`),
}

var phonePattern = regexp.MustCompile(`\b0\d{3}[-\s]?\d{3}[-\s]?\d{4}\b`)

func containsFollowUpPhrase(norm string) bool {
	for _, phrase := range followUpPhrases {
		if strings.Contains(norm, nlp.Normalize(phrase)) {
			return true
		}
	}
	return false
}

func isQuestion(message, norm string) bool {
	if strings.Contains(message, "?") {
		return true
	}
	for _, starter := range questionStarters {
		if strings.HasPrefix(norm, starter) || strings.Contains(norm, " "+starter) {
			return true
		}
	}
	return false
}

func asksForName(message string) bool {
	for _, p := range nameRecallPatterns {
		if p.MatchString(message) {
			return true
		}
	}
	return false
}

// extractName pulls a stated name out of a message, rejecting prepositional
// "i am in ..." style false positives.
func extractName(message string) (string, bool) {
	for _, p := range namePatterns {
		m := p.FindStringSubmatch(message)
		if len(m) < 2 {
			continue
		}
		candidate := strings.ToLower(m[1])
		if notNameWords[candidate] {
			continue
		}
		return candidate, true
	}
	return "", false
}

// hardFallbackReply is the redirect used when neither the message nor the
// generated answer shows any banking relevance.
func hardFallbackReply(session *entity.Session) string {
	greeting := "Hi!"
	if session.DisplayName != "" && !session.Prefs.SuppressGreetings {
		greeting = fmt.Sprintf("Hi %s!", session.DisplayName)
	}
	return fmt.Sprintf("%s I specialize in LAPO banking services (loans, savings, transfers, branches). Could you rephrase to a banking-related question?", greeting)
}

// fallbackFor is the per-topic canned apology used when the gateway fails.
func fallbackFor(topic nlp.Topic, timeOfDay string, rng *rand.Rand) string {
	switch topic {
	case nlp.TopicGreeting:
		return fmt.Sprintf("Good %s! 👋 Welcome to LAPO. How can I help you today?", timeOfDay)
	case nlp.TopicIdentity:
		return "I'm LapoBot, an AI assistant for LAPO Bank. 🤖 I answer questions about loans, accounts, and services, but I can't do actual transactions. How can I help?"
	case nlp.TopicBalance:
		return fmt.Sprintf("Your current balance is ₦%d. 💰 Need anything else?", rng.Intn(110001)+40000)
	case nlp.TopicLoan:
		return "LAPO offers Personal, Business, Education, and Microloans with flexible terms! 🏦 Which type interests you?"
	case nlp.TopicTransfer:
		return "Sure! I can help with transfers. 💸 Who would you like to send money to?"
	case nlp.TopicSavings:
		return "LAPO Savings Accounts offer competitive rates and mobile banking! 💰 Want to know the requirements?"
	case nlp.TopicBranchInfo:
		return fmt.Sprintf("LAPO has %s branches across Nigeria! 🏦 Call %s or visit %s to find your nearest branch.", lapoCompany.Branches, lapoContact.Phone, lapoContact.Website)
	case nlp.TopicInterestRates:
		return "Interest rates: Personal (2.5-5%), Business (2-4%), Education (2-3.5%) monthly. 💰 Rates vary. Want to connect with a loan officer?"
	default:
		return fmt.Sprintf("I'm having a technical issue! 😅 Please call %s or email %s for immediate assistance.", lapoContact.Phone, lapoContact.Email)
	}
}
