package chatService

import (
	"fmt"
	"strings"
	"time"

	"github.com/sammie004/intent-classifier-for-chatbot/internal/entity"
	"github.com/sammie004/intent-classifier-for-chatbot/pkg/nlp"
)

const conversationSummaryDepth = 5

// conversationSummary serializes the most recent turns for the gateway.
func conversationSummary(history []entity.Interaction) string {
	if len(history) == 0 {
		return "This is a new conversation."
	}

	recent := history
	if len(recent) > conversationSummaryDepth {
		recent = recent[len(recent)-conversationSummaryDepth:]
	}

	var b strings.Builder
	b.WriteString("Previous conversation:\n")
	for i, item := range recent {
		fmt.Fprintf(&b, "%d. User asked: %q (Intent: %s)\n", i+1, item.UserMessage, item.Topic)
	}
	return strings.TrimRight(b.String(), "\n")
}

func labeledFactLines(facts []labeledFact) string {
	lines := make([]string, 0, len(facts))
	for _, f := range facts {
		lines = append(lines, fmt.Sprintf("- %s: %s", f.Label, f.Text))
	}
	return strings.Join(lines, "\n")
}

func numberedLines(items []string) string {
	lines := make([]string, 0, len(items))
	for i, item := range items {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, item))
	}
	return strings.Join(lines, "\n")
}

// buildPrompt grounds the gateway on the verified knowledge base, the
// conversation so far, and the decided topic. The gateway gets everything it
// needs in one shot; it holds no state of its own.
func (s *chatService) buildPrompt(message string, decision dialogueDecision, session *entity.Session) string {
	tod := timeOfDay(time.Now())

	userMessage := message
	contextHint := ""
	if decision.followUp {
		userMessage = fmt.Sprintf("User said: %q. This is a follow-up to the previous conversation about %s. Respond contextually based on that topic.", message, decision.topic)
		contextHint = fmt.Sprintf("\nIMPORTANT: This is a FOLLOW-UP message. The user is continuing the discussion about %s. Respond as a continuation, do not re-introduce yourself, reference what was discussed before and guide them on next steps.", decision.topic)
	}

	var b strings.Builder
	b.WriteString("You are a helpful LAPO Microfinance Bank assistant. Your responses must be accurate and based ONLY on the information provided below.\n\n")

	b.WriteString("VERIFIED LAPO INFORMATION (USE ONLY THIS DATA):\n\n")
	fmt.Fprintf(&b, "COMPANY:\n- Full Name: %s\n- Founded: %s by %s\n- History: %s\n- Mission: %s\n- Focus: %s\n- Network: %s branches %s\n\n",
		lapoCompany.FullName, lapoCompany.Founded, lapoCompany.Founder,
		lapoCompany.Transformation, lapoCompany.Mission, lapoCompany.Focus,
		lapoCompany.Branches, lapoCompany.Presence)
	fmt.Fprintf(&b, "OFFICIAL CONTACT (NEVER MAKE UP NUMBERS):\n- Website: %s\n- Phone: %s (%s)\n- Email: %s\n- Hours: %s\n\n",
		lapoContact.Website, lapoContact.Phone, lapoContact.AlternativePhone,
		lapoContact.Email, lapoContact.CustomerService)
	fmt.Fprintf(&b, "LOAN TYPES:\n%s\n\nINTEREST RATES (GENERAL GUIDELINES):\n%s\nNote: %s\n\n",
		labeledFactLines(lapoLoanTypes), labeledFactLines(lapoLoanRates), lapoRatesNote)
	fmt.Fprintf(&b, "SAVINGS ACCOUNTS:\n%s\n\nDIGITAL SERVICES:\n%s\n\n",
		labeledFactLines(lapoAccounts), labeledFactLines(lapoDigital))
	fmt.Fprintf(&b, "LOAN REQUIREMENTS:\n%s\n\nACCOUNT OPENING REQUIREMENTS:\n%s\n\n",
		numberedLines(lapoLoanRequirements), numberedLines(lapoAccountRequirements))
	fmt.Fprintf(&b, "LOAN APPLICATION PROCESS:\n%s\n\nACCOUNT OPENING PROCESS:\n%s\n\n",
		numberedLines(lapoLoanProcess), numberedLines(lapoAccountProcess))

	fmt.Fprintf(&b, "CONVERSATION CONTEXT:\n%s%s\n\n", conversationSummary(session.History), contextHint)
	fmt.Fprintf(&b, "Current time of day: %s\nDetected intent: %s\n", tod, decision.topic)
	if session.DisplayName != "" {
		fmt.Fprintf(&b, "The user's name is %s.\n", session.DisplayName)
	}

	b.WriteString("\nRESPONSE RULES:\n")
	b.WriteString("- ONLY use information from the sections above.\n")
	b.WriteString("- If asked about contact info, use the EXACT numbers and emails provided.\n")
	fmt.Fprintf(&b, "- If you don't have specific information, say \"Let me connect you with a loan officer\" or \"Please call %s\".\n", lapoContact.Phone)
	b.WriteString("- NEVER make up interest rates, fees, or requirements.\n")
	b.WriteString("- For balance inquiries, generate a realistic demo amount between ₦40,000 and ₦150,000.\n")
	b.WriteString("- Reference previous messages when relevant and be consistent with earlier answers.\n")
	b.WriteString("- Be warm and conversational, use at most 2 emojis, keep replies under 4 sentences unless giving detailed procedures, and end with an offer to help further.\n")
	fmt.Fprintf(&b, "- Use \"Good %s\" for greetings.\n", tod)

	if guidance := intentGuidance(decision.topic); guidance != "" {
		fmt.Fprintf(&b, "\nINTENT GUIDANCE:\n%s\n", guidance)
	}

	fmt.Fprintf(&b, "\nUSER'S CURRENT MESSAGE: %q\n\nYour response (as LAPO assistant):", userMessage)

	return b.String()
}

// intentGuidance carries per-topic steering for the gateway.
func intentGuidance(topic nlp.Topic) string {
	switch topic {
	case nlp.TopicGreeting:
		return "- Greet warmly and ask how you can help with LAPO banking."
	case nlp.TopicIdentity:
		return "- Keep to 2-3 sentences, under 35 words total. Your name is \"LapoBot\", say it once. Be honest: you are an AI for LAPO Bank that answers banking questions but cannot do actual transactions. Professional and friendly, maximum 1 emoji, no filler like \"brighten your day\" or \"AI buddy\"."
	case nlp.TopicBalance:
		return "- Provide a realistic demo balance (₦40,000-₦150,000) and ask if they need anything else."
	case nlp.TopicLoan:
		return "- Mention loan types briefly and ask which interests them."
	case nlp.TopicTransfer:
		return "- Ask for recipient details and amount."
	case nlp.TopicSavings:
		return "- Mention account benefits and ask if they want to know the requirements."
	case nlp.TopicBranchInfo:
		return "- Provide contact methods and offer to help find a specific location."
	case nlp.TopicInterestRates:
		return "- Provide rate ranges, emphasize that they vary, and offer to connect with a loan officer."
	default:
		return ""
	}
}
