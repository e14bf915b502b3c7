package nlp

// Topic is a closed category tag the dialogue policy can assign to a
// message. Adding a topic is a data change in the lexicon table, not a
// control-flow change.
type Topic string

const (
	TopicGreeting      Topic = "greeting"
	TopicIdentity      Topic = "identity"
	TopicBalance       Topic = "balance"
	TopicLoan          Topic = "loan"
	TopicTransfer      Topic = "transfer"
	TopicSavings       Topic = "savings"
	TopicBranchInfo    Topic = "branch_info"
	TopicInterestRates Topic = "interest_rates"

	// Derived tags, never matched by triggers.
	TopicGeneral         Topic = "general"
	TopicUnknown         Topic = "unknown"
	TopicBankingInquiry  Topic = "banking_inquiry"
	TopicWebhookFallback Topic = "webhook_fallback"
)

// ScoredMessage is produced once per incoming message.
type ScoredMessage struct {
	TopicScores   map[Topic]float64
	OrderedTopics []Topic
	Confidence    float64
}

// RelevanceLevel is the outcome of the binary brand/banking/off-topic
// keyword check, independent of the numeric scorer.
type RelevanceLevel string

const (
	RelevanceVeryHigh RelevanceLevel = "very-high"
	RelevanceHigh     RelevanceLevel = "high"
	RelevanceMedium   RelevanceLevel = "medium"
	RelevanceOffTopic RelevanceLevel = "off-topic"
	RelevanceNone     RelevanceLevel = "none"
)

func (r RelevanceLevel) Relevant() bool {
	return r == RelevanceVeryHigh || r == RelevanceHigh || r == RelevanceMedium
}
