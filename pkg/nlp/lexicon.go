package nlp

// topicEntry pairs a topic with its trigger phrases. Order matters: it is
// the tie-break order for equal scores.
type topicEntry struct {
	topic    Topic
	triggers []string
}

var topicTable = []topicEntry{
	{TopicGreeting, []string{
		"hello", "hey", "good morning", "good afternoon", "good evening",
		"yo", "greetings", "howdy", "hi",
	}},
	{TopicIdentity, []string{
		"who are you", "what are you", "are you a bot", "are you human",
		"are you real", "your name", "what can you do",
	}},
	{TopicBalance, []string{
		"balance", "account balance", "how much do i have", "check my balance",
		"my balance", "show balance",
	}},
	{TopicLoan, []string{
		"loan", "borrow", "credit", "lend", "apply for a loan", "get a loan",
		"microfinance", "loan application", "education loan", "business loan",
		"sme loan",
	}},
	{TopicTransfer, []string{
		"transfer", "send money", "move funds", "send cash", "payment", "pay", "wire",
	}},
	{TopicSavings, []string{
		"savings", "save", "savings account", "open account", "create account",
		"new account", "personal account", "deposit account", "fixed deposit",
		"saving money", "open a", "opening a",
	}},
	{TopicBranchInfo, []string{
		"branch", "branches", "location", "locations", "office", "offices",
		"where is", "how many", "nearest branch", "find branch", "branch address",
	}},
	{TopicInterestRates, []string{
		"interest rate", "interest rates", "rate", "rates", "how much interest",
		"what rate", "what rates", "charges", "fee", "fees", "cost", "pricing",
	}},
}

// BankingKeywords mark a message as on-topic for LAPO banking regardless of
// what the numeric scorer concludes.
var BankingKeywords = []string{
	"loan", "bank", "account", "balance", "transfer", "savings", "deposit",
	"withdrawal", "credit", "debit", "branch", "funds", "interest",
	"microfinance", "payment", "repayment", "finance", "eligibility",
	"loan officer", "open account", "education loan", "business loan", "sme loan",
}

// BrandKeywords identify the institution itself.
var BrandKeywords = []string{
	"lapo", "lift above poverty", "microfinance organization", "godwin",
	"ehigiamusoe", "founder", "lapo bank", "microfinance bank",
}

// OffTopicKeywords short-circuit the policy into a canned redirect.
var OffTopicKeywords = []string{
	"recipe", "cook", "food", "pizza", "game", "movie", "music", "sport",
	"weather", "joke", "story", "sing", "dance", "play", "netflix",
	"facebook", "instagram", "twitter", "tiktok", "youtube", "politics",
	"religion", "dating", "relationship", "health", "medicine", "doctor",
	"homework", "exam", "travel", "hotel", "flight", "car",
	"phone", "computer", "laptop", "shopping", "fashion", "clothes",
	"celebrity", "artist", "actor", "actress", "film", "series", "show",
	"anime", "manga", "video", "photo", "picture", "meme", "crypto",
	"bitcoin", "stock", "forex", "trading",
}

// Triggers returns the trigger phrases registered for a topic.
func Triggers(t Topic) []string {
	for _, entry := range topicTable {
		if entry.topic == t {
			return entry.triggers
		}
	}
	return nil
}
