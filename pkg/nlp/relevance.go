package nlp

import "strings"

// CountKeywordMatches counts how many keywords occur as substrings of the
// lower-cased text.
func CountKeywordMatches(text string, keywords []string) int {
	lower := strings.ToLower(text)
	count := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			count++
		}
	}
	return count
}

func containsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// CheckRelevance runs the binary brand/banking/off-topic keyword check.
// It is independent of the numeric scorer; the dialogue policy consults both.
func CheckRelevance(text string) RelevanceLevel {
	mentionsBrand := containsAny(text, BrandKeywords)
	mentionsBanking := containsAny(text, BankingKeywords)

	switch {
	case mentionsBanking && mentionsBrand:
		return RelevanceVeryHigh
	case mentionsBanking:
		return RelevanceHigh
	case mentionsBrand:
		return RelevanceMedium
	case containsAny(text, OffTopicKeywords):
		return RelevanceOffTopic
	default:
		return RelevanceNone
	}
}

// IsBankingRelated treats either a relevant binary check or at least one raw
// banking keyword as an on-topic signal, mirroring the policy's borderline
// handling.
func IsBankingRelated(text string) bool {
	if CheckRelevance(text).Relevant() {
		return true
	}
	return CountKeywordMatches(text, BankingKeywords) >= 1
}
