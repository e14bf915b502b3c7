package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckRelevance(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected RelevanceLevel
	}{
		{"brand and banking", "does LAPO offer a loan?", RelevanceVeryHigh},
		{"banking only", "i want to open account today", RelevanceHigh},
		{"brand only", "tell me about LAPO", RelevanceMedium},
		{"off-topic keyword", "recommend me a pizza recipe", RelevanceOffTopic},
		{"nothing recognizable", "zxqy qwv", RelevanceNone},
		{"off-topic loses to banking", "can i get a loan for my pizza shop", RelevanceHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CheckRelevance(tt.text))
		})
	}
}

func TestRelevanceLevelRelevant(t *testing.T) {
	assert.True(t, RelevanceVeryHigh.Relevant())
	assert.True(t, RelevanceHigh.Relevant())
	assert.True(t, RelevanceMedium.Relevant())
	assert.False(t, RelevanceOffTopic.Relevant())
	assert.False(t, RelevanceNone.Relevant())
}

func TestIsBankingRelated(t *testing.T) {
	assert.True(t, IsBankingRelated("what is my account balance"))
	assert.True(t, IsBankingRelated("LAPO"))
	assert.False(t, IsBankingRelated("best netflix series right now"))
	assert.False(t, IsBankingRelated("zxqy"))
}

func TestCountKeywordMatches(t *testing.T) {
	assert.Equal(t, 0, CountKeywordMatches("nothing here", []string{"loan", "bank"}))
	assert.Equal(t, 2, CountKeywordMatches("a Loan from the BANK", []string{"loan", "bank"}))
}
