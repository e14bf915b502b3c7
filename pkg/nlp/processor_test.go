package nlp

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScorer(deterministic bool) IScorer {
	return NewScorer(rand.New(rand.NewSource(42)), deterministic)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "HELLO World", "hello world"},
		{"strips punctuation", "what's up?!", "whats up"},
		{"trims whitespace", "   loan please   ", "loan please"},
		{"keeps digits and underscores", "account_42", "account_42"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestScoreExactTriggerGetsBonus(t *testing.T) {
	scorer := newTestScorer(true)

	exact := scorer.Score("loan")
	substring := scorer.Score("tell me about a loan please quickly because I am curious")

	// Exact match stacks the bonus on top of the substring hit.
	assert.GreaterOrEqual(t, exact.TopicScores[TopicLoan], 1.5)
	assert.Greater(t, exact.TopicScores[TopicLoan], substring.TopicScores[TopicLoan])

	require.NotEmpty(t, exact.OrderedTopics)
	assert.Equal(t, TopicLoan, exact.OrderedTopics[0])
}

func TestScoreGreetingDampenedOnLongMessages(t *testing.T) {
	scorer := newTestScorer(true)

	long := "hello please explain all details regarding terms and general conditions for me"
	require.Greater(t, len(strings.Fields(long)), 10)

	short := scorer.Score("hello")
	dampened := scorer.Score(long)

	assert.Greater(t, short.TopicScores[TopicGreeting], 0.0)
	assert.Greater(t, dampened.TopicScores[TopicGreeting], 0.0)
	assert.Less(t, dampened.TopicScores[TopicGreeting], short.TopicScores[TopicGreeting])
	// Dampening multiplies by 0.3; a lone substring hit lands at exactly 0.3.
	assert.InDelta(t, 0.3, dampened.TopicScores[TopicGreeting], 0.05)
}

func TestScoreConfidenceBands(t *testing.T) {
	scorer := newTestScorer(true)

	matched := scorer.Score("i want to apply for a loan")
	assert.GreaterOrEqual(t, matched.Confidence, 0.6)
	assert.LessOrEqual(t, matched.Confidence, 1.0)

	// Confidence is rounded to two decimals.
	assert.InDelta(t, matched.Confidence, math.Round(matched.Confidence*100)/100, 1e-9)
}

func TestScoreNoMatchDeterministic(t *testing.T) {
	scorer := newTestScorer(true)

	scored := scorer.Score("zxqy qwv zzz")

	assert.Empty(t, scored.OrderedTopics)
	assert.Zero(t, scored.Confidence)
}

func TestScoreNoMatchNoisy(t *testing.T) {
	scorer := newTestScorer(false)

	for i := 0; i < 10; i++ {
		scored := scorer.Score("zxqy qwv zzz")
		assert.Empty(t, scored.OrderedTopics)
		assert.GreaterOrEqual(t, scored.Confidence, 0.0)
		assert.LessOrEqual(t, scored.Confidence, 0.3)
	}
}

func TestScoreOrderedTopicsSortedByScore(t *testing.T) {
	scorer := newTestScorer(true)

	scored := scorer.Score("i want a loan and also check my balance")

	require.GreaterOrEqual(t, len(scored.OrderedTopics), 2)
	// "check my balance" stacks three balance triggers against one loan hit.
	assert.Equal(t, TopicBalance, scored.OrderedTopics[0])
	for i := 1; i < len(scored.OrderedTopics); i++ {
		prev := scored.TopicScores[scored.OrderedTopics[i-1]]
		curr := scored.TopicScores[scored.OrderedTopics[i]]
		assert.GreaterOrEqual(t, prev, curr)
	}
}

func TestTriggersLookup(t *testing.T) {
	assert.Contains(t, Triggers(TopicLoan), "loan")
	assert.Contains(t, Triggers(TopicGreeting), "good morning")
	assert.Nil(t, Triggers(Topic("nonexistent")))
}
