package nlp

import (
	"math"
	"math/rand"
	"sort"
	"strings"
	"unicode"

	"github.com/xrash/smetrics"
)

const (
	exactMatchBonus     = 0.5
	similarityFloor     = 0.85
	similarityWeight    = 0.7
	greetingDampening   = 0.3
	dampeningTokenCount = 10
)

type IScorer interface {
	Score(text string) ScoredMessage
}

type scorer struct {
	rng *rand.Rand

	// deterministicNoMatch swaps the original's noisy low confidence for an
	// exact zero when nothing matches. Kept configurable: the noise is an
	// artifact of the source behavior, not a calibrated signal.
	deterministicNoMatch bool
}

func NewScorer(rng *rand.Rand, deterministicNoMatch bool) IScorer {
	return &scorer{
		rng:                  rng,
		deterministicNoMatch: deterministicNoMatch,
	}
}

// Normalize lower-cases, strips punctuation and trims a message before any
// lexical matching.
func Normalize(text string) string {
	lower := strings.ToLower(text)
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '_' {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

func (s *scorer) Score(text string) ScoredMessage {
	norm := Normalize(text)
	scores := make(map[Topic]float64, len(topicTable))

	for _, entry := range topicTable {
		score := 0.0
		for _, trigger := range entry.triggers {
			if strings.Contains(norm, trigger) {
				score += 1.0
				if norm == trigger {
					score += exactMatchBonus
				}
			}
			similarity := smetrics.JaroWinkler(norm, trigger, 0.7, 4)
			if similarity > similarityFloor {
				score += similarity * similarityWeight
			}
		}
		scores[entry.topic] = score
	}

	// A long substantive question that happens to open with "hello" is not
	// a greeting.
	if len(strings.Fields(norm)) > dampeningTokenCount && scores[TopicGreeting] > 0 {
		scores[TopicGreeting] *= greetingDampening
	}

	ordered := make([]Topic, 0, len(topicTable))
	for _, entry := range topicTable {
		if scores[entry.topic] > 0 {
			ordered = append(ordered, entry.topic)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return scores[ordered[i]] > scores[ordered[j]]
	})

	total := 0.0
	for _, score := range scores {
		total += score
	}

	var confidence float64
	if total > 0 {
		confidence = math.Min(1, 0.6+total*0.15)
	} else if !s.deterministicNoMatch {
		confidence = s.rng.Float64() * 0.3
	}
	confidence = math.Round(confidence*100) / 100

	return ScoredMessage{
		TopicScores:   scores,
		OrderedTopics: ordered,
		Confidence:    confidence,
	}
}
