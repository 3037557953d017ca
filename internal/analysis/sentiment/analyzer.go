package sentiment

import (
	"strings"
	"unicode"

	"github.com/davemont/deskpilot/internal/model/conversation"
)

var (
	angryKeywords = []string{
		"angry", "furious", "outraged", "terrible", "worst", "pathetic",
		"ridiculous", "unacceptable",
	}
	frustratedKeywords = []string{
		"frustrated", "annoyed", "disappointed", "upset", "still waiting",
	}
	satisfiedKeywords = []string{
		"thank", "great", "appreciate", "perfect", "excellent",
	}
)

// Analyzer reads emotional tone from lexical cues. The zero thresholds are
// replaced by defaults in New; construct through New unless a test needs
// specific values.
type Analyzer struct {
	// ShoutRatio is the uppercase share of alphabetic characters above
	// which a message reads as shouting.
	ShoutRatio float64
	// MinLetters is the minimum alphabetic length before the shout check
	// applies, so short replies like "OK!" stay neutral.
	MinLetters int
	// ExclamationThreshold is the exclamation-mark count at which
	// punctuation alone signals frustration.
	ExclamationThreshold int
}

// New returns an Analyzer with the documented default thresholds.
func New() *Analyzer {
	return &Analyzer{
		ShoutRatio:           0.6,
		MinLetters:           8,
		ExclamationThreshold: 3,
	}
}

// Analyze maps message text to exactly one tone. Rules apply in fixed
// order and the first hit wins: anger lexicon or shouting, then
// frustration lexicon or heavy punctuation, then satisfaction lexicon,
// else neutral.
func (a *Analyzer) Analyze(text string) conversation.Sentiment {
	normalized := strings.ToLower(text)

	if containsAny(normalized, angryKeywords) || a.isShouting(text) {
		return conversation.SentimentAngry
	}
	if containsAny(normalized, frustratedKeywords) || strings.Count(text, "!") >= a.ExclamationThreshold {
		return conversation.SentimentFrustrated
	}
	if containsAny(normalized, satisfiedKeywords) {
		return conversation.SentimentSatisfied
	}
	return conversation.SentimentNeutral
}

// isShouting measures the uppercase ratio over alphabetic characters only,
// so order numbers and punctuation don't skew the reading.
func (a *Analyzer) isShouting(text string) bool {
	var letters, upper int
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	if letters < a.MinLetters {
		return false
	}
	return float64(upper)/float64(letters) > a.ShoutRatio
}

func containsAny(text string, keywords []string) bool {
	for _, word := range keywords {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}
