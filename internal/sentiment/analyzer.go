// Package sentiment classifies interview feedback and transcripts with a
// deterministic keyword heuristic.
package sentiment

import (
	"errors"
	"math"
	"strings"
	"unicode"

	"github.com/spigell/hr-interviewer/internal/scoring"
)

// Label is the overall sentiment of a text.
type Label string

const (
	Positive Label = "positive"
	Neutral  Label = "neutral"
	Negative Label = "negative"
)

// ErrEmptyText is returned when there is nothing to analyze.
var ErrEmptyText = errors.New("no text provided for analysis")

// Result is the outcome of an analysis. Score is in [0,1].
type Result struct {
	Sentiment Label                      `json:"sentiment"`
	Score     float64                    `json:"score"`
	Breakdown scoring.SentimentBreakdown `json:"breakdown"`
	Sentences int                        `json:"sentences"`
}

var (
	positiveWords = wordSet(
		"good", "great", "excellent", "strong", "confident", "clear", "impressive",
		"solid", "enjoyed", "passionate", "effective", "love", "happy", "skilled",
	)
	negativeWords = wordSet(
		"bad", "poor", "fail", "failed", "failure", "weak", "unclear", "struggled",
		"confused", "lacking", "wrong", "unable", "nervous", "hate",
	)
	negators = wordSet("not", "no", "never", "hardly", "didn't", "don't", "isn't", "wasn't", "wasnt", "isnt")
)

// Analyze splits the text into sentences, classifies each one and reports the
// share of positive, neutral and negative sentences in percent.
func Analyze(text string) (*Result, error) {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return nil, ErrEmptyText
	}

	var pos, neg, neu int
	for _, s := range sentences {
		switch classify(s) {
		case Positive:
			pos++
		case Negative:
			neg++
		default:
			neu++
		}
	}

	total := float64(len(sentences))
	breakdown := scoring.SentimentBreakdown{
		Positive: round2(float64(pos) / total * 100),
		Neutral:  round2(float64(neu) / total * 100),
		Negative: round2(float64(neg) / total * 100),
	}

	label := Neutral
	switch {
	case pos > neg:
		label = Positive
	case neg > pos:
		label = Negative
	}

	return &Result{
		Sentiment: label,
		Score:     round2(breakdown.Score() / 100),
		Breakdown: breakdown,
		Sentences: len(sentences),
	}, nil
}

// classify weighs positive and negative keywords in one sentence. A negator
// directly before a keyword flips its polarity.
func classify(sentence string) Label {
	tokens := tokenize(sentence)
	balance := 0
	for i, tok := range tokens {
		polarity := 0
		switch {
		case positiveWords[tok]:
			polarity = 1
		case negativeWords[tok]:
			polarity = -1
		default:
			continue
		}
		if i > 0 && negators[tokens[i-1]] {
			polarity = -polarity
		}
		balance += polarity
	}

	switch {
	case balance > 0:
		return Positive
	case balance < 0:
		return Negative
	default:
		return Neutral
	}
}

func splitSentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == '\n' || r == ';'
	})

	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
}

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
