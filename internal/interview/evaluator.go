package interview

import (
	"strings"
	"unicode"
)

const (
	MinAnswerScore = 0
	MaxAnswerScore = 10

	noAnswerFeedback = "No answer was given."
)

// Evaluation is the score and feedback for a single answer.
type Evaluation struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// Evaluator scores answers deterministically from their length and the
// presence of skill keywords.
type Evaluator struct {
	bank Bank
}

// NewEvaluator creates an evaluator over the bank. A nil bank uses DefaultBank.
func NewEvaluator(bank Bank) *Evaluator {
	if bank == nil {
		bank = DefaultBank()
	}
	return &Evaluator{bank: bank}
}

// Evaluate scores the answer for the skill.
//
// Word count tiers: <5 words scores 3, <20 scores 6, <50 scores 8, otherwise 9.
// One point is added when any keyword of the skill topic appears as a word,
// capped at MaxAnswerScore. Blank answers score 0.
func (e *Evaluator) Evaluate(skill, answer string) Evaluation {
	words := tokenize(answer)
	if len(words) == 0 {
		return Evaluation{Score: MinAnswerScore, Feedback: noAnswerFeedback}
	}

	score, feedback := lengthTier(len(words))

	if matched := e.matchKeyword(skill, words); matched != "" {
		score++
		feedback += " Mentions " + matched + "."
	} else {
		feedback += " Relate the answer to core " + strings.TrimSpace(skill) + " concepts."
	}

	if score > MaxAnswerScore {
		score = MaxAnswerScore
	}

	return Evaluation{Score: score, Feedback: feedback}
}

func lengthTier(words int) (int, string) {
	switch {
	case words < 5:
		return 3, "Answer is too brief. Try to provide more details."
	case words < 20:
		return 6, "Good attempt, but could be more comprehensive."
	case words < 50:
		return 8, "Well-explained answer with good detail."
	default:
		return 9, "Comprehensive and detailed answer."
	}
}

// matchKeyword returns the first topic keyword, in topic order, found among the words.
func (e *Evaluator) matchKeyword(skill string, words []string) string {
	topic := e.bank.Topic(skill)
	if len(topic.Keywords) == 0 {
		return ""
	}

	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		seen[w] = struct{}{}
	}

	for _, keyword := range topic.Keywords {
		k := strings.ToLower(strings.TrimSpace(keyword))
		if _, ok := seen[k]; ok {
			return k
		}
	}
	return ""
}

// tokenize lowercases text and splits it into words of letters, digits and dots.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.' && r != '_'
	})

	words := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, ".")
		if f != "" {
			words = append(words, f)
		}
	}
	return words
}
