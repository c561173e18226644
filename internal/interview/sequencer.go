package interview

import (
	"fmt"
	"strings"
)

// Sequencer distributes questions across skills using a question bank.
type Sequencer struct {
	bank Bank
}

// NewSequencer creates a sequencer over the bank. A nil bank uses DefaultBank.
func NewSequencer(bank Bank) *Sequencer {
	if bank == nil {
		bank = DefaultBank()
	}
	return &Sequencer{bank: bank}
}

// Bank returns the bank backing the sequencer.
func (s *Sequencer) Bank() Bank {
	return s.bank
}

// Sequence returns exactly n questions. Skills are taken round robin in input order.
// Each bank topic hands out its questions in bank order and wraps around once
// exhausted, so repetition only happens when the bank runs dry.
func (s *Sequencer) Sequence(skills []string, n int) ([]Question, error) {
	if len(skills) == 0 {
		return nil, fmt.Errorf("skills must not be empty: %w", ErrInvalidInput)
	}
	if n < 1 {
		return nil, fmt.Errorf("number of questions must be positive, got %d: %w", n, ErrInvalidInput)
	}

	cursors := make(map[string]int)
	questions := make([]Question, 0, n)

	for i := 0; i < n; i++ {
		skill := skills[i%len(skills)]
		key := s.bank.Resolve(skill)
		topic := s.bank[key]

		text := genericQuestion(skill)
		if len(topic.Questions) > 0 {
			text = topic.Questions[cursors[key]%len(topic.Questions)]
			cursors[key]++
		}

		questions = append(questions, Question{
			Number: i + 1,
			Skill:  skill,
			Text:   text,
		})
	}

	return questions, nil
}

// genericQuestion is used only when a bank has no general topic to fall back to.
func genericQuestion(skill string) string {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return "Tell me about a recent technical problem you solved."
	}
	return fmt.Sprintf("Describe your practical experience with %s.", skill)
}
