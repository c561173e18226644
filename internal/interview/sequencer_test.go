package interview

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSequencerProducesRequestedCount(t *testing.T) {
	t.Parallel()

	seq := NewSequencer(nil)
	for n := 1; n <= MaxQuestions; n++ {
		questions, err := seq.Sequence([]string{"React", "Python"}, n)
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		if len(questions) != n {
			t.Fatalf("n=%d: expected %d questions, got %d", n, n, len(questions))
		}
		for i, q := range questions {
			if q.Number != i+1 {
				t.Fatalf("n=%d: expected question number %d, got %d", n, i+1, q.Number)
			}
		}
	}
}

func TestSequencerRoundRobinInInputOrder(t *testing.T) {
	t.Parallel()

	bank := DefaultBank()
	questions, err := NewSequencer(bank).Sequence([]string{"React", "SQL"}, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []Question{
		{Number: 1, Skill: "React", Text: bank["react"].Questions[0]},
		{Number: 2, Skill: "SQL", Text: bank["sql"].Questions[0]},
		{Number: 3, Skill: "React", Text: bank["react"].Questions[1]},
		{Number: 4, Skill: "SQL", Text: bank["sql"].Questions[1]},
	}

	for i := range expected {
		if questions[i] != expected[i] {
			t.Fatalf("question %d: expected %+v, got %+v", i, expected[i], questions[i])
		}
	}
}

func TestSequencerWrapsWhenBankIsExhausted(t *testing.T) {
	t.Parallel()

	bank := Bank{
		"go":         {Questions: []string{"g1", "g2"}},
		GeneralSkill: {Questions: []string{"general"}},
	}

	questions, err := NewSequencer(bank).Sequence([]string{"Go"}, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"g1", "g2", "g1", "g2", "g1"}
	for i, q := range questions {
		if q.Text != want[i] {
			t.Fatalf("question %d: expected %q, got %q", i, want[i], q.Text)
		}
	}
}

func TestSequencerFallsBackToGeneralTopic(t *testing.T) {
	t.Parallel()

	bank := DefaultBank()
	questions, err := NewSequencer(bank).Sequence([]string{"Underwater Basket Weaving", "Cobol"}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	general := bank[GeneralSkill].Questions
	for i, q := range questions {
		if q.Text != general[i] {
			t.Fatalf("question %d: expected shared general cursor %q, got %q", i, general[i], q.Text)
		}
	}
	if questions[1].Skill != "Cobol" {
		t.Fatalf("expected question to keep the requested skill, got %q", questions[1].Skill)
	}
}

func TestSequencerUsesTemplateWithoutGeneralTopic(t *testing.T) {
	t.Parallel()

	questions, err := NewSequencer(Bank{}).Sequence([]string{"Haskell"}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if questions[0].Text != "Describe your practical experience with Haskell." {
		t.Fatalf("unexpected template question: %q", questions[0].Text)
	}
}

func TestSequencerRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	seq := NewSequencer(nil)
	if _, err := seq.Sequence(nil, 3); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty skills, got %v", err)
	}
	if _, err := seq.Sequence([]string{"React"}, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero questions, got %v", err)
	}
}

func TestBankResolve(t *testing.T) {
	t.Parallel()

	bank := DefaultBank()
	tests := []struct {
		skill string
		want  string
	}{
		{skill: "React", want: "react"},
		{skill: "  SQL ", want: "sql"},
		{skill: "React Native", want: "react"},
		{skill: "Node.js", want: "node.js"},
		{skill: "PostgreSQL", want: "sql"},
		{skill: "Go modules", want: "go"},
		{skill: "Django", want: GeneralSkill},
		{skill: "C", want: GeneralSkill},
		{skill: "Type", want: "typescript"},
		{skill: "Leadership", want: GeneralSkill},
		{skill: "", want: GeneralSkill},
	}

	for _, tt := range tests {
		if got := bank.Resolve(tt.skill); got != tt.want {
			t.Fatalf("Resolve(%q): expected %q, got %q", tt.skill, tt.want, got)
		}
	}
}

func TestLoadBankFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bank.yaml")
	content := `
Rust:
  questions:
    - "What is ownership?"
  keywords: [borrow, ownership]
general:
  questions:
    - "Tell me about yourself."
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write bank: %v", err)
	}

	bank, err := LoadBankFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	topic, ok := bank["rust"]
	if !ok {
		t.Fatalf("expected normalized rust key, got %v", bank.Keys())
	}
	if len(topic.Questions) != 1 || len(topic.Keywords) != 2 {
		t.Fatalf("unexpected topic: %+v", topic)
	}
}

func TestLoadBankFileRequiresGeneralTopic(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bank.yaml")
	if err := os.WriteFile(path, []byte("rust:\n  questions: [\"q\"]\n"), 0o600); err != nil {
		t.Fatalf("write bank: %v", err)
	}

	if _, err := LoadBankFile(path); err == nil {
		t.Fatalf("expected error for bank without general topic")
	}
}

func TestBankFromMap(t *testing.T) {
	t.Parallel()

	raw := map[string]any{
		"Kotlin": map[string]any{
			"questions": []any{"What are coroutines?"},
			"keywords":  []any{"coroutine"},
		},
		"general": map[string]any{
			"questions": []any{"Why this role?"},
		},
	}

	bank, err := BankFromMap(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := bank["kotlin"].Questions; len(got) != 1 || got[0] != "What are coroutines?" {
		t.Fatalf("unexpected kotlin questions: %v", got)
	}
}
