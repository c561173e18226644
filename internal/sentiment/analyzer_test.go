package sentiment

import (
	"errors"
	"testing"
)

func TestAnalyze(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		label    Label
		positive float64
		neutral  float64
		negative float64
		score    float64
	}{
		{
			name:     "positive",
			text:     "The candidate gave a great answer.",
			label:    Positive,
			positive: 100,
			score:    1,
		},
		{
			name:     "negative",
			text:     "The design was poor. Testing was bad!",
			label:    Negative,
			negative: 100,
			score:    0,
		},
		{
			name:    "neutral",
			text:    "We talked about the schedule",
			label:   Neutral,
			neutral: 100,
			score:   0.5,
		},
		{
			name:     "negated keyword flips polarity",
			text:     "The explanation was not clear",
			label:    Negative,
			negative: 100,
			score:    0,
		},
		{
			name:     "mixed sentences",
			text:     "Excellent communication. Struggled with SQL. Asked about the team. Strong Go skills",
			label:    Positive,
			positive: 50,
			neutral:  25,
			negative: 25,
			score:    0.63,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Analyze(tt.text)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Sentiment != tt.label {
				t.Fatalf("expected %s, got %s", tt.label, got.Sentiment)
			}
			b := got.Breakdown
			if b.Positive != tt.positive || b.Neutral != tt.neutral || b.Negative != tt.negative {
				t.Fatalf("unexpected breakdown: %+v", b)
			}
			if got.Score != tt.score {
				t.Fatalf("expected score %v, got %v", tt.score, got.Score)
			}
		})
	}
}

func TestAnalyzeRejectsEmptyText(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"", "   ", "...\n!"} {
		if _, err := Analyze(text); !errors.Is(err, ErrEmptyText) {
			t.Fatalf("Analyze(%q): expected ErrEmptyText, got %v", text, err)
		}
	}
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	t.Parallel()

	text := "Good start. Weak finish."
	first, _ := Analyze(text)
	for i := 0; i < 5; i++ {
		got, _ := Analyze(text)
		if *got != *first {
			t.Fatalf("analysis changed between calls: %+v vs %+v", first, got)
		}
	}
	if first.Sentiment != Neutral {
		t.Fatalf("expected balanced text to be neutral, got %s", first.Sentiment)
	}
}
