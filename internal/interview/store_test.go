package interview

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

func sampleQuestions() []Question {
	return []Question{
		{Number: 1, Skill: "React", Text: "q1"},
		{Number: 2, Skill: "React", Text: "q2"},
	}
}

func TestStoreCreateValidatesInput(t *testing.T) {
	t.Parallel()

	store := NewStore()

	if _, err := store.Create("c1", "Ann", nil, sampleQuestions()); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty skills, got %v", err)
	}

	if _, err := store.Create("c1", "Ann", []string{"React"}, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty questions, got %v", err)
	}

	if store.Len() != 0 {
		t.Fatalf("expected no sessions after failed creates, got %d", store.Len())
	}
}

func TestStoreCreateAndGet(t *testing.T) {
	t.Parallel()

	store := NewStore()
	created, err := store.Create("c1", "Ann", []string{"React"}, sampleQuestions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created.ID == "" {
		t.Fatalf("expected generated id")
	}
	if created.Status != StatusActive || created.CurrentQuestionIndex != 0 {
		t.Fatalf("unexpected initial state: %+v", created)
	}

	got, err := store.Get(created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.CandidateName != "Ann" || len(got.Questions) != 2 {
		t.Fatalf("unexpected session: %+v", got)
	}

	if _, err := store.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreSnapshotsAreIsolated(t *testing.T) {
	t.Parallel()

	store := NewStore()
	created, err := store.Create("c1", "Ann", []string{"React"}, sampleQuestions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	created.Questions[0].Text = "mutated"
	created.Skills[0] = "mutated"

	got, _ := store.Get(created.ID)
	if got.Questions[0].Text != "q1" || got.Skills[0] != "React" {
		t.Fatalf("internal state mutated via returned snapshot: %+v", got)
	}
}

func TestStoreUpdateRollsBackOnError(t *testing.T) {
	t.Parallel()

	store := NewStore()
	created, _ := store.Create("c1", "Ann", []string{"React"}, sampleQuestions())

	boom := errors.New("boom")
	_, err := store.Update(created.ID, func(s *Session) error {
		s.CurrentQuestionIndex = 2
		s.Answers = append(s.Answers, Answer{Text: "partial"})
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected mutator error, got %v", err)
	}

	got, _ := store.Get(created.ID)
	if got.CurrentQuestionIndex != 0 || len(got.Answers) != 0 {
		t.Fatalf("failed update leaked into store: %+v", got)
	}

	if _, err := store.Update("missing", func(*Session) error { return nil }); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreUpdateSerializesPerSession(t *testing.T) {
	t.Parallel()

	store := NewStore()
	created, _ := store.Create("c1", "Ann", []string{"React"}, sampleQuestions())

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			_, err := store.Update(created.ID, func(s *Session) error {
				s.Answers = append(s.Answers, Answer{Text: fmt.Sprintf("a%d", i)})
				s.CurrentQuestionIndex++
				return nil
			})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	got, _ := store.Get(created.ID)
	if len(got.Answers) != workers || got.CurrentQuestionIndex != workers {
		t.Fatalf("lost updates: answers=%d index=%d", len(got.Answers), got.CurrentQuestionIndex)
	}
}

func TestStoreListFiltersByStatus(t *testing.T) {
	t.Parallel()

	store := NewStore()
	first, _ := store.Create("c1", "Ann", []string{"React"}, sampleQuestions())
	second, _ := store.Create("c2", "Bob", []string{"Go"}, sampleQuestions())

	if _, err := store.Update(second.ID, func(s *Session) error {
		s.Status = StatusCompleted
		return nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if all := store.List(""); len(all) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(all))
	}

	active := store.List(StatusActive)
	if len(active) != 1 || active[0].ID != first.ID {
		t.Fatalf("unexpected active sessions: %+v", active)
	}

	completed := store.List(StatusCompleted)
	if len(completed) != 1 || completed[0].ID != second.ID {
		t.Fatalf("unexpected completed sessions: %+v", completed)
	}
}
