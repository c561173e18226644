package interview

import (
	"math"
	"time"
)

// Status is the lifecycle state of a session. It only moves forward.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Question is a single generated interview question.
type Question struct {
	Number int    `json:"questionNumber"`
	Skill  string `json:"skill"`
	Text   string `json:"text"`
}

// Answer is a recorded candidate answer together with its evaluation.
type Answer struct {
	QuestionNumber int       `json:"questionNumber"`
	Skill          string    `json:"skill"`
	Text           string    `json:"text"`
	Score          int       `json:"score"`
	Feedback       string    `json:"feedback"`
	AnsweredAt     time.Time `json:"answeredAt"`
}

// Session is one interview attempt for one candidate.
type Session struct {
	ID                   string     `json:"id"`
	CandidateID          string     `json:"candidateId"`
	CandidateName        string     `json:"candidateName"`
	Skills               []string   `json:"skills"`
	Questions            []Question `json:"questions"`
	Answers              []Answer   `json:"answers"`
	CurrentQuestionIndex int        `json:"currentQuestionIndex"`
	Status               Status     `json:"status"`
	FinalScore           *int       `json:"finalScore,omitempty"`
	StartedAt            time.Time  `json:"startedAt"`
	CompletedAt          *time.Time `json:"completedAt,omitempty"`
}

// Progress reports how far a session has advanced.
type Progress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// CurrentQuestion returns the question awaiting an answer, or nil when none is left
// or the session is completed.
func (s *Session) CurrentQuestion() *Question {
	if s.Status == StatusCompleted || s.CurrentQuestionIndex >= len(s.Questions) {
		return nil
	}
	q := s.Questions[s.CurrentQuestionIndex]
	return &q
}

// Progress returns the 1-based number of the current question and the total.
// A completed session reports the number of answered questions.
func (s *Session) Progress() Progress {
	current := s.CurrentQuestionIndex + 1
	if s.Status == StatusCompleted || current > len(s.Questions) {
		current = s.CurrentQuestionIndex
	}
	return Progress{Current: current, Total: len(s.Questions)}
}

// Score returns the running score in [0,100] computed over the answers given so far.
func (s *Session) Score() int {
	return scoreAnswers(s.Answers)
}

func (s *Session) clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.Skills = append([]string(nil), s.Skills...)
	out.Questions = append([]Question(nil), s.Questions...)
	out.Answers = append([]Answer(nil), s.Answers...)
	if s.FinalScore != nil {
		v := *s.FinalScore
		out.FinalScore = &v
	}
	if s.CompletedAt != nil {
		v := *s.CompletedAt
		out.CompletedAt = &v
	}
	return &out
}

// complete moves the session to completed and fixes its final score.
// Completing an already completed session keeps the stored values.
func (s *Session) complete(now time.Time) int {
	if s.Status == StatusCompleted && s.FinalScore != nil {
		return *s.FinalScore
	}
	score := scoreAnswers(s.Answers)
	s.Status = StatusCompleted
	s.FinalScore = &score
	s.CompletedAt = &now
	return score
}

// scoreAnswers is the mean answer score scaled from [0,10] to [0,100].
func scoreAnswers(answers []Answer) int {
	if len(answers) == 0 {
		return 0
	}
	total := 0
	for _, a := range answers {
		total += a.Score
	}
	mean := float64(total) / float64(len(answers))
	return clampPercent(int(math.Round(mean * 10)))
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
