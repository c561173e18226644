package interview

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// SkillScore is the average answer score for one skill.
type SkillScore struct {
	Skill      string  `json:"skill"`
	Score      float64 `json:"score"`
	Percentage int     `json:"percentage"`
	Answered   int     `json:"answered"`
}

// TranscriptEntry pairs a question with the answer it received.
type TranscriptEntry struct {
	Question string `json:"question"`
	Skill    string `json:"skill"`
	Answer   string `json:"answer"`
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// Result is the report of an interview session.
type Result struct {
	SessionID         string            `json:"sessionId"`
	CandidateID       string            `json:"candidateId"`
	CandidateName     string            `json:"candidateName"`
	Skills            []string          `json:"skills"`
	Status            Status            `json:"status"`
	OverallScore      int               `json:"overallScore"`
	TotalQuestions    int               `json:"totalQuestions"`
	QuestionsAnswered int               `json:"questionsAnswered"`
	SkillScores       []SkillScore      `json:"skillScores"`
	Strengths         []string          `json:"strengths"`
	Weaknesses        []string          `json:"weaknesses"`
	Recommendation    string            `json:"recommendation"`
	StartedAt         time.Time         `json:"startedAt"`
	CompletedAt       *time.Time        `json:"completedAt,omitempty"`
	DurationMinutes   int               `json:"durationMinutes"`
	Transcript        []TranscriptEntry `json:"transcript"`
}

// BuildResult derives the report of a session. Active sessions are reported
// with their running score and a duration measured up to now.
func BuildResult(s *Session, now time.Time) *Result {
	overall := s.Score()
	if s.FinalScore != nil {
		overall = *s.FinalScore
	}

	end := now
	if s.CompletedAt != nil {
		end = *s.CompletedAt
	}

	skillScores := scoreSkills(s)

	return &Result{
		SessionID:         s.ID,
		CandidateID:       s.CandidateID,
		CandidateName:     s.CandidateName,
		Skills:            append([]string(nil), s.Skills...),
		Status:            s.Status,
		OverallScore:      overall,
		TotalQuestions:    len(s.Questions),
		QuestionsAnswered: len(s.Answers),
		SkillScores:       skillScores,
		Strengths:         strengths(overall, skillScores),
		Weaknesses:        weaknesses(overall, skillScores),
		Recommendation:    Recommendation(overall),
		StartedAt:         s.StartedAt,
		CompletedAt:       s.CompletedAt,
		DurationMinutes:   int(math.Round(end.Sub(s.StartedAt).Minutes())),
		Transcript:        transcript(s),
	}
}

// Recommendation maps an interview score to a hiring recommendation.
func Recommendation(score int) string {
	switch {
	case score >= 80:
		return "Highly Recommended - Strong Candidate"
	case score >= 65:
		return "Recommended - Good Fit"
	case score >= 50:
		return "Consider for Review - Moderate Fit"
	default:
		return "Not Recommended - Weak Performance"
	}
}

// scoreSkills groups answers by the skill of their question, in session skill order.
func scoreSkills(s *Session) []SkillScore {
	totals := make(map[string]int)
	counts := make(map[string]int)
	for _, a := range s.Answers {
		totals[a.Skill] += a.Score
		counts[a.Skill]++
	}

	out := make([]SkillScore, 0, len(s.Skills))
	for _, skill := range s.Skills {
		n := counts[skill]
		if n == 0 {
			continue
		}
		avg := float64(totals[skill]) / float64(n)
		out = append(out, SkillScore{
			Skill:      skill,
			Score:      math.Round(avg*10) / 10,
			Percentage: clampPercent(int(math.Round(avg * 10))),
			Answered:   n,
		})
	}
	return out
}

func strengths(overall int, skills []SkillScore) []string {
	var out []string
	if overall >= 80 {
		out = append(out, "Excellent overall performance")
	}
	if overall >= 70 {
		out = append(out, "Strong technical knowledge")
	}
	if names := skillNames(skills, func(s SkillScore) bool { return s.Score >= 8 }); len(names) > 0 {
		out = append(out, fmt.Sprintf("Proficient in %s", strings.Join(names, ", ")))
	}
	if len(out) == 0 {
		out = append(out, "Completed interview")
	}
	return out
}

func weaknesses(overall int, skills []SkillScore) []string {
	var out []string
	if overall < 70 {
		out = append(out, "Could improve overall technical depth")
	}
	if names := skillNames(skills, func(s SkillScore) bool { return s.Score < 6 }); len(names) > 0 {
		out = append(out, fmt.Sprintf("Needs improvement in %s", strings.Join(names, ", ")))
	}
	if len(out) == 0 {
		out = append(out, "No significant gaps identified")
	}
	return out
}

// skillNames returns at most two skill names matching the predicate.
func skillNames(skills []SkillScore, match func(SkillScore) bool) []string {
	var names []string
	for _, s := range skills {
		if match(s) {
			names = append(names, s.Skill)
		}
		if len(names) == 2 {
			break
		}
	}
	return names
}

func transcript(s *Session) []TranscriptEntry {
	entries := make([]TranscriptEntry, 0, len(s.Answers))
	for i, a := range s.Answers {
		entry := TranscriptEntry{
			Skill:    a.Skill,
			Answer:   a.Text,
			Score:    a.Score,
			Feedback: a.Feedback,
		}
		if i < len(s.Questions) {
			entry.Question = s.Questions[i].Text
		}
		entries = append(entries, entry)
	}
	return entries
}
