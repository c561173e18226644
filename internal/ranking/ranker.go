// Package ranking scores resumes against a job description.
package ranking

import (
	"errors"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/hr-interviewer/internal/logger"
)

// ErrEmptyJobDescription is returned when no job description is given.
var ErrEmptyJobDescription = errors.New("job description is required")

// Document is a resume to rank.
type Document struct {
	Name string
	Text string
}

// Ranking is the score of one resume.
type Ranking struct {
	Resume   string   `json:"resume"`
	Score    float64  `json:"score"`
	Analysis Analysis `json:"analysis"`
	Error    string   `json:"error,omitempty"`
}

// Ranker ranks resumes against a job description.
type Ranker struct {
	logger *zap.Logger
}

// New returns a Ranker.
func New(log *zap.Logger) *Ranker {
	return &Ranker{logger: logger.WithFields(log)}
}

// Rank scores every document and returns the rankings sorted by score, highest
// first. Ties keep the input order.
func (r *Ranker) Rank(jd string, docs []Document) ([]Ranking, error) {
	if strings.TrimSpace(jd) == "" {
		return nil, ErrEmptyJobDescription
	}

	out := make([]Ranking, 0, len(docs))
	for _, doc := range docs {
		score := Similarity(doc.Text, jd)
		out = append(out, Ranking{
			Resume:   doc.Name,
			Score:    score,
			Analysis: Analyze(doc.Text, jd, score),
		})
		r.logger.Debug("resume scored", zap.String("resume", doc.Name), zap.Float64("score", score))
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}

// Failed builds the ranking entry reported for a resume that could not be read.
func Failed(name string, err error) Ranking {
	return Ranking{
		Resume: name,
		Error:  err.Error(),
		Analysis: Analysis{
			MatchedSkills:   []string{},
			MissingSkills:   []string{},
			ExperienceYears: notSpecified,
			Education:       notSpecified,
			Strengths:       []string{"Error processing resume"},
			Weaknesses:      []string{"Could not analyze resume"},
			Recommendation:  "Error - Review Manually",
		},
	}
}
