// Package scoring combines resume and interview signals into a single candidate score.
package scoring

import (
	"errors"
	"fmt"
	"math"
)

const (
	DefaultResumeWeight    = 0.6
	DefaultInterviewWeight = 0.4

	weightTolerance = 1e-9
)

// ErrInvalidWeights is returned when the weights are negative or do not sum to one.
var ErrInvalidWeights = errors.New("weights must be non-negative and sum to 1")

// Weights controls how much each signal contributes to the overall score.
type Weights struct {
	Resume    float64 `json:"resume" mapstructure:"resume-weight"`
	Interview float64 `json:"interview" mapstructure:"interview-weight"`
}

// DefaultWeights returns the 60/40 resume/interview split.
func DefaultWeights() Weights {
	return Weights{Resume: DefaultResumeWeight, Interview: DefaultInterviewWeight}
}

// Validate reports ErrInvalidWeights for unusable weights.
func (w Weights) Validate() error {
	if w.Resume < 0 || w.Interview < 0 || math.Abs(w.Resume+w.Interview-1) > weightTolerance {
		return fmt.Errorf("resume=%v interview=%v: %w", w.Resume, w.Interview, ErrInvalidWeights)
	}
	return nil
}

// SentimentBreakdown holds the percentage of positive, neutral and negative content.
type SentimentBreakdown struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

// Score converts the breakdown to [0,100] with a positive bias.
func (b SentimentBreakdown) Score() float64 {
	return clamp(b.Positive*1.0 + b.Neutral*0.5 + b.Negative*0)
}

// InterviewOutcome is whatever is known about the interview. FinalScore wins over Sentiment.
type InterviewOutcome struct {
	FinalScore *int                `json:"finalScore,omitempty"`
	Sentiment  *SentimentBreakdown `json:"sentiment,omitempty"`
}

// Score returns the interview score and whether any interview data was present.
func (o *InterviewOutcome) Score() (float64, bool) {
	switch {
	case o == nil:
		return 0, false
	case o.FinalScore != nil:
		return clamp(float64(*o.FinalScore)), true
	case o.Sentiment != nil:
		return o.Sentiment.Score(), true
	default:
		return 0, false
	}
}

// Aggregate returns the weighted overall score in [0,100]. Without interview
// data the rounded resume score is returned unchanged.
func Aggregate(resumeScore float64, interview *InterviewOutcome, w Weights) (int, error) {
	if err := w.Validate(); err != nil {
		return 0, err
	}

	resume := clamp(resumeScore)
	interviewScore, ok := interview.Score()
	if !ok {
		return int(math.Round(resume)), nil
	}

	return int(math.Round(resume*w.Resume + interviewScore*w.Interview)), nil
}

// Recommendation maps an overall score to a hiring recommendation.
func Recommendation(score int) string {
	switch {
	case score >= 80:
		return "Strong Match - Highly Recommended"
	case score >= 65:
		return "Good Fit - Recommended"
	case score >= 50:
		return "Moderate Match - Consider for Review"
	default:
		return "Weak Match - Not Recommended"
	}
}

func clamp(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
