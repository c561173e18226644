package scoring

import (
	"errors"
	"fmt"
	"strings"
)

// Decision is the final hiring decision taken on a candidate.
type Decision string

const (
	DecisionHire   Decision = "hire"
	DecisionReject Decision = "reject"
	DecisionOnHold Decision = "on-hold"
)

// CandidateStatus is the candidate pipeline status that follows a decision.
type CandidateStatus string

const (
	StatusHired    CandidateStatus = "hired"
	StatusRejected CandidateStatus = "rejected"
	StatusOnHold   CandidateStatus = "on-hold"
)

// ErrUnknownDecision is returned for decisions other than hire, reject and on-hold.
var ErrUnknownDecision = errors.New("unknown decision")

// ParseDecision accepts a decision in any case, with "onhold" and "on_hold" as aliases.
func ParseDecision(raw string) (Decision, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.ReplaceAll(normalized, "_", "-")
	if normalized == "onhold" {
		normalized = string(DecisionOnHold)
	}

	switch d := Decision(normalized); d {
	case DecisionHire, DecisionReject, DecisionOnHold:
		return d, nil
	default:
		return "", fmt.Errorf("%q: %w", raw, ErrUnknownDecision)
	}
}

// Decide maps a decision to the resulting candidate status.
func Decide(d Decision) (CandidateStatus, error) {
	switch d {
	case DecisionHire:
		return StatusHired, nil
	case DecisionReject:
		return StatusRejected, nil
	case DecisionOnHold:
		return StatusOnHold, nil
	default:
		return "", fmt.Errorf("%q: %w", string(d), ErrUnknownDecision)
	}
}
