package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/spigell/hr-interviewer/internal/archive"
	"github.com/spigell/hr-interviewer/internal/interview"
	"github.com/spigell/hr-interviewer/internal/scoring"
)

type scoreRequest struct {
	ResumeScore *float64                  `json:"resumeScore"`
	Interview   *scoring.InterviewOutcome `json:"interview"`
	// SessionID takes the interview score from a completed session.
	SessionID string `json:"sessionId"`
}

type scoreResponse struct {
	OverallScore   int             `json:"overallScore"`
	Recommendation string          `json:"recommendation"`
	Weights        scoring.Weights `json:"weights"`
}

type decisionRequest struct {
	CandidateID string `json:"candidateId"`
	Decision    string `json:"decision"`
	Notes       string `json:"notes"`
}

type decisionResponse struct {
	CandidateID string                  `json:"candidateId"`
	Decision    scoring.Decision        `json:"decision"`
	Status      scoring.CandidateStatus `json:"status"`
	Recorded    bool                    `json:"recorded"`
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondErr(w, r, err)
		return
	}
	if req.ResumeScore == nil {
		s.respondErr(w, r, fmt.Errorf("resumeScore is required: %w", interview.ErrInvalidInput))
		return
	}

	outcome := req.Interview
	if id := strings.TrimSpace(req.SessionID); id != "" {
		session, err := s.controller.Session(r.Context(), id)
		if err != nil {
			s.respondErr(w, r, err)
			return
		}
		if session.FinalScore == nil {
			s.respondErr(w, r, fmt.Errorf("session %s is not completed: %w", id, interview.ErrInvalidState))
			return
		}
		if outcome == nil {
			outcome = &scoring.InterviewOutcome{}
		}
		outcome.FinalScore = session.FinalScore
	}

	overall, err := scoring.Aggregate(*req.ResumeScore, outcome, s.weights)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, scoreResponse{
		OverallScore:   overall,
		Recommendation: scoring.Recommendation(overall),
		Weights:        s.weights,
	})
}

func (s *Server) handleDecision(w http.ResponseWriter, r *http.Request) {
	var req decisionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondErr(w, r, err)
		return
	}

	candidateID := strings.TrimSpace(req.CandidateID)
	if candidateID == "" {
		s.respondErr(w, r, fmt.Errorf("candidateId is required: %w", interview.ErrInvalidInput))
		return
	}

	decision, err := scoring.ParseDecision(req.Decision)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	status, err := scoring.Decide(decision)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	resp := decisionResponse{CandidateID: candidateID, Decision: decision, Status: status}
	if s.archive != nil {
		err := s.archive.SaveDecision(archive.DecisionRecord{
			CandidateID: candidateID,
			Decision:    decision,
			Status:      status,
			Notes:       strings.TrimSpace(req.Notes),
			DecidedAt:   s.now(),
		})
		if err != nil {
			s.respondErr(w, r, fmt.Errorf("recording decision: %w", err))
			return
		}
		resp.Recorded = true
	}

	s.respondJSON(w, http.StatusOK, resp)
}
