package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/hr-interviewer/internal/export"
	"github.com/spigell/hr-interviewer/internal/interview"
)

type startRequest struct {
	CandidateID   string   `json:"candidateId"`
	CandidateName string   `json:"candidateName"`
	Skills        []string `json:"skills"`
	NumQuestions  *int     `json:"numQuestions"`
}

// numQuestions returns zero when the field is absent so the configured default applies.
// An explicit value below one is rejected.
func (r startRequest) numQuestions() (int, error) {
	if r.NumQuestions == nil {
		return 0, nil
	}
	if n := *r.NumQuestions; n < 1 {
		return 0, fmt.Errorf("numQuestions must be at least 1, got %d: %w", n, interview.ErrInvalidInput)
	}
	return *r.NumQuestions, nil
}

type startResponse struct {
	SessionID     string              `json:"sessionId"`
	CandidateName string              `json:"candidateName"`
	Question      *interview.Question `json:"question"`
	Progress      interview.Progress  `json:"progress"`
}

type sessionResponse struct {
	*interview.Session
	CurrentScore    int                 `json:"currentScore"`
	CurrentQuestion *interview.Question `json:"currentQuestion,omitempty"`
	Progress        interview.Progress  `json:"progress"`
}

type answerRequest struct {
	SessionID string `json:"sessionId"`
	Answer    string `json:"answer"`
}

type answerResponse struct {
	Completed  bool                 `json:"completed"`
	FinalScore *int                 `json:"finalScore,omitempty"`
	Evaluation interview.Evaluation `json:"evaluation"`
	Question   *interview.Question  `json:"question,omitempty"`
	Progress   interview.Progress   `json:"progress"`
}

type endRequest struct {
	SessionID string `json:"sessionId"`
}

type endResponse struct {
	SessionID         string `json:"sessionId"`
	FinalScore        int    `json:"finalScore"`
	QuestionsAnswered int    `json:"questionsAnswered"`
}

type resultsResponse struct {
	Results []*interview.Result `json:"results"`
	Count   int                 `json:"count"`
}

func requireSessionID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("sessionId is required: %w", interview.ErrInvalidInput)
	}
	return id, nil
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondErr(w, r, err)
		return
	}
	n, err := req.numQuestions()
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	session, err := s.controller.Start(r.Context(), interview.StartRequest{
		CandidateID:   req.CandidateID,
		CandidateName: req.CandidateName,
		Skills:        req.Skills,
		NumQuestions:  n,
	})
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, startResponse{
		SessionID:     session.ID,
		CandidateName: session.CandidateName,
		Question:      session.CurrentQuestion(),
		Progress:      session.Progress(),
	})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.controller.Session(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, sessionResponse{
		Session:         session,
		CurrentScore:    session.Score(),
		CurrentQuestion: session.CurrentQuestion(),
		Progress:        session.Progress(),
	})
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondErr(w, r, err)
		return
	}
	id, err := requireSessionID(req.SessionID)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	outcome, err := s.controller.SubmitAnswer(r.Context(), id, req.Answer)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, answerResponse{
		Completed:  outcome.Completed,
		FinalScore: outcome.FinalScore,
		Evaluation: outcome.Evaluation,
		Question:   outcome.Next,
		Progress:   outcome.Progress,
	})
}

func (s *Server) handleEnd(w http.ResponseWriter, r *http.Request) {
	var req endRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondErr(w, r, err)
		return
	}
	id, err := requireSessionID(req.SessionID)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	session, err := s.controller.End(r.Context(), id)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	finalScore := 0
	if session.FinalScore != nil {
		finalScore = *session.FinalScore
	}
	s.respondJSON(w, http.StatusOK, endResponse{
		SessionID:         session.ID,
		FinalScore:        finalScore,
		QuestionsAnswered: len(session.Answers),
	})
}

// handleResult serves the report of a live session, falling back to the archive
// for sessions from earlier runs.
func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	result, err := s.controller.Result(r.Context(), id)
	if errors.Is(err, interview.ErrNotFound) && s.archive != nil {
		result, err = s.archive.Result(id)
	}
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	results, err := s.completedResults(r)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, resultsResponse{Results: results, Count: len(results)})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	results, err := s.completedResults(r)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	filename := fmt.Sprintf("interview-results-%s.xlsx", s.now().UTC().Format("20060102-150405"))
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := export.WriteResults(w, results); err != nil {
		s.logger.Error("export failed", zap.Error(err))
	}
}

func (s *Server) completedResults(r *http.Request) ([]*interview.Result, error) {
	if s.archive != nil {
		results, err := s.archive.Results()
		if err != nil {
			return nil, fmt.Errorf("reading archived results: %w", err)
		}
		if results == nil {
			results = []*interview.Result{}
		}
		return results, nil
	}
	return s.controller.CompletedResults(r.Context()), nil
}
