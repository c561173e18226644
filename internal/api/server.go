// Package api exposes the interview workflow over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/hr-interviewer/internal/ai"
	"github.com/spigell/hr-interviewer/internal/archive"
	"github.com/spigell/hr-interviewer/internal/interview"
	"github.com/spigell/hr-interviewer/internal/jobdesc"
	"github.com/spigell/hr-interviewer/internal/logger"
	"github.com/spigell/hr-interviewer/internal/ranking"
	"github.com/spigell/hr-interviewer/internal/scoring"
	"github.com/spigell/hr-interviewer/internal/sentiment"
)

const (
	maxJSONBody      = 1 << 20
	maxMultipartBody = 32 << 20

	// APIPrefix mirrors every route for clients that call /api/....
	APIPrefix = "/api"
)

// ResultArchive persists completed interview results and hiring decisions.
type ResultArchive interface {
	Result(sessionID string) (*interview.Result, error)
	Results() ([]*interview.Result, error)
	SaveDecision(rec archive.DecisionRecord) error
}

// Options carries the server dependencies. Only Controller is required.
type Options struct {
	Controller *interview.Controller
	Archive    ResultArchive
	Ranker     *ranking.Ranker
	Writer     *jobdesc.Writer
	Weights    scoring.Weights
	Logger     *zap.Logger
}

// Server handles HTTP requests.
type Server struct {
	controller *interview.Controller
	archive    ResultArchive
	ranker     *ranking.Ranker
	writer     *jobdesc.Writer
	weights    scoring.Weights
	logger     *zap.Logger
	now        func() time.Time
}

// NewServer creates the API server.
func NewServer(opts Options) (*Server, error) {
	if opts.Controller == nil {
		return nil, errors.New("interview controller is required")
	}

	weights := opts.Weights
	if weights == (scoring.Weights{}) {
		weights = scoring.DefaultWeights()
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}

	log := logger.WithFields(opts.Logger)
	ranker := opts.Ranker
	if ranker == nil {
		ranker = ranking.New(log)
	}

	return &Server{
		controller: opts.Controller,
		archive:    opts.Archive,
		ranker:     ranker,
		writer:     opts.Writer,
		weights:    weights,
		logger:     log,
		now:        time.Now,
	}, nil
}

// Router returns the HTTP handler with every route mounted at the root and under APIPrefix.
func (s *Server) Router() http.Handler {
	routes := []struct {
		pattern string
		handler http.HandlerFunc
	}{
		{"POST /interview/start", s.handleStart},
		{"GET /interview/session/{id}", s.handleSession},
		{"POST /interview/answer", s.handleAnswer},
		{"POST /interview/end", s.handleEnd},
		{"GET /interview/results", s.handleResults},
		{"GET /interview/all-results", s.handleResults},
		{"GET /interview/results/export", s.handleExport},
		{"GET /interview/results/{id}", s.handleResult},
		{"POST /analyze", s.handleAnalyze},
		{"POST /rank", s.handleRank},
		{"POST /generate-jd", s.handleGenerateJD},
		{"POST /candidates/score", s.handleScore},
		{"POST /candidates/decision", s.handleDecision},
		{"GET /health", s.handleHealth},
	}

	mux := http.NewServeMux()
	for _, route := range routes {
		method, path, _ := strings.Cut(route.pattern, " ")
		mux.HandleFunc(route.pattern, route.handler)
		mux.HandleFunc(method+" "+APIPrefix+path, route.handler)
	}

	return s.loggingMiddleware(mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"archive": s.archive != nil,
		"ai":      s.writer.Enabled(),
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}

		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Int("bytes", rec.bytes),
			zap.Duration("duration", time.Since(start)),
		}
		if status >= http.StatusInternalServerError {
			s.logger.Error("http request", fields...)
			return
		}
		s.logger.Info("http request", fields...)
	})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.Is(err, interview.ErrInvalidInput),
		errors.Is(err, scoring.ErrInvalidWeights),
		errors.Is(err, scoring.ErrUnknownDecision),
		errors.Is(err, sentiment.ErrEmptyText),
		errors.Is(err, ranking.ErrEmptyJobDescription),
		errors.Is(err, ranking.ErrUnsupportedFormat),
		errors.Is(err, jobdesc.ErrEmptyPrompt):
		return http.StatusBadRequest
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, interview.ErrNotFound), errors.Is(err, archive.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, interview.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, ai.ErrDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) respondErr(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		message = "internal server error"
	}
	s.respondError(w, status, message)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

// decodeJSON reads a single JSON object from the body. Unknown fields are allowed.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return err
		}
		return fmt.Errorf("malformed request body: %v: %w", err, interview.ErrInvalidInput)
	}
	return nil
}
