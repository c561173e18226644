package api

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/hr-interviewer/internal/interview"
	"github.com/spigell/hr-interviewer/internal/ranking"
	"github.com/spigell/hr-interviewer/internal/sentiment"
)

type analyzeRequest struct {
	Text string `json:"text"`
}

type rankResponse struct {
	Rankings []ranking.Ranking `json:"rankings"`
	Count    int               `json:"count"`
}

type generateJDRequest struct {
	Prompt string `json:"prompt"`
}

type generateJDResponse struct {
	Markdown string `json:"markdown"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondErr(w, r, err)
		return
	}

	result, err := sentiment.Analyze(req.Text)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, result)
}

// handleRank ranks the uploaded resumes ("files") against the "jd" form field.
// Unreadable files are reported with an error entry instead of failing the request.
func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxMultipartBody)
	if err := r.ParseMultipartForm(maxMultipartBody); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			s.respondErr(w, r, err)
			return
		}
		s.respondErr(w, r, fmt.Errorf("failed to parse form: %v: %w", err, interview.ErrInvalidInput))
		return
	}

	jd := strings.TrimSpace(r.FormValue("jd"))
	if jd == "" {
		s.respondError(w, http.StatusBadRequest, "missing 'jd' in form-data")
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		s.respondError(w, http.StatusBadRequest, "upload at least one file under 'files'")
		return
	}

	var docs []ranking.Document
	var failed []ranking.Ranking
	for _, fh := range files {
		doc, err := readUpload(fh)
		if errors.Is(err, ranking.ErrUnsupportedFormat) {
			s.logger.Debug("skipping unsupported resume", zap.String("file", fh.Filename))
			continue
		}
		if err != nil {
			s.logger.Warn("failed to read resume", zap.String("file", fh.Filename), zap.Error(err))
			failed = append(failed, ranking.Failed(fh.Filename, err))
			continue
		}
		docs = append(docs, doc)
	}

	rankings, err := s.ranker.Rank(jd, docs)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	rankings = append(rankings, failed...)

	s.respondJSON(w, http.StatusOK, rankResponse{Rankings: rankings, Count: len(rankings)})
}

func readUpload(fh *multipart.FileHeader) (ranking.Document, error) {
	f, err := fh.Open()
	if err != nil {
		return ranking.Document{}, fmt.Errorf("opening %s: %w", fh.Filename, err)
	}
	defer f.Close()

	return ranking.ReadDocument(fh.Filename, f)
}

func (s *Server) handleGenerateJD(w http.ResponseWriter, r *http.Request) {
	var req generateJDRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondErr(w, r, err)
		return
	}

	markdown, err := s.writer.Generate(r.Context(), req.Prompt)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, generateJDResponse{Markdown: markdown})
}
