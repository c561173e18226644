package interview

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/hr-interviewer/internal/logger"
	"github.com/spigell/hr-interviewer/internal/utils"
)

const (
	DefaultQuestions = 5
	MaxQuestions     = 10

	defaultCandidateName = "Candidate"
	maxAnswerPreview     = 80
)

// Config tunes the controller.
type Config struct {
	DefaultQuestions int
	MaxQuestions     int
}

// StartRequest carries the parameters of a new interview.
type StartRequest struct {
	CandidateID   string
	CandidateName string
	Skills        []string
	NumQuestions  int
}

// AnswerOutcome is returned after an answer has been recorded.
type AnswerOutcome struct {
	Evaluation Evaluation
	Completed  bool
	FinalScore *int
	Next       *Question
	Progress   Progress
}

// CompletionHook is invoked once for every session that transitions to completed.
type CompletionHook func(ctx context.Context, result *Result)

// Controller drives the session state machine: start, answer, end.
type Controller struct {
	store     *Store
	sequencer *Sequencer
	evaluator *Evaluator
	config    Config
	logger    *zap.Logger
	hooks     []CompletionHook
	now       func() time.Time
}

// NewController wires the controller. Zero config values take package defaults.
func NewController(store *Store, sequencer *Sequencer, evaluator *Evaluator, cfg Config, log *zap.Logger) *Controller {
	if store == nil {
		store = NewStore()
	}
	if sequencer == nil {
		sequencer = NewSequencer(nil)
	}
	if evaluator == nil {
		evaluator = NewEvaluator(sequencer.Bank())
	}
	if cfg.MaxQuestions <= 0 {
		cfg.MaxQuestions = MaxQuestions
	}
	if cfg.DefaultQuestions <= 0 {
		cfg.DefaultQuestions = DefaultQuestions
	}
	if cfg.DefaultQuestions > cfg.MaxQuestions {
		cfg.DefaultQuestions = cfg.MaxQuestions
	}

	return &Controller{
		store:     store,
		sequencer: sequencer,
		evaluator: evaluator,
		config:    cfg,
		logger:    logger.WithFields(log),
		now:       time.Now,
	}
}

// OnComplete registers a hook called after a session completes.
func (c *Controller) OnComplete(hook CompletionHook) {
	if hook != nil {
		c.hooks = append(c.hooks, hook)
	}
}

// Start validates the request, generates questions and creates an active session.
// A zero NumQuestions takes the configured default; values outside
// [1, MaxQuestions] are rejected.
func (c *Controller) Start(_ context.Context, req StartRequest) (*Session, error) {
	candidateID := strings.TrimSpace(req.CandidateID)
	if candidateID == "" {
		return nil, fmt.Errorf("candidate id is required: %w", ErrInvalidInput)
	}

	skills := make([]string, 0, len(req.Skills))
	for _, skill := range req.Skills {
		if skill = strings.TrimSpace(skill); skill != "" {
			skills = append(skills, skill)
		}
	}
	if len(skills) == 0 {
		return nil, fmt.Errorf("at least one skill is required: %w", ErrInvalidInput)
	}

	n := req.NumQuestions
	if n == 0 {
		n = c.config.DefaultQuestions
	}
	if n < 1 || n > c.config.MaxQuestions {
		return nil, fmt.Errorf("number of questions must be between 1 and %d, got %d: %w", c.config.MaxQuestions, req.NumQuestions, ErrInvalidInput)
	}

	name := strings.TrimSpace(req.CandidateName)
	if name == "" {
		name = defaultCandidateName
	}

	questions, err := c.sequencer.Sequence(skills, n)
	if err != nil {
		return nil, err
	}

	session, err := c.store.Create(candidateID, name, skills, questions)
	if err != nil {
		return nil, err
	}

	c.logger.Info("interview started",
		append(logger.SessionFields(session.ID, session.CandidateID),
			zap.Strings("skills", session.Skills),
			zap.Int("questions", len(session.Questions)),
		)...,
	)

	return session, nil
}

// SubmitAnswer evaluates the answer against the current question and advances the session.
func (c *Controller) SubmitAnswer(ctx context.Context, sessionID, text string) (*AnswerOutcome, error) {
	var outcome AnswerOutcome

	session, err := c.store.Update(sessionID, func(s *Session) error {
		if s.Status == StatusCompleted {
			return fmt.Errorf("session %s is completed: %w", s.ID, ErrInvalidState)
		}
		if s.CurrentQuestionIndex >= len(s.Questions) {
			return fmt.Errorf("session %s has no pending question: %w", s.ID, ErrInvalidState)
		}

		question := s.Questions[s.CurrentQuestionIndex]
		evaluation := c.evaluator.Evaluate(question.Skill, text)
		now := c.now()

		s.Answers = append(s.Answers, Answer{
			QuestionNumber: question.Number,
			Skill:          question.Skill,
			Text:           strings.TrimSpace(text),
			Score:          evaluation.Score,
			Feedback:       evaluation.Feedback,
			AnsweredAt:     now,
		})
		s.CurrentQuestionIndex++

		outcome.Evaluation = evaluation
		if s.CurrentQuestionIndex == len(s.Questions) {
			score := s.complete(now)
			outcome.Completed = true
			outcome.FinalScore = &score
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	outcome.Next = session.CurrentQuestion()
	outcome.Progress = session.Progress()

	fields := append(logger.SessionFields(session.ID, session.CandidateID),
		zap.Int("question", len(session.Answers)),
		zap.Int("score", outcome.Evaluation.Score),
		zap.String("answer_preview", utils.TruncateForLog(text, maxAnswerPreview)),
	)
	c.logger.Debug("answer recorded", fields...)

	if outcome.Completed {
		c.logger.Info("interview completed", append(logger.SessionFields(session.ID, session.CandidateID), zap.Int("final_score", *outcome.FinalScore))...)
		c.notify(ctx, session)
	}

	return &outcome, nil
}

// End force-completes the session. Ending a completed session returns the stored score.
func (c *Controller) End(ctx context.Context, sessionID string) (*Session, error) {
	justCompleted := false

	session, err := c.store.Update(sessionID, func(s *Session) error {
		if s.Status == StatusCompleted {
			return nil
		}
		s.complete(c.now())
		justCompleted = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if justCompleted {
		c.logger.Info("interview ended early",
			append(logger.SessionFields(session.ID, session.CandidateID),
				zap.Int("answered", len(session.Answers)),
				zap.Int("final_score", *session.FinalScore),
			)...,
		)
		c.notify(ctx, session)
	}

	return session, nil
}

// Session returns a read-only snapshot.
func (c *Controller) Session(_ context.Context, sessionID string) (*Session, error) {
	return c.store.Get(sessionID)
}

// Result builds the detailed result report of a session.
func (c *Controller) Result(_ context.Context, sessionID string) (*Result, error) {
	session, err := c.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return BuildResult(session, c.now()), nil
}

// CompletedResults returns result reports of all completed sessions held in memory.
func (c *Controller) CompletedResults(_ context.Context) []*Result {
	sessions := c.store.List(StatusCompleted)
	results := make([]*Result, 0, len(sessions))
	for _, s := range sessions {
		results = append(results, BuildResult(s, c.now()))
	}
	return results
}

func (c *Controller) notify(ctx context.Context, session *Session) {
	if len(c.hooks) == 0 {
		return
	}
	result := BuildResult(session, c.now())
	for _, hook := range c.hooks {
		hook(ctx, result)
	}
}
