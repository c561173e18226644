// Package jobdesc drafts job descriptions through an LLM provider.
package jobdesc

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/hr-interviewer/internal/ai"
	"github.com/spigell/hr-interviewer/internal/logger"
)

//go:embed system_prompt.md
var systemPrompt string

// MaxPromptLength bounds the role description accepted from callers.
const MaxPromptLength = 4000

// ErrEmptyPrompt is returned when no role description is given.
var ErrEmptyPrompt = errors.New("prompt is required")

// Writer turns a short role description into a Markdown job description.
type Writer struct {
	generator ai.Generator
	logger    *zap.Logger
}

// NewWriter returns a Writer. A nil generator makes every call fail with ai.ErrDisabled.
func NewWriter(generator ai.Generator, log *zap.Logger) *Writer {
	return &Writer{generator: generator, logger: logger.WithFields(log)}
}

// Enabled reports whether a generator is configured.
func (w *Writer) Enabled() bool {
	return w != nil && w.generator != nil
}

// Generate drafts the job description for prompt.
func (w *Writer) Generate(ctx context.Context, prompt string) (string, error) {
	if !w.Enabled() {
		return "", ai.ErrDisabled
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", ErrEmptyPrompt
	}
	if utf8.RuneCountInString(prompt) > MaxPromptLength {
		return "", fmt.Errorf("prompt exceeds %d characters", MaxPromptLength)
	}

	raw, err := w.generator.GenerateContent(ctx, systemPrompt, prompt)
	if err != nil {
		return "", fmt.Errorf("generate job description: %w", err)
	}

	markdown := extractMarkdown(raw)
	if markdown == "" {
		return "", errors.New("generator returned an empty job description")
	}

	w.logger.Info("job description generated",
		append(logger.CommonFields("", w.generator.Model()), zap.Int("length", utf8.RuneCountInString(markdown)))...,
	)

	return markdown, nil
}

// extractMarkdown strips a surrounding code fence that some models add.
func extractMarkdown(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		if idx := strings.Index(raw, "\n"); idx != -1 {
			raw = raw[idx+1:]
		} else {
			raw = strings.TrimPrefix(raw, "```")
		}
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	return strings.TrimSpace(raw)
}
