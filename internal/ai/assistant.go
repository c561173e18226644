// Package ai defines the text generation contract shared by the LLM providers.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// ErrDisabled is returned when text generation is requested but no provider is configured.
var ErrDisabled = errors.New("ai generation is disabled")

// Generator produces text from a system instruction and a user message.
type Generator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
	Model() string
}

// ParseProvider normalizes a provider name.
func ParseProvider(name string) (string, error) {
	switch p := strings.ToLower(strings.TrimSpace(name)); p {
	case "", ProviderGemini:
		return ProviderGemini, nil
	case ProviderOpenAI:
		return ProviderOpenAI, nil
	default:
		return "", fmt.Errorf("unknown ai provider %q", name)
	}
}
