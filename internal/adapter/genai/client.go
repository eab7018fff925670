// Package genai wraps the generative-content APIs behind a single
// completion interface. Two backends exist: OpenAI chat completions and
// Anthropic messages; config selects one at startup.
package genai

import (
	"context"
	"fmt"
	"strings"

	"github.com/wordnest/wordnest-backend/internal/config"
)

// Client produces one text completion for one prompt. Implementations
// must return the raw model output without any parsing; callers own
// interpretation and retries on malformed content.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// New builds the client selected by cfg.Provider.
func New(cfg config.AIConfig) (Client, error) {
	switch cfg.Provider {
	case "openai":
		return newOpenAIClient(cfg), nil
	case "anthropic":
		return newAnthropicClient(cfg), nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.Provider)
	}
}

// ExtractJSON finds the first complete JSON object in a string. Models
// routinely wrap output in markdown fences or prose; everything outside
// the outermost braces is discarded.
func ExtractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return s[start : end+1], nil
}
