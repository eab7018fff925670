package config

import (
	"fmt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	switch c.AI.Provider {
	case "openai", "anthropic":
	default:
		return fmt.Errorf("ai.provider must be openai or anthropic (got %q)", c.AI.Provider)
	}
	if c.AI.ParseRetries < 1 {
		return fmt.Errorf("ai.parse_retries must be >= 1 (got %d)", c.AI.ParseRetries)
	}

	if c.Quota.FreeGenerationsPerDay < 0 {
		return fmt.Errorf("quota.free_generations_per_day must be >= 0 (got %d)", c.Quota.FreeGenerationsPerDay)
	}

	if c.Quiz.DefaultQuestionCount < 1 || c.Quiz.DefaultQuestionCount > c.Quiz.MaxQuestionCount {
		return fmt.Errorf("quiz.default_question_count must be in [1, %d] (got %d)",
			c.Quiz.MaxQuestionCount, c.Quiz.DefaultQuestionCount)
	}

	return nil
}
