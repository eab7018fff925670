package genai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordnest/wordnest-backend/internal/config"
)

func TestNew(t *testing.T) {
	t.Run("openai", func(t *testing.T) {
		client, err := New(config.AIConfig{Provider: "openai", APIKey: "sk-test", Model: "gpt-4o-mini"})
		require.NoError(t, err)
		assert.IsType(t, &openAIClient{}, client)
	})

	t.Run("anthropic", func(t *testing.T) {
		client, err := New(config.AIConfig{Provider: "anthropic", APIKey: "sk-test", Model: "claude-sonnet-4-20250514"})
		require.NoError(t, err)
		assert.IsType(t, &anthropicClient{}, client)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := New(config.AIConfig{Provider: "bard"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown ai provider")
	})
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "bare object",
			input: `{"questions":[]}`,
			want:  `{"questions":[]}`,
		},
		{
			name:  "markdown fenced",
			input: "Here you go:\n```json\n{\"questions\":[{\"q\":1}]}\n```\nEnjoy!",
			want:  `{"questions":[{"q":1}]}`,
		},
		{
			name:  "prose around object",
			input: `Sure! {"a": {"b": 2}} hope that helps`,
			want:  `{"a": {"b": 2}}`,
		},
		{
			name:    "no object",
			input:   "I cannot answer that.",
			wantErr: true,
		},
		{
			name:    "closing brace before opening",
			input:   "} nothing here {",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
