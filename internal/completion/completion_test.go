package completion

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thebtf/agent-hooks/internal/config"
)

type fakeGenerator struct {
	text   string
	err    error
	delay  time.Duration
	prompt string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.text, f.err
}

func TestSelect_Priority(t *testing.T) {
	tests := []struct {
		name      string
		google    string
		gemini    string
		openai    string
		anthropic string
		expected  string
	}{
		{name: "all present picks gemini", gemini: "g", openai: "o", anthropic: "a", expected: ProviderGemini},
		{name: "google key selects gemini", google: "gg", openai: "o", anthropic: "a", expected: ProviderGemini},
		{name: "openai over anthropic", openai: "o", anthropic: "a", expected: ProviderOpenAI},
		{name: "anthropic alone", anthropic: "a", expected: ProviderAnthropic},
		{name: "gemini alone", gemini: "g", expected: ProviderGemini},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.GoogleKey = tt.google
			cfg.GeminiKey = tt.gemini
			cfg.OpenAIKey = tt.openai
			cfg.AnthropicKey = tt.anthropic

			name, gen, err := Select(cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, name)
			assert.NotNil(t, gen)
		})
	}
}

func TestSelect_NoCredential(t *testing.T) {
	_, gen, err := Select(config.Default())
	assert.ErrorIs(t, err, ErrNoProvider)
	assert.Nil(t, gen)
}

func TestMessage_NoProviderIsCanned(t *testing.T) {
	m := New(config.Default(), zerolog.Nop())

	assert.Empty(t, m.Provider())
	for i := 0; i < 20; i++ {
		assert.Contains(t, CannedMessages, m.Message(context.Background()))
	}
}

func TestMessage_UsesGenerator(t *testing.T) {
	gen := &fakeGenerator{text: "  \"Shipped it, Sam!\"\nextra commentary"}
	m := NewWithGenerator("fake", gen, time.Second, "Sam", zerolog.Nop())

	assert.Equal(t, "Shipped it, Sam!", m.Message(context.Background()))
	assert.Contains(t, gen.prompt, "Sam")
	assert.Equal(t, "fake", m.Provider())
}

func TestMessage_FallsBack(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
	}{
		{name: "error", gen: &fakeGenerator{err: errors.New("boom")}},
		{name: "empty text", gen: &fakeGenerator{text: "  \"\" "}},
		{name: "timeout", gen: &fakeGenerator{text: "too late", delay: time.Second}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewWithGenerator("fake", tt.gen, 50*time.Millisecond, "", zerolog.Nop())
			m.pick = func(int) int { return 1 }

			start := time.Now()
			assert.Equal(t, CannedMessages[1], m.Message(context.Background()))
			assert.Less(t, time.Since(start), 900*time.Millisecond)
		})
	}
}

func TestPrompt(t *testing.T) {
	assert.NotContains(t, Prompt(""), "engineer by name")
	assert.Contains(t, Prompt("Ada"), "(Ada)")
}

func TestClean(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"All done!", "All done!"},
		{"  \"All done!\"  ", "All done!"},
		{"'Ready!'", "Ready!"},
		{"First line\nSecond line", "First line"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, Clean(tt.in))
		})
	}
}
