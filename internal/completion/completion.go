// Package completion produces the short message announced when the agent
// finishes. It asks the highest-priority LLM provider with a credential and
// falls back to a canned message.
package completion

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/thebtf/agent-hooks/internal/config"
)

// ErrNoProvider is returned by Select when no credential is configured.
var ErrNoProvider = errors.New("no LLM credential configured")

// ErrEmptyMessage is returned when a provider answers with no text.
var ErrEmptyMessage = errors.New("empty completion message")

// CannedMessages are used when no provider is available or the call fails.
var CannedMessages = []string{
	"Work complete!",
	"All done!",
	"Task finished!",
	"Job complete!",
	"Ready for next task!",
}

// Provider names, highest priority first.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// maxOutputTokens keeps responses to a single short sentence.
const maxOutputTokens = 100

// Generator returns a completion message for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Select picks the generator for the first credential present, in the order
// GOOGLE_API_KEY or GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY.
func Select(cfg *config.Config) (string, Generator, error) {
	switch {
	case cfg.GeminiAPIKey() != "":
		return ProviderGemini, NewGemini(cfg.GeminiAPIKey(), cfg.GeminiModel, ""), nil
	case cfg.OpenAIKey != "":
		return ProviderOpenAI, NewOpenAI(cfg.OpenAIKey, cfg.OpenAIModel, ""), nil
	case cfg.AnthropicKey != "":
		return ProviderAnthropic, NewAnthropic(cfg.AnthropicKey, cfg.AnthropicModel, ""), nil
	}
	return "", nil, ErrNoProvider
}

// Messenger builds completion messages.
type Messenger struct {
	provider string
	gen      Generator
	timeout  time.Duration
	engineer string
	log      zerolog.Logger
	pick     func(n int) int
}

// New creates a Messenger from the configuration. A missing credential is
// not an error; the Messenger then only returns canned messages.
func New(cfg *config.Config, log zerolog.Logger) *Messenger {
	provider, gen, err := Select(cfg)
	if err != nil {
		log.Debug().Err(err).Msg("Using canned completion messages")
	}
	return NewWithGenerator(provider, gen, cfg.CompletionTimeout, cfg.EngineerName, log)
}

// NewWithGenerator creates a Messenger around an explicit generator. gen may be nil.
func NewWithGenerator(provider string, gen Generator, timeout time.Duration, engineer string, log zerolog.Logger) *Messenger {
	if timeout <= 0 {
		timeout = config.DefaultCompletionTimeout
	}
	return &Messenger{
		provider: provider,
		gen:      gen,
		timeout:  timeout,
		engineer: engineer,
		log:      log,
		pick:     rand.IntN,
	}
}

// Provider returns the selected provider name, or "" when none is configured.
func (m *Messenger) Provider() string {
	return m.provider
}

// Message returns a completion message. It never fails: any provider error,
// timeout or empty answer yields a canned message.
func (m *Messenger) Message(ctx context.Context) string {
	if m.gen == nil {
		return m.canned()
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	start := time.Now()
	text, err := m.gen.Generate(ctx, Prompt(m.engineer))
	if err == nil {
		text = Clean(text)
		if text == "" {
			err = ErrEmptyMessage
		}
	}
	if err != nil {
		m.log.Warn().Err(err).
			Str("provider", m.provider).
			Dur("elapsed", time.Since(start)).
			Msg("Completion message failed, using canned message")
		return m.canned()
	}

	m.log.Debug().Str("provider", m.provider).Dur("elapsed", time.Since(start)).Msg("Generated completion message")
	return text
}

func (m *Messenger) canned() string {
	return CannedMessages[m.pick(len(CannedMessages))]
}

// Prompt returns the instruction sent to the provider.
func Prompt(engineer string) string {
	var b strings.Builder
	b.WriteString("Generate a short, friendly message announcing that an AI coding assistant has finished its task.\n\n")
	b.WriteString("Requirements:\n")
	b.WriteString("- Under 10 words\n")
	b.WriteString("- Positive and forward-looking\n")
	b.WriteString("- Plain conversational language, no quotes, formatting or explanations\n")
	b.WriteString("- Return only the message text\n")
	if engineer != "" {
		fmt.Fprintf(&b, "- About a third of the time, address the engineer by name (%s) naturally\n", engineer)
	}
	b.WriteString("\nExamples: \"Work complete!\", \"All done!\", \"Ready for next task!\"\n")
	return b.String()
}

// Clean trims whitespace and wrapping quotes and keeps only the first line.
func Clean(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = strings.TrimSpace(text[:i])
	}
	return strings.TrimSpace(strings.Trim(text, "\"'`"))
}
