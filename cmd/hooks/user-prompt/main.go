// Package main provides the user-prompt hook entry point.
package main

import (
	"context"

	"github.com/thebtf/agent-hooks/pkg/hooks"
)

// Input is the hook input from Claude Code.
type Input struct {
	hooks.BaseInput
	Prompt string `json:"prompt"`
}

func main() {
	hooks.RunHook(hooks.UserPromptSubmit, handleUserPrompt)
}

func handleUserPrompt(_ context.Context, hc *hooks.HookContext, input *Input) error {
	hc.Log.Debug().Int("prompt_len", len(input.Prompt)).Msg("Logged prompt")
	return nil
}
