// Package main provides the session-start hook entry point.
package main

import (
	"context"

	"github.com/thebtf/agent-hooks/pkg/hooks"
)

// Input is the hook input from Claude Code.
type Input struct {
	hooks.BaseInput
	Source string `json:"source"` // "startup", "resume", "clear", "compact"
}

func main() {
	hooks.RunHook(hooks.SessionStart, handleSessionStart)
}

func handleSessionStart(_ context.Context, hc *hooks.HookContext, input *Input) error {
	hc.Log.Debug().Str("source", input.Source).Str("session", hc.SessionID).Msg("Session started")
	return nil
}
