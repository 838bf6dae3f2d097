// Package main provides the notification hook entry point.
package main

import (
	"context"

	"github.com/thebtf/agent-hooks/pkg/hooks"
)

// Input is the hook input from Claude Code.
type Input struct {
	hooks.BaseInput
	Message string `json:"message"`
	Title   string `json:"title"`
}

func main() {
	hooks.RunHook(hooks.Notification, handleNotification)
}

func handleNotification(_ context.Context, hc *hooks.HookContext, input *Input) error {
	hc.Log.Debug().Str("message", input.Message).Msg("Logged notification")
	return nil
}
