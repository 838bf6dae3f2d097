// Package main provides the post-tool-use hook entry point.
package main

import (
	"context"

	"github.com/thebtf/agent-hooks/pkg/hooks"
)

// Input is the hook input from Claude Code.
type Input struct {
	hooks.BaseInput
	ToolName     string      `json:"tool_name"`
	ToolInput    interface{} `json:"tool_input"`
	ToolResponse interface{} `json:"tool_response"`
	ToolUseID    string      `json:"tool_use_id"`
}

func main() {
	hooks.RunHook(hooks.PostToolUse, handlePostToolUse)
}

func handlePostToolUse(_ context.Context, hc *hooks.HookContext, input *Input) error {
	hc.Log.Debug().
		Str("tool", input.ToolName).
		Str("tool_use_id", input.ToolUseID).
		Msg("Logged tool use")
	return nil
}
