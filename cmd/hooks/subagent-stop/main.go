// Package main provides the subagent-stop hook entry point.
// This hook fires when a Task/subagent completes.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thebtf/agent-hooks/pkg/hooks"
)

// Input is the hook input from Claude Code.
type Input struct {
	hooks.BaseInput
	StopHookActive bool `json:"stop_hook_active"`
}

func main() {
	if err := newCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "[subagent-stop] %v\n", err)
	}
	os.Exit(hooks.ExitSuccess)
}

func newCommand() *cobra.Command {
	var chat bool
	cmd := &cobra.Command{
		Use:                "subagent-stop",
		Short:              "Claude Code SubagentStop hook: log the event and optionally save the chat",
		Args:               cobra.ArbitraryArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		RunE: func(cmd *cobra.Command, _ []string) error {
			hooks.Run(cmd.Context(), hooks.Runner{Stdin: cmd.InOrStdin(), Stderr: cmd.ErrOrStderr()}, hooks.SubagentStop,
				func(_ context.Context, hc *hooks.HookContext, input *Input) error {
					if !chat || input.TranscriptPath == "" {
						return nil
					}
					return hc.SaveChat(input.TranscriptPath)
				})
			return nil
		},
	}
	cmd.Flags().BoolVar(&chat, "chat", false, "Convert the session transcript to logs/chat.json")
	return cmd
}
