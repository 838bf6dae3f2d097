// Package main provides the stop hook entry point.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thebtf/agent-hooks/internal/completion"
	"github.com/thebtf/agent-hooks/pkg/hooks"
)

// Input is the hook input from Claude Code.
type Input struct {
	hooks.BaseInput
	StopHookActive bool `json:"stop_hook_active"`
}

type options struct {
	chat   bool
	notify bool
	// out receives the completion message regardless of HOOK_LOG_LEVEL.
	out io.Writer
}

func main() {
	if err := newCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "[stop] %v\n", err)
	}
	os.Exit(hooks.ExitSuccess)
}

func newCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:                "stop",
		Short:              "Claude Code Stop hook: log the event, optionally save the chat and announce completion",
		Args:               cobra.ArbitraryArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.out = cmd.ErrOrStderr()
			hooks.Run(cmd.Context(), hooks.Runner{Stdin: cmd.InOrStdin(), Stderr: cmd.ErrOrStderr()}, hooks.Stop, opts.handleStop)
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.chat, "chat", false, "Convert the session transcript to logs/chat.json")
	cmd.Flags().BoolVar(&opts.notify, "notify", false, "Generate a completion message and print it to stderr")
	return cmd
}

func (o *options) handleStop(ctx context.Context, hc *hooks.HookContext, input *Input) error {
	if o.chat && input.TranscriptPath != "" {
		if err := hc.SaveChat(input.TranscriptPath); err != nil {
			hc.Log.Warn().Err(err).Str("transcript", input.TranscriptPath).Msg("Failed to save chat transcript")
		}
	}

	// A stop hook that is already active would announce on every continuation.
	if o.notify && !input.StopHookActive {
		m := completion.New(hc.Config, hc.Log)
		msg := m.Message(ctx)
		hc.Log.Debug().Str("provider", m.Provider()).Msg("Completion message ready")
		out := o.out
		if out == nil {
			out = os.Stderr
		}
		fmt.Fprintln(out, msg)
	}
	return nil
}
