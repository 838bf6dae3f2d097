// Package main provides the pre-tool-use hook entry point.
// It only records the event; it never blocks a tool call.
package main

import (
	"github.com/thebtf/agent-hooks/pkg/hooks"
)

func main() {
	hooks.RunHook[hooks.BaseInput](hooks.PreToolUse, nil)
}
