// Package hooks provides the shared runtime for agent-hooks entry points.
package hooks

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/thebtf/agent-hooks/internal/config"
	"github.com/thebtf/agent-hooks/internal/eventlog"
)

// ExitSuccess is the only exit code a hook returns. Failures are logged
// to stderr and never reported to the host.
const ExitSuccess = 0

// Hook names used for log file names.
const (
	PostToolUse      = "post_tool_use"
	PreToolUse       = "pre_tool_use"
	Notification     = "notification"
	Stop             = "stop"
	SubagentStop     = "subagent_stop"
	UserPromptSubmit = "user_prompt_submit"
	SessionStart     = "session_start"
)

var errMalformed = errors.New("malformed JSON input")

// BaseInput holds the fields every hook payload carries.
type BaseInput struct {
	SessionID      string `json:"session_id"`
	TranscriptPath string `json:"transcript_path"`
	CWD            string `json:"cwd"`
	PermissionMode string `json:"permission_mode"`
	HookEventName  string `json:"hook_event_name"`
}

// HookContext is what a handler gets besides its typed input.
type HookContext struct {
	HookName  string
	SessionID string
	CWD       string
	RawInput  []byte
	Config    *config.Config
	Appender  *eventlog.Appender
	Log       zerolog.Logger
}

// Handler does the hook-specific work after the payload has been logged.
type Handler[T any] func(ctx context.Context, hc *HookContext, input *T) error

// Runner carries the process streams and optional preloaded config.
type Runner struct {
	Stdin  io.Reader
	Stderr io.Writer
	// Config is loaded from the environment when nil.
	Config *config.Config
}

// RunHook runs a hook against the process streams and exits with ExitSuccess.
func RunHook[T any](hookName string, handler Handler[T]) {
	code := Run(context.Background(), Runner{Stdin: os.Stdin, Stderr: os.Stderr}, hookName, handler)
	os.Exit(code)
}

// Run reads the payload, appends it under hookName, then calls handler.
// Only input that is not JSON counts as malformed: it is logged and nothing
// is written. Any JSON document is appended as-is; if it does not decode
// into T the handler is skipped. Every failure, including a panic, is logged
// and the result is still ExitSuccess.
func Run[T any](ctx context.Context, r Runner, hookName string, handler Handler[T]) (code int) {
	stderr := r.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	cfg := r.Config
	var cfgErr error
	if cfg == nil {
		cfg, cfgErr = config.Load(ctx)
		if cfgErr != nil {
			cfg = config.Default()
		}
	}

	log := NewLogger(stderr, cfg.LogLevel, hookName)
	if cfgErr != nil {
		log.Warn().Err(cfgErr).Msg("Failed to load config, using defaults")
	}

	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Msg("Hook panicked")
			code = ExitSuccess
		}
	}()

	raw, err := readInput(r.Stdin)
	if err != nil {
		log.Debug().Err(err).Msg("Ignoring unreadable input")
		return ExitSuccess
	}

	appender := eventlog.New(cfg, log)
	if err := appender.Append(hookName, json.RawMessage(raw)); err != nil {
		log.Warn().Err(err).Msg("Failed to append event")
	}

	if handler == nil {
		return ExitSuccess
	}

	var input T
	if err := json.Unmarshal(raw, &input); err != nil {
		log.Warn().Err(err).Msg("Skipping handler, input does not match")
		return ExitSuccess
	}
	var base BaseInput
	_ = json.Unmarshal(raw, &base)

	hc := &HookContext{
		HookName:  hookName,
		SessionID: base.SessionID,
		CWD:       base.CWD,
		RawInput:  raw,
		Config:    cfg,
		Appender:  appender,
		Log:       log,
	}
	if err := handler(ctx, hc, &input); err != nil {
		log.Warn().Err(err).Msg("Hook handler failed")
	}
	return ExitSuccess
}

// NewLogger returns a console logger on w tagged with the hook name.
func NewLogger(w io.Writer, level, hookName string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.Kitchen}).
		Level(lvl).
		With().
		Timestamp().
		Str("hook", hookName).
		Logger()
}

// readInput reads all of stdin and returns it if it holds a JSON document.
// There is no size cap: tool responses can be large.
func readInput(r io.Reader) ([]byte, error) {
	if r == nil {
		return nil, io.ErrUnexpectedEOF
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, io.ErrUnexpectedEOF
	}
	if !json.Valid(data) {
		return nil, errMalformed
	}
	return data, nil
}
