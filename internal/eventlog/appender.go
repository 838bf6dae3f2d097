// Package eventlog records hook events to the local JSON array log and,
// when a role is configured, to the central JSON-Lines log.
package eventlog

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
	"github.com/gofrs/flock"
	"github.com/rs/zerolog"

	"github.com/thebtf/agent-hooks/internal/config"
)

const (
	localExt   = ".json"
	centralExt = ".jsonl"
	lockExt    = ".lock"
)

// ErrInvalidRecord is returned when a raw record is not valid JSON.
var ErrInvalidRecord = errors.New("invalid JSON record")

// Appender persists event records under a hook name.
type Appender struct {
	cfg *config.Config
	log zerolog.Logger
}

// New creates an Appender. A nil config means config.Default().
func New(cfg *config.Config, log zerolog.Logger) *Appender {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Appender{cfg: cfg, log: log}
}

// LocalPath returns the local log file for a hook.
func (a *Appender) LocalPath(hookName string) string {
	return filepath.Join(a.localDir(), hookName+localExt)
}

// CentralPath returns the central log file for a hook, or "" when no role is set.
func (a *Appender) CentralPath(hookName string) (string, error) {
	if !a.cfg.CentralEnabled() {
		return "", nil
	}
	dir, err := a.cfg.CentralDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, hookName+centralExt), nil
}

// Append records the event in the local log and, if a role is configured,
// in the central log. The record is opaque: json.RawMessage and []byte are
// stored as-is, anything else is marshalled.
func (a *Appender) Append(hookName string, record any) error {
	raw, err := toRaw(record)
	if err != nil {
		return fmt.Errorf("marshal %s record: %w", hookName, err)
	}

	if err := a.appendLocal(hookName, raw); err != nil {
		return err
	}
	return a.appendCentral(hookName, raw)
}

func (a *Appender) appendLocal(hookName string, raw json.RawMessage) error {
	path := a.LocalPath(hookName)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}

	if a.cfg.LockLocal {
		lock := flock.New(path + lockExt)
		if err := lock.Lock(); err != nil {
			return fmt.Errorf("lock %s: %w", path, err)
		}
		defer func() {
			_ = lock.Unlock()
		}()
	}

	entries := readEntries(path)
	if entries == nil {
		a.log.Debug().Str("path", path).Msg("Starting new local log")
	}
	entries = append(entries, raw)

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err != nil {
		return fmt.Errorf("indent %s: %w", path, err)
	}
	if err := os.WriteFile(path, pretty.Bytes(), 0600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (a *Appender) appendCentral(hookName string, raw json.RawMessage) error {
	path, err := a.CentralPath(hookName)
	if err != nil {
		return err
	}
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("create central log dir: %w", err)
	}

	var line bytes.Buffer
	if err := json.Compact(&line, raw); err != nil {
		return fmt.Errorf("compact %s record: %w", hookName, err)
	}
	line.WriteByte('\n')

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600) // #nosec G304 -- path is built from config
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := f.Write(line.Bytes()); err != nil {
		_ = f.Close()
		return fmt.Errorf("append %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func (a *Appender) localDir() string {
	if a.cfg.LocalDir == "" {
		return config.DefaultLocalDir
	}
	return a.cfg.LocalDir
}

// readEntries loads the local log. Anything that is not a readable JSON
// array yields nil and the log starts over.
func readEntries(path string) []json.RawMessage {
	data, err := os.ReadFile(path) // #nosec G304 -- path is built from config
	if err != nil {
		return nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil
	}
	return entries
}

func toRaw(record any) (json.RawMessage, error) {
	switch v := record.(type) {
	case json.RawMessage:
		if !json.Valid(v) {
			return nil, ErrInvalidRecord
		}
		return v, nil
	case []byte:
		if !json.Valid(v) {
			return nil, ErrInvalidRecord
		}
		return json.RawMessage(v), nil
	}
	return json.Marshal(record)
}
