package hooks

import (
	"path/filepath"

	"github.com/thebtf/agent-hooks/internal/config"
	"github.com/thebtf/agent-hooks/internal/transcript"
)

// ChatFile is the local file holding the converted transcript.
const ChatFile = "chat.json"

// ChatPath returns where SaveChat writes the converted transcript.
func (hc *HookContext) ChatPath() string {
	dir := config.DefaultLocalDir
	if hc.Config != nil && hc.Config.LocalDir != "" {
		dir = hc.Config.LocalDir
	}
	return filepath.Join(dir, ChatFile)
}

// SaveChat converts the JSONL transcript at transcriptPath into ChatPath.
func (hc *HookContext) SaveChat(transcriptPath string) error {
	n, err := transcript.Convert(transcriptPath, hc.ChatPath())
	if err != nil {
		return err
	}
	hc.Log.Debug().Int("entries", n).Str("path", hc.ChatPath()).Msg("Saved chat transcript")
	return nil
}
