// Package transcript converts Claude Code JSONL transcripts into a single
// pretty-printed JSON array.
package transcript

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
)

// Convert reads the JSONL transcript at src and writes its entries as a JSON
// array to dst, creating dst's directory. Blank and malformed lines are skipped.
// It returns the number of entries written.
func Convert(src, dst string) (int, error) {
	file, err := os.Open(ExpandPath(src)) // #nosec G304 -- path is the host's transcript location
	if err != nil {
		return 0, fmt.Errorf("open transcript: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	entries, err := ReadEntries(file)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0750); err != nil {
		return 0, fmt.Errorf("create chat dir: %w", err)
	}
	data, err := Encode(entries)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(dst, data, 0600); err != nil {
		return 0, fmt.Errorf("write chat log: %w", err)
	}
	return len(entries), nil
}

// ReadEntries returns every valid JSON line in r, in order. Lines have no
// length limit; entries with inline images run to several megabytes.
func ReadEntries(r io.Reader) ([]json.RawMessage, error) {
	reader := bufio.NewReader(r)

	entries := make([]json.RawMessage, 0)
	for {
		chunk, err := reader.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read transcript: %w", err)
		}
		line := bytes.TrimSpace(chunk)
		// Skip blank and malformed JSON lines.
		if len(line) > 0 && json.Valid(line) {
			entries = append(entries, json.RawMessage(line))
		}
		if err == io.EOF {
			return entries, nil
		}
	}
}

// Encode renders entries as a two-space indented JSON array.
func Encode(entries []json.RawMessage) ([]byte, error) {
	data, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("encode transcript: %w", err)
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err != nil {
		return nil, fmt.Errorf("indent transcript: %w", err)
	}
	return pretty.Bytes(), nil
}

// ExpandPath replaces a leading ~ with the home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
