// Package paths centralizes the filesystem locations thinkfix reads and writes.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// Claude Code directory and file names
const (
	ClaudeDirName          = ".claude"
	ClaudeSettingsFileName = "settings.json"
	ClaudeProjectsDirName  = "projects"

	// ChannelStateFileName holds the last observed channel identifier.
	// A single line, overwritten wholesale on every update.
	ChannelStateFileName = ".thinkfix_channel"
)

// thinkfix config directory and file names
const (
	ConfigDirName    = ".config/thinkfix"
	SettingsFileName = "settings.json"
	LogsDirName      = "logs"
	LogFileName      = "hook.log"
)

// ClaudeDir returns the Claude Code configuration directory (~/.claude).
func ClaudeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ClaudeDirName), nil
}

// ClaudeSettingsPath returns the path to Claude Code's settings.json.
func ClaudeSettingsPath() (string, error) {
	dir, err := ClaudeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ClaudeSettingsFileName), nil
}

// ChannelStatePath returns the path to the persisted channel identifier.
// The file lives alongside Claude Code's own configuration so that wiping
// ~/.claude also resets the tracker.
func ChannelStatePath() (string, error) {
	dir, err := ClaudeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ChannelStateFileName), nil
}

// ConfigDir returns thinkfix's own config directory (~/.config/thinkfix).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ConfigDirName), nil
}

// LogFilePath returns the fixed path of the diagnostic log file.
func LogFilePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, LogsDirName, LogFileName), nil
}

// EncodeProjectDir converts a working directory to the directory name Claude
// Code uses under ~/.claude/projects. Every character outside [a-zA-Z0-9]
// becomes a hyphen, so /Users/me/work.dir maps to -Users-me-work-dir.
func EncodeProjectDir(cwd string) string {
	encoded := make([]byte, len(cwd))
	for i := 0; i < len(cwd); i++ {
		c := cwd[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			encoded[i] = c
		default:
			encoded[i] = '-'
		}
	}
	return string(encoded)
}

// ProjectTranscriptPath derives the transcript location for a session from
// the hook's working directory and session id. This is the fallback used when
// the hook input carries no transcript_path.
func ProjectTranscriptPath(cwd, sessionID string) (string, error) {
	dir, err := ClaudeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ClaudeProjectsDirName, EncodeProjectDir(cwd), sessionID+".jsonl"), nil
}

// LocateTranscript resolves the transcript file for a hook invocation.
// The explicit path from the hook input wins; otherwise the path is derived
// from cwd and session id. Returns "" when no transcript file exists on disk,
// which callers treat as a no-op (nothing to clean).
func LocateTranscript(explicitPath, cwd, sessionID string) string {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err == nil {
			return explicitPath
		}
		return ""
	}
	if cwd == "" || sessionID == "" {
		return ""
	}
	path, err := ProjectTranscriptPath(cwd, sessionID)
	if err != nil {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
