// Package claudecode knows the on-disk surfaces thinkfix shares with Claude
// Code: hook input on stdin, ~/.claude/settings.json, and the environment
// block that carries the backend configuration.
package claudecode

// AgentName is the subcommand under `thinkfix hooks` for Claude Code.
const AgentName = "claude-code"

// Claude Code hook names - these become subcommands under `thinkfix hooks claude-code`
const (
	HookNameUserPromptSubmit = "user-prompt-submit"
)

// UserPromptSubmitEvent is the key in settings.json hooks where the
// user-prompt-submit hook is registered.
const UserPromptSubmitEvent = "UserPromptSubmit"

// HookMatcher matches hooks to specific patterns
type HookMatcher struct {
	Matcher string      `json:"matcher"`
	Hooks   []HookEntry `json:"hooks"`
}

// HookEntry represents a single hook command
type HookEntry struct {
	Type    string `json:"type"`
	Command string `json:"command"`
}

// HookInput is the JSON piped to a hook's stdin by Claude Code.
type HookInput struct {
	SessionID      string `json:"session_id"`
	TranscriptPath string `json:"transcript_path"`
	CWD            string `json:"cwd"`
	HookEventName  string `json:"hook_event_name"`
}
