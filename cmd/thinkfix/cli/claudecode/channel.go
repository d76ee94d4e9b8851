package claudecode

import (
	"encoding/json"
	"os"
)

// EnvBaseURL is the environment key holding the backend base URL.
const EnvBaseURL = "ANTHROPIC_BASE_URL"

// settingsEnv is the slice of settings.json we need for channel detection.
type settingsEnv struct {
	Env map[string]string `json:"env"`
}

// ChannelID derives the active channel identifier from Claude Code's
// configuration: the env.ANTHROPIC_BASE_URL value in settings.json, falling
// back to the process environment (hooks inherit Claude Code's env). Returns
// "" when no backend configuration can be determined; callers treat that as
// "cannot decide" and allow the request.
func ChannelID(settingsPath string) string {
	if data, err := os.ReadFile(settingsPath); err == nil { //nolint:gosec // fixed path under ~/.claude
		var s settingsEnv
		if err := json.Unmarshal(data, &s); err == nil {
			if url := s.Env[EnvBaseURL]; url != "" {
				return url
			}
		}
	}
	return os.Getenv(EnvBaseURL)
}
