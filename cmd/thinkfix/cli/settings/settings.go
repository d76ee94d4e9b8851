// Package settings provides configuration loading for thinkfix.
// This package is separate from cli so that leaf packages can import it
// without creating an import cycle.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/thinkfix/cli/cmd/thinkfix/cli/jsonutil"
	"github.com/thinkfix/cli/cmd/thinkfix/cli/paths"
)

// Cleanup modes for the hook path.
const (
	// CleanupModeSwitchOnly only rewrites transcripts after a confirmed
	// channel switch. This is the default.
	CleanupModeSwitchOnly = "switch-only"

	// CleanupModeAlways additionally runs the malformed-block safety net on
	// every prompt, without blocking.
	CleanupModeAlways = "always"
)

// Settings represents the ~/.config/thinkfix/settings.json configuration.
type Settings struct {
	// Enabled indicates whether thinkfix is active. When false the hook
	// exits silently. Defaults to true.
	Enabled bool `json:"enabled"`

	// LogLevel sets the diagnostic log verbosity (debug, info, warn, error).
	// Can be overridden by the THINKFIX_LOG_LEVEL environment variable.
	// Empty means the diagnostic log is disabled.
	LogLevel string `json:"log_level,omitempty"`

	// CleanupMode selects when transcripts are repaired: "switch-only"
	// (default) or "always".
	CleanupMode string `json:"cleanup_mode,omitempty"`

	// Telemetry controls anonymous usage analytics.
	// nil = not asked yet, true = opted in, false = opted out
	Telemetry *bool `json:"telemetry,omitempty"`
}

// Load loads settings from ~/.config/thinkfix/settings.json, then applies
// any overrides from settings.local.json if it exists. Returns defaults if
// neither file exists.
func Load() (*Settings, error) {
	dir, err := paths.ConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolving config directory: %w", err)
	}

	settings, err := loadFromFile(filepath.Join(dir, paths.SettingsFileName))
	if err != nil {
		return nil, fmt.Errorf("reading settings file: %w", err)
	}

	localData, err := os.ReadFile(filepath.Join(dir, "settings.local.json")) //nolint:gosec // fixed path under the config dir
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading local settings file: %w", err)
		}
	} else {
		if err := mergeJSON(settings, localData); err != nil {
			return nil, fmt.Errorf("merging local settings: %w", err)
		}
	}

	applyDefaults(settings)
	return settings, nil
}

// Save writes settings to ~/.config/thinkfix/settings.json.
func Save(settings *Settings) error {
	dir, err := paths.ConfigDir()
	if err != nil {
		return fmt.Errorf("resolving config directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := jsonutil.MarshalIndentWithNewline(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, paths.SettingsFileName), data, 0o600); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

// loadFromFile loads settings from a specific file path.
// Returns default settings if the file doesn't exist.
func loadFromFile(filePath string) (*Settings, error) {
	settings := &Settings{
		Enabled: true, // Default to enabled
	}

	data, err := os.ReadFile(filePath) //nolint:gosec // path is from caller
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return nil, fmt.Errorf("%w", err)
	}

	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parsing settings file: %w", err)
	}
	applyDefaults(settings)

	return settings, nil
}

// mergeJSON merges JSON data into existing settings.
// Only fields present in the JSON override existing settings.
func mergeJSON(settings *Settings, data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing JSON: %w", err)
	}

	if enabledRaw, ok := raw["enabled"]; ok {
		var e bool
		if err := json.Unmarshal(enabledRaw, &e); err != nil {
			return fmt.Errorf("parsing enabled field: %w", err)
		}
		settings.Enabled = e
	}

	if logLevelRaw, ok := raw["log_level"]; ok {
		var ll string
		if err := json.Unmarshal(logLevelRaw, &ll); err != nil {
			return fmt.Errorf("parsing log_level field: %w", err)
		}
		if ll != "" {
			settings.LogLevel = ll
		}
	}

	if modeRaw, ok := raw["cleanup_mode"]; ok {
		var m string
		if err := json.Unmarshal(modeRaw, &m); err != nil {
			return fmt.Errorf("parsing cleanup_mode field: %w", err)
		}
		if m != "" {
			settings.CleanupMode = m
		}
	}

	if telemetryRaw, ok := raw["telemetry"]; ok {
		var t bool
		if err := json.Unmarshal(telemetryRaw, &t); err != nil {
			return fmt.Errorf("parsing telemetry field: %w", err)
		}
		settings.Telemetry = &t
	}

	return nil
}

func applyDefaults(settings *Settings) {
	if settings.CleanupMode == "" {
		settings.CleanupMode = CleanupModeSwitchOnly
	}
}
