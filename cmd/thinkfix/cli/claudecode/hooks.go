package claudecode

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/thinkfix/cli/cmd/thinkfix/cli/jsonutil"
)

// hookCommand is the command Claude Code runs on every user prompt.
const hookCommand = "thinkfix hooks claude-code user-prompt-submit"

// thinkfixHookPrefix identifies hook entries owned by thinkfix.
const thinkfixHookPrefix = "thinkfix "

// HookCommand returns the command line registered in settings.json.
func HookCommand() string {
	return hookCommand
}

// InstallHook merges the user-prompt-submit hook into settings.json,
// preserving every field and hook event we do not own. Returns true if the
// hook was added, false if it was already present.
func InstallHook(settingsPath string) (bool, error) {
	rawSettings, rawHooks, matchers, err := readHookSettings(settingsPath)
	if err != nil {
		return false, err
	}

	if hookCommandExists(matchers, hookCommand) {
		return false, nil
	}

	matchers = append(matchers, HookMatcher{
		Matcher: "*",
		Hooks: []HookEntry{{
			Type:    "command",
			Command: hookCommand,
		}},
	})

	if err := writeHookSettings(settingsPath, rawSettings, rawHooks, matchers); err != nil {
		return false, err
	}
	return true, nil
}

// UninstallHook removes every thinkfix-owned entry from the
// user-prompt-submit hooks. Returns true if anything was removed.
func UninstallHook(settingsPath string) (bool, error) {
	rawSettings, rawHooks, matchers, err := readHookSettings(settingsPath)
	if err != nil {
		return false, err
	}

	filtered := removeThinkfixHooks(matchers)
	if len(filtered) == len(matchers) && countEntries(filtered) == countEntries(matchers) {
		return false, nil
	}

	if err := writeHookSettings(settingsPath, rawSettings, rawHooks, filtered); err != nil {
		return false, err
	}
	return true, nil
}

// IsHookInstalled reports whether the hook is registered in settings.json.
func IsHookInstalled(settingsPath string) bool {
	_, _, matchers, err := readHookSettings(settingsPath)
	if err != nil {
		return false
	}
	return hookCommandExists(matchers, hookCommand)
}

// readHookSettings loads settings.json into raw maps so unknown fields and
// other hook events survive a rewrite untouched. A missing file yields empty
// maps rather than an error.
func readHookSettings(settingsPath string) (map[string]json.RawMessage, map[string]json.RawMessage, []HookMatcher, error) {
	rawSettings := make(map[string]json.RawMessage)
	rawHooks := make(map[string]json.RawMessage)
	var matchers []HookMatcher

	data, err := os.ReadFile(settingsPath) //nolint:gosec // fixed path under ~/.claude
	if err != nil {
		if os.IsNotExist(err) {
			return rawSettings, rawHooks, nil, nil
		}
		return nil, nil, nil, fmt.Errorf("reading settings.json: %w", err)
	}

	if err := json.Unmarshal(data, &rawSettings); err != nil {
		return nil, nil, nil, fmt.Errorf("parsing settings.json: %w", err)
	}
	if hooksRaw, ok := rawSettings["hooks"]; ok {
		if err := json.Unmarshal(hooksRaw, &rawHooks); err != nil {
			return nil, nil, nil, fmt.Errorf("parsing hooks in settings.json: %w", err)
		}
	}
	if matchersRaw, ok := rawHooks[UserPromptSubmitEvent]; ok {
		if err := json.Unmarshal(matchersRaw, &matchers); err != nil {
			return nil, nil, nil, fmt.Errorf("parsing %s hooks: %w", UserPromptSubmitEvent, err)
		}
	}

	return rawSettings, rawHooks, matchers, nil
}

func writeHookSettings(settingsPath string, rawSettings, rawHooks map[string]json.RawMessage, matchers []HookMatcher) error {
	if len(matchers) == 0 {
		delete(rawHooks, UserPromptSubmitEvent)
	} else {
		matchersJSON, err := json.Marshal(matchers)
		if err != nil {
			return fmt.Errorf("marshaling %s hooks: %w", UserPromptSubmitEvent, err)
		}
		rawHooks[UserPromptSubmitEvent] = matchersJSON
	}

	hooksJSON, err := json.Marshal(rawHooks)
	if err != nil {
		return fmt.Errorf("marshaling hooks: %w", err)
	}
	rawSettings["hooks"] = hooksJSON

	if err := os.MkdirAll(filepath.Dir(settingsPath), 0o750); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}

	output, err := jsonutil.MarshalIndentWithNewline(rawSettings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	if err := os.WriteFile(settingsPath, output, 0o600); err != nil {
		return fmt.Errorf("writing settings.json: %w", err)
	}
	return nil
}

func hookCommandExists(matchers []HookMatcher, command string) bool {
	for _, matcher := range matchers {
		for _, hook := range matcher.Hooks {
			if hook.Command == command {
				return true
			}
		}
	}
	return false
}

func isThinkfixHook(command string) bool {
	return strings.HasPrefix(command, thinkfixHookPrefix)
}

// removeThinkfixHooks drops thinkfix-owned entries, keeping matchers that
// still contain hooks owned by something else.
func removeThinkfixHooks(matchers []HookMatcher) []HookMatcher {
	result := make([]HookMatcher, 0, len(matchers))
	for _, matcher := range matchers {
		kept := make([]HookEntry, 0, len(matcher.Hooks))
		for _, hook := range matcher.Hooks {
			if !isThinkfixHook(hook.Command) {
				kept = append(kept, hook)
			}
		}
		if len(kept) > 0 {
			matcher.Hooks = kept
			result = append(result, matcher)
		}
	}
	return result
}

func countEntries(matchers []HookMatcher) int {
	n := 0
	for _, m := range matchers {
		n += len(m.Hooks)
	}
	return n
}
