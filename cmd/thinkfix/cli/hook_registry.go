package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/thinkfix/cli/cmd/thinkfix/cli/claudecode"
	"github.com/thinkfix/cli/cmd/thinkfix/cli/logging"
	"github.com/thinkfix/cli/cmd/thinkfix/cli/settings"
)

// HookHandlerFunc is a function that handles a specific hook event.
type HookHandlerFunc func() error

// hookRegistry maps (agentName, hookName) to handler functions.
// This keeps the hook vocabulary declarative while the handler logic lives
// in this package.
var hookRegistry = map[string]map[string]HookHandlerFunc{}

// RegisterHookHandler registers a handler for an agent's hook.
func RegisterHookHandler(agentName, hookName string, handler HookHandlerFunc) {
	if hookRegistry[agentName] == nil {
		hookRegistry[agentName] = make(map[string]HookHandlerFunc)
	}
	hookRegistry[agentName][hookName] = handler
}

// GetHookHandler returns the handler for an agent's hook, or nil if not found.
func GetHookHandler(agentName, hookName string) HookHandlerFunc {
	if handlers, ok := hookRegistry[agentName]; ok {
		return handlers[hookName]
	}
	return nil
}

// init registers the Claude Code hook handlers.
// Each handler checks if thinkfix is enabled before executing.
//
//nolint:gochecknoinits // Hook handler registration at startup is the intended pattern
func init() {
	RegisterHookHandler(claudecode.AgentName, claudecode.HookNameUserPromptSubmit, func() error {
		if s, err := settings.Load(); err == nil && !s.Enabled {
			return nil
		}
		return handleClaudeCodeUserPromptSubmit()
	})
}

// newAgentHooksCmd creates the hooks subcommand tree for one agent.
// Each hook verb becomes a subcommand: thinkfix hooks claude-code <verb>
func newAgentHooksCmd(agentName string, hookNames []string) *cobra.Command {
	cmd := &cobra.Command{
		Use:    agentName,
		Short:  agentName + " hook handlers",
		Hidden: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logging.SetLogLevelGetter(func() string {
				s, err := settings.Load()
				if err != nil {
					return ""
				}
				return s.LogLevel
			})
			logging.Init()
		},
		// This PostRun shadows the root command's (cobra runs only the
		// nearest hook), which is what keeps telemetry and the version
		// check off the hook path. Do not enable EnablePersistentRunAll.
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			logging.Close()
		},
	}

	for _, hookName := range hookNames {
		cmd.AddCommand(newAgentHookVerbCmd(agentName, hookName))
	}

	return cmd
}

// newAgentHookVerbCmd creates a command for a specific hook verb with
// structured logging around the handler.
func newAgentHookVerbCmd(agentName, hookName string) *cobra.Command {
	return &cobra.Command{
		Use:   hookName,
		Short: "Called on " + hookName,
		RunE: func(_ *cobra.Command, _ []string) error {
			start := time.Now()
			ctx := logging.WithComponent(context.Background(), "hooks")

			logging.Debug(ctx, "hook invoked",
				slog.String("hook", hookName),
				slog.String("agent", agentName),
			)

			handler := GetHookHandler(agentName, hookName)
			if handler == nil {
				logging.Error(ctx, "no handler registered",
					slog.String("hook", hookName),
					slog.String("agent", agentName),
				)
				return fmt.Errorf("no handler registered for %s/%s", agentName, hookName)
			}

			hookErr := handler()

			logging.LogDuration(ctx, slog.LevelDebug, "hook completed", start,
				slog.String("hook", hookName),
				slog.String("agent", agentName),
				slog.Bool("success", hookErr == nil),
			)

			return hookErr
		},
	}
}
