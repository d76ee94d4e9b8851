package cli

import (
	"github.com/spf13/cobra"
	"github.com/thinkfix/cli/cmd/thinkfix/cli/claudecode"
)

func newHooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "hooks",
		Short:  "Hook handlers",
		Long:   "Commands called by Claude Code hooks. These are internal and not for direct user use.",
		Hidden: true, // Internal command, not for direct user use
	}

	cmd.AddCommand(newAgentHooksCmd(claudecode.AgentName, []string{
		claudecode.HookNameUserPromptSubmit,
	}))

	return cmd
}
