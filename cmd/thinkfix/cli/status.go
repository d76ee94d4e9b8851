package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thinkfix/cli/cmd/thinkfix/cli/channel"
	"github.com/thinkfix/cli/cmd/thinkfix/cli/claudecode"
	"github.com/thinkfix/cli/cmd/thinkfix/cli/paths"
	"github.com/thinkfix/cli/cmd/thinkfix/cli/settings"
	"github.com/thinkfix/cli/redact"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show thinkfix status",
		Long:  "Show whether the hook is installed, which channel is recorded, and whether a switch is pending",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd.OutOrStdout())
		},
	}
}

func runStatus(w io.Writer) error {
	s, err := settings.Load()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	if s.Enabled {
		fmt.Fprintln(w, "thinkfix is enabled")
	} else {
		fmt.Fprintln(w, "thinkfix is disabled")
	}

	settingsPath, err := paths.ClaudeSettingsPath()
	if err != nil {
		return fmt.Errorf("resolving Claude settings path: %w", err)
	}
	if claudecode.IsHookInstalled(settingsPath) {
		fmt.Fprintln(w, "Hook: installed (UserPromptSubmit)")
	} else {
		fmt.Fprintln(w, "Hook: not installed (run 'thinkfix enable')")
	}

	fmt.Fprintf(w, "Cleanup mode: %s\n", s.CleanupMode)

	// Channel identifiers can embed tokens, so only redacted forms are shown.
	current := claudecode.ChannelID(settingsPath)
	fmt.Fprintf(w, "Current channel: %s\n", redact.ChannelID(current))

	statePath, err := paths.ChannelStatePath()
	if err != nil {
		return fmt.Errorf("resolving channel state path: %w", err)
	}
	tracker := channel.NewTracker(statePath)
	stored, ok := tracker.Read()
	if !ok {
		fmt.Fprintln(w, "Recorded channel: (none - first prompt will record it)")
		return nil
	}
	fmt.Fprintf(w, "Recorded channel: %s\n", redact.ChannelID(stored))

	if current != "" && tracker.HasSwitched(current) {
		fmt.Fprintln(w, "Switch pending: the next prompt will scan the transcript")
	}

	return nil
}
