package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/thinkfix/cli/cmd/thinkfix/cli/settings"
	"github.com/thinkfix/cli/cmd/thinkfix/cli/telemetry"
	"github.com/thinkfix/cli/cmd/thinkfix/cli/versioncheck"
)

const gettingStarted = `

Getting Started:
  Run 'thinkfix enable' to install the Claude Code hook. After that the
  session transcript is checked on every prompt and repaired automatically
  when the backend channel changes.

`

const accessibilityHelp = `
Environment Variables:
  ACCESSIBLE    Set to any value (e.g., ACCESSIBLE=1) to enable accessibility
                mode. This uses simpler text prompts instead of interactive
                TUI elements, which works better with screen readers.
`

// Version information (can be set at build time)
var (
	Version = "dev"
	Commit  = "unknown"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "thinkfix",
		Short: "Transcript repair for Claude Code channel switches",
		Long:  "Detects backend channel switches and strips stale thinking blocks from session transcripts" + gettingStarted + accessibilityHelp,
		// Let main.go handle error printing to avoid duplication. Usage
		// output must stay silent too: on the hook path stderr is shown to
		// the user by Claude Code, and a usage block would drown out the
		// restart banner.
		SilenceErrors: true,
		SilenceUsage:  true,
		// Hide completion command from help but keep it functional
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			versioncheck.CheckAndNotify(cmd, Version)

			// Load telemetry preference from settings (ignore errors - nil defaults to disabled)
			var telemetryEnabled *bool
			cleanupMode := settings.CleanupModeSwitchOnly
			enabled := false
			if s, err := settings.Load(); err == nil {
				telemetryEnabled = s.Telemetry
				cleanupMode = s.CleanupMode
				enabled = s.Enabled
			}

			telemetryClient := telemetry.NewClient(Version, telemetryEnabled)
			defer telemetryClient.Close()
			telemetryClient.TrackCommand(cmd, cleanupMode, enabled)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newEnableCmd())
	cmd.AddCommand(newDisableCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newFixCmd())
	cmd.AddCommand(newHooksCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("thinkfix %s (%s)\n", Version, Commit)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
