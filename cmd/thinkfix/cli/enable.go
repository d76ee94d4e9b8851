package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/thinkfix/cli/cmd/thinkfix/cli/claudecode"
	"github.com/thinkfix/cli/cmd/thinkfix/cli/paths"
	"github.com/thinkfix/cli/cmd/thinkfix/cli/settings"
)

func newEnableCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "enable",
		Short: "Enable thinkfix",
		Long:  "Install the Claude Code user-prompt-submit hook and turn transcript repair on",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEnable(cmd.OutOrStdout(), yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompts")

	return cmd
}

func newDisableCmd() *cobra.Command {
	var removeHook bool

	cmd := &cobra.Command{
		Use:   "disable",
		Short: "Disable thinkfix",
		Long:  "Disable thinkfix. The hook stays installed but exits silently; use --remove-hook to uninstall it from Claude Code settings as well.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDisable(cmd.OutOrStdout(), removeHook)
		},
	}

	cmd.Flags().BoolVar(&removeHook, "remove-hook", false, "Also remove the hook entry from ~/.claude/settings.json")

	return cmd
}

func runEnable(w io.Writer, yes bool) error {
	claudeDir, err := paths.ClaudeDir()
	if err != nil {
		return fmt.Errorf("resolving Claude directory: %w", err)
	}
	if _, err := os.Stat(claudeDir); err != nil {
		return fmt.Errorf("%s not found - is Claude Code installed?", claudeDir)
	}

	interactive := !yes && term.IsTerminal(int(os.Stdin.Fd()))

	if interactive {
		confirmed := true
		form := NewAccessibleForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Install the thinkfix hook into ~/.claude/settings.json?").
					Description("The hook runs on every prompt and repairs the session transcript after a backend channel switch.").
					Value(&confirmed),
			),
		)
		if err := form.Run(); err != nil {
			return fmt.Errorf("prompt cancelled: %w", err)
		}
		if !confirmed {
			fmt.Fprintln(w, "Aborted.")
			return nil
		}
	}

	settingsPath, err := paths.ClaudeSettingsPath()
	if err != nil {
		return fmt.Errorf("resolving Claude settings path: %w", err)
	}
	installed, err := claudecode.InstallHook(settingsPath)
	if err != nil {
		return fmt.Errorf("installing Claude Code hook: %w", err)
	}
	if installed {
		fmt.Fprintln(w, "✓ Claude Code hook installed")
	} else {
		fmt.Fprintln(w, "✓ Claude Code hook verified")
	}

	// Load existing settings to preserve options like log_level
	s, err := settings.Load()
	if err != nil {
		s = &settings.Settings{}
	}
	s.Enabled = true

	if interactive && s.Telemetry == nil {
		s.Telemetry = promptTelemetry(w)
	}

	if err := settings.Save(s); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	fmt.Fprintln(w, "✓ Settings saved (~/.config/thinkfix/settings.json)")

	fmt.Fprintln(w, "\n✓ thinkfix enabled")
	return nil
}

// promptTelemetry asks the first-run telemetry question. A declined or
// failed prompt opts out; we only ever record an explicit answer.
func promptTelemetry(w io.Writer) *bool {
	optIn := false
	form := NewAccessibleForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Share anonymous usage analytics?").
				Description("Only command names and settings flags are sent, never transcript content or channel identifiers.").
				Value(&optIn),
		),
	)
	if err := form.Run(); err != nil {
		fmt.Fprintln(w, "Telemetry prompt skipped; analytics stay off.")
		optIn = false
	}
	return &optIn
}

func runDisable(w io.Writer, removeHook bool) error {
	s, err := settings.Load()
	if err != nil {
		s = &settings.Settings{}
	}
	s.Enabled = false
	if err := settings.Save(s); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	fmt.Fprintln(w, "✓ thinkfix disabled (hook exits silently)")

	if removeHook {
		settingsPath, err := paths.ClaudeSettingsPath()
		if err != nil {
			return fmt.Errorf("resolving Claude settings path: %w", err)
		}
		removed, err := claudecode.UninstallHook(settingsPath)
		if err != nil {
			return fmt.Errorf("removing Claude Code hook: %w", err)
		}
		if removed {
			fmt.Fprintln(w, "✓ Claude Code hook removed")
		} else {
			fmt.Fprintln(w, "✓ No Claude Code hook to remove")
		}
	}

	return nil
}
