package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/thinkfix/cli/cmd/thinkfix/cli/paths"
	"github.com/thinkfix/cli/cmd/thinkfix/cli/transcript"
	"github.com/thinkfix/cli/cmd/thinkfix/cli/validation"
)

func newFixCmd() *cobra.Command {
	var transcriptPath string
	var sessionID string
	var all bool
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Repair a transcript manually",
		Long: `Remove malformed thinking blocks from a session transcript without waiting
for the hook. By default only blocks with a missing or empty signature are
removed; --all removes every thinking block, which is what the hook does
after a channel switch.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := resolveFixTarget(transcriptPath, sessionID)
			if err != nil {
				return err
			}

			mode := transcript.ModeMalformed
			if all {
				mode = transcript.ModeSwitch
			}

			if dryRun {
				return runFixDryRun(cmd.OutOrStdout(), path, mode)
			}
			return runFix(cmd.OutOrStdout(), path, mode)
		},
	}

	cmd.Flags().StringVarP(&transcriptPath, "transcript", "t", "", "Path to the transcript .jsonl file")
	cmd.Flags().StringVarP(&sessionID, "session", "s", "", "Session ID (transcript is located under ~/.claude/projects)")
	cmd.Flags().BoolVar(&all, "all", false, "Remove every thinking block, not just malformed ones")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Show what would change without writing")

	return cmd
}

func resolveFixTarget(transcriptPath, sessionID string) (string, error) {
	if transcriptPath != "" {
		if _, err := os.Stat(transcriptPath); err != nil {
			return "", fmt.Errorf("transcript not found: %s", transcriptPath)
		}
		return transcriptPath, nil
	}
	if sessionID == "" {
		return "", fmt.Errorf("either --transcript or --session is required")
	}
	if err := validation.ValidateSessionID(sessionID); err != nil {
		return "", err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	path, err := paths.ProjectTranscriptPath(cwd, sessionID)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("no transcript for session %s under %s", sessionID, cwd)
	}
	return path, nil
}

func runFix(w io.Writer, path string, mode transcript.Mode) error {
	dirty, err := transcript.Scan(path, mode)
	if err != nil {
		return fmt.Errorf("scanning transcript: %w", err)
	}
	if !dirty {
		fmt.Fprintln(w, "Transcript is clean; nothing to do.")
		return nil
	}

	result, err := transcript.Rewrite(path, mode)
	if err != nil {
		return fmt.Errorf("repairing transcript: %w", err)
	}
	fmt.Fprintf(w, "✓ Removed %d block(s) from %s\n", result.BlocksRemoved, path)
	fmt.Fprintln(w, "Restart Claude Code before resuming this session.")
	return nil
}

func runFixDryRun(w io.Writer, path string, mode transcript.Mode) error {
	original, err := os.ReadFile(path) //nolint:gosec // user-supplied path is the point of this command
	if err != nil {
		return fmt.Errorf("reading transcript: %w", err)
	}

	cleaned, removed := transcript.CleanBytes(original, mode)
	if removed == 0 {
		fmt.Fprintln(w, "Transcript is clean; nothing to do.")
		return nil
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(original), string(cleaned), false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	fmt.Fprint(w, dmp.DiffPrettyText(diffs))
	fmt.Fprintf(w, "\nWould remove %d block(s) from %s (dry run, nothing written)\n", removed, path)
	return nil
}
