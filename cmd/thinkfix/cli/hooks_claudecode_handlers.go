// hooks_claudecode_handlers.go contains the Claude Code hook handler
// implementations. These are called by the hook registry in hook_registry.go.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/thinkfix/cli/cmd/thinkfix/cli/channel"
	"github.com/thinkfix/cli/cmd/thinkfix/cli/claudecode"
	"github.com/thinkfix/cli/cmd/thinkfix/cli/logging"
	"github.com/thinkfix/cli/cmd/thinkfix/cli/paths"
	"github.com/thinkfix/cli/cmd/thinkfix/cli/settings"
	"github.com/thinkfix/cli/cmd/thinkfix/cli/transcript"
	"github.com/thinkfix/cli/cmd/thinkfix/cli/validation"
	"github.com/thinkfix/cli/redact"
)

// handleClaudeCodeUserPromptSubmit is invoked once per outbound user message.
// It decides between three outcomes: allow silently (channel unchanged),
// allow after a no-op scan (switch but nothing to clean), or clean-and-block
// (switch with channel-bound blocks in the transcript).
//
// Anything that goes wrong before the rewrite fails open: an internal fault
// must never block a legitimate request. Only a failed rewrite is surfaced
// as an error, because a half-done cleanup must not be reported as success.
func handleClaudeCodeUserPromptSubmit() error {
	ctx := logging.WithComponent(context.Background(), "hooks")

	input, err := claudecode.ParseHookInput(os.Stdin)
	if err != nil {
		logging.Warn(ctx, "unparsable hook input", slog.String("error", err.Error()))
		return nil
	}
	if input.SessionID != "" {
		if err := validation.ValidateSessionID(input.SessionID); err != nil {
			// A hostile or corrupt session id must not reach path construction.
			logging.Warn(ctx, "invalid session id in hook input", slog.String("error", err.Error()))
			input.SessionID = ""
		} else {
			ctx = logging.WithSession(ctx, input.SessionID)
		}
	}

	claudeSettingsPath, err := paths.ClaudeSettingsPath()
	if err != nil {
		return nil
	}
	current := claudecode.ChannelID(claudeSettingsPath)
	if current == "" {
		logging.Debug(ctx, "no backend configuration found, allowing")
		return nil
	}

	statePath, err := paths.ChannelStatePath()
	if err != nil {
		return nil
	}
	tracker := channel.NewTracker(statePath)

	if !tracker.HasSwitched(current) {
		if _, ok := tracker.Read(); !ok {
			// First run: record the channel so the next invocation can compare.
			persistChannel(ctx, tracker, current)
		}
		runSafetyNet(ctx, input)
		return nil
	}

	last, _ := tracker.Read()
	logging.Info(ctx, "channel switch detected",
		slog.String("from", redact.ChannelID(last)),
		slog.String("to", redact.ChannelID(current)),
	)

	transcriptPath := paths.LocateTranscript(input.TranscriptPath, input.CWD, input.SessionID)
	if transcriptPath == "" {
		// Cannot clean what we cannot find; the switch itself has still
		// been observed.
		logging.Debug(ctx, "no transcript resolved, allowing")
		persistChannel(ctx, tracker, current)
		return nil
	}

	dirty, err := transcript.Scan(transcriptPath, transcript.ModeSwitch)
	if err != nil {
		logging.Warn(ctx, "transcript scan failed, allowing",
			slog.String("transcript", transcriptPath),
			slog.String("error", err.Error()),
		)
		persistChannel(ctx, tracker, current)
		return nil
	}
	if !dirty {
		logging.Debug(ctx, "transcript clean after switch, allowing")
		persistChannel(ctx, tracker, current)
		return nil
	}

	result, err := transcript.Rewrite(transcriptPath, transcript.ModeSwitch)
	if err != nil {
		// Fail closed on the write path. Deliberately not a
		// RestartRequiredError: the host should surface the actual fault.
		return fmt.Errorf("repairing transcript %s: %w", transcriptPath, err)
	}

	persistChannel(ctx, tracker, current)
	logging.Info(ctx, "transcript repaired",
		slog.String("transcript", transcriptPath),
		slog.Int("blocks_removed", result.BlocksRemoved),
	)

	return &RestartRequiredError{BlocksRemoved: result.BlocksRemoved}
}

// persistChannel updates the stored channel id. Losing this write degrades
// to "assume switched" on the next run, which at worst costs an extra scan,
// so failures are logged and swallowed.
func persistChannel(ctx context.Context, tracker *channel.Tracker, id string) {
	if err := tracker.Write(id); err != nil {
		logging.Warn(ctx, "failed to persist channel state", slog.String("error", err.Error()))
	}
}

// runSafetyNet removes malformed thinking blocks (missing or empty
// signature) on the regular, non-switch path when cleanup_mode is "always".
// It never blocks the request; a repaired transcript still loads fine after
// the response that is about to be generated.
func runSafetyNet(ctx context.Context, input *claudecode.HookInput) {
	s, err := settings.Load()
	if err != nil || s.CleanupMode != settings.CleanupModeAlways {
		return
	}

	transcriptPath := paths.LocateTranscript(input.TranscriptPath, input.CWD, input.SessionID)
	if transcriptPath == "" {
		return
	}

	dirty, err := transcript.Scan(transcriptPath, transcript.ModeMalformed)
	if err != nil || !dirty {
		return
	}

	result, err := transcript.Rewrite(transcriptPath, transcript.ModeMalformed)
	if err != nil {
		logging.Warn(ctx, "safety-net rewrite failed",
			slog.String("transcript", transcriptPath),
			slog.String("error", err.Error()),
		)
		return
	}
	logging.Info(ctx, "removed malformed blocks",
		slog.String("transcript", transcriptPath),
		slog.Int("blocks_removed", result.BlocksRemoved),
	)
}
