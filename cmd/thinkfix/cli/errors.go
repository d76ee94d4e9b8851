package cli

import "fmt"

// BlockingExitCode is the process exit status that tells Claude Code to
// reject the current prompt and show stderr to the user.
const BlockingExitCode = 2

// SilentError indicates the command already printed its own error output.
// main.go skips printing it again.
type SilentError struct {
	Err error
}

func (e *SilentError) Error() string {
	return e.Err.Error()
}

func (e *SilentError) Unwrap() error {
	return e.Err
}

// RestartRequiredError signals that the transcript was repaired after a
// channel switch and the current request must be blocked so the user can
// restart with the corrected session. This is a control decision, not a
// failure: the cleanup already succeeded when it is returned.
type RestartRequiredError struct {
	BlocksRemoved int
}

func (e *RestartRequiredError) Error() string {
	return fmt.Sprintf("restart required: removed %d channel-bound block(s)", e.BlocksRemoved)
}

// UserMessage is the banner main.go prints to stderr before exiting with
// BlockingExitCode.
func (e *RestartRequiredError) UserMessage() string {
	return fmt.Sprintf(`
thinkfix: backend channel switch detected.

  Removed %d channel-bound thinking block(s) from the session transcript.
  The transcript has been repaired; this request was not sent.

  Restart Claude Code to reload the corrected session.
`, e.BlocksRemoved)
}
