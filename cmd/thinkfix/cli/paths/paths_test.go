package paths_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/thinkfix/cli/cmd/thinkfix/cli/paths"
	"github.com/thinkfix/cli/cmd/thinkfix/cli/testutil"
)

func TestEncodeProjectDir(t *testing.T) {
	tests := []struct {
		cwd  string
		want string
	}{
		{"/Users/me/projects/app", "-Users-me-projects-app"},
		{"/home/dev/work.dir", "-home-dev-work-dir"},
		{"/tmp/a_b c", "-tmp-a-b-c"},
		{"relative/path", "relative-path"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := paths.EncodeProjectDir(tt.cwd); got != tt.want {
			t.Errorf("EncodeProjectDir(%q) = %q, want %q", tt.cwd, got, tt.want)
		}
	}
}

func TestProjectTranscriptPath(t *testing.T) {
	home := testutil.SetHome(t)

	got, err := paths.ProjectTranscriptPath("/work/app", "abc-123")
	if err != nil {
		t.Fatalf("ProjectTranscriptPath() error: %v", err)
	}
	want := filepath.Join(home, ".claude", "projects", "-work-app", "abc-123.jsonl")
	if got != want {
		t.Errorf("ProjectTranscriptPath() = %q, want %q", got, want)
	}
}

func TestLocateTranscript_ExplicitPathWins(t *testing.T) {
	home := testutil.SetHome(t)
	explicit := testutil.WriteFile(t, home, "explicit.jsonl", "{}\n")

	// Derived path also exists; the explicit one must still win.
	testutil.WriteFile(t, home,
		filepath.Join(".claude", "projects", "-work-app", "abc-123.jsonl"), "{}\n")

	got := paths.LocateTranscript(explicit, "/work/app", "abc-123")
	if got != explicit {
		t.Errorf("LocateTranscript() = %q, want explicit path %q", got, explicit)
	}
}

func TestLocateTranscript_ExplicitPathMissing(t *testing.T) {
	testutil.SetHome(t)

	got := paths.LocateTranscript("/does/not/exist.jsonl", "", "")
	if got != "" {
		t.Errorf("LocateTranscript() = %q, want empty for missing explicit path", got)
	}
}

func TestLocateTranscript_DerivedFallback(t *testing.T) {
	home := testutil.SetHome(t)
	derived := testutil.WriteFile(t, home,
		filepath.Join(".claude", "projects", "-work-app", "abc-123.jsonl"), "{}\n")

	got := paths.LocateTranscript("", "/work/app", "abc-123")
	if got != derived {
		t.Errorf("LocateTranscript() = %q, want derived path %q", got, derived)
	}
}

func TestLocateTranscript_NothingFound(t *testing.T) {
	testutil.SetHome(t)

	if got := paths.LocateTranscript("", "/work/app", "abc-123"); got != "" {
		t.Errorf("LocateTranscript() = %q, want empty when no transcript exists", got)
	}
	if got := paths.LocateTranscript("", "", "abc-123"); got != "" {
		t.Errorf("LocateTranscript() = %q, want empty without cwd", got)
	}
	if got := paths.LocateTranscript("", "/work/app", ""); got != "" {
		t.Errorf("LocateTranscript() = %q, want empty without session id", got)
	}
}

func TestChannelStatePath_UnderClaudeDir(t *testing.T) {
	home := testutil.SetHome(t)

	got, err := paths.ChannelStatePath()
	if err != nil {
		t.Fatalf("ChannelStatePath() error: %v", err)
	}
	want := filepath.Join(home, ".claude", ".thinkfix_channel")
	if got != want {
		t.Errorf("ChannelStatePath() = %q, want %q", got, want)
	}
}

func TestLogFilePath(t *testing.T) {
	home := testutil.SetHome(t)

	got, err := paths.LogFilePath()
	if err != nil {
		t.Fatalf("LogFilePath() error: %v", err)
	}
	want := filepath.Join(home, ".config", "thinkfix", "logs", "hook.log")
	if got != want {
		t.Errorf("LogFilePath() = %q, want %q", got, want)
	}
	if _, err := os.Stat(filepath.Dir(got)); err == nil {
		t.Error("LogFilePath() must not create directories as a side effect")
	}
}
