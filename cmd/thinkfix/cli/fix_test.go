package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thinkfix/cli/cmd/thinkfix/cli/testutil"
	"github.com/thinkfix/cli/cmd/thinkfix/cli/transcript"
)

func TestResolveFixTarget_ExplicitPath(t *testing.T) {
	home := testutil.SetHome(t)
	path := testutil.WriteFile(t, home, "session.jsonl", transcriptSigned)

	got, err := resolveFixTarget(path, "")
	if err != nil {
		t.Fatalf("resolveFixTarget() error: %v", err)
	}
	if got != path {
		t.Errorf("resolveFixTarget() = %q, want %q", got, path)
	}
}

func TestResolveFixTarget_MissingExplicitPath(t *testing.T) {
	testutil.SetHome(t)

	if _, err := resolveFixTarget("/does/not/exist.jsonl", ""); err == nil {
		t.Error("expected error for missing transcript")
	}
}

func TestResolveFixTarget_NeitherFlag(t *testing.T) {
	testutil.SetHome(t)

	if _, err := resolveFixTarget("", ""); err == nil {
		t.Error("expected error when neither --transcript nor --session is given")
	}
}

func TestResolveFixTarget_InvalidSession(t *testing.T) {
	testutil.SetHome(t)

	if _, err := resolveFixTarget("", "../escape"); err == nil {
		t.Error("expected error for path-unsafe session id")
	}
}

func TestRunFix_RemovesMalformedOnly(t *testing.T) {
	home := testutil.SetHome(t)
	path := testutil.WriteFile(t, home, "session.jsonl", transcriptSigned+transcriptEmptySig)

	var out bytes.Buffer
	if err := runFix(&out, path, transcript.ModeMalformed); err != nil {
		t.Fatalf("runFix() error: %v", err)
	}
	if !strings.Contains(out.String(), "Removed 1 block(s)") {
		t.Errorf("output = %q, want removal report", out.String())
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "EuYBCkYIBxgC") {
		t.Error("signed thinking block must survive malformed-only fix")
	}
	if strings.Contains(string(data), `"signature":""`) {
		t.Error("empty-signature block must be removed")
	}
}

func TestRunFix_CleanTranscript(t *testing.T) {
	home := testutil.SetHome(t)
	path := testutil.WriteFile(t, home, "session.jsonl", transcriptPlain)

	var out bytes.Buffer
	if err := runFix(&out, path, transcript.ModeSwitch); err != nil {
		t.Fatalf("runFix() error: %v", err)
	}
	if !strings.Contains(out.String(), "clean") {
		t.Errorf("output = %q, want clean report", out.String())
	}

	data, _ := os.ReadFile(path)
	if string(data) != transcriptPlain {
		t.Error("clean transcript must not be modified")
	}
}

func TestRunFixDryRun_DoesNotWrite(t *testing.T) {
	home := testutil.SetHome(t)
	path := testutil.WriteFile(t, home, "session.jsonl", transcriptSigned)

	var out bytes.Buffer
	if err := runFixDryRun(&out, path, transcript.ModeSwitch); err != nil {
		t.Fatalf("runFixDryRun() error: %v", err)
	}
	if !strings.Contains(out.String(), "Would remove 1 block(s)") {
		t.Errorf("output = %q, want dry-run report", out.String())
	}

	data, _ := os.ReadFile(path)
	if string(data) != transcriptSigned {
		t.Error("dry run must not modify the transcript")
	}
}

func TestResolveFixTarget_DerivedFromSession(t *testing.T) {
	home := testutil.SetHome(t)
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	encoded := ""
	for i := 0; i < len(cwd); i++ {
		c := cwd[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			encoded += string(c)
		} else {
			encoded += "-"
		}
	}
	want := testutil.WriteFile(t, home,
		filepath.Join(".claude", "projects", encoded, "abc-123.jsonl"), transcriptPlain)

	got, err := resolveFixTarget("", "abc-123")
	if err != nil {
		t.Fatalf("resolveFixTarget() error: %v", err)
	}
	if got != want {
		t.Errorf("resolveFixTarget() = %q, want %q", got, want)
	}
}
