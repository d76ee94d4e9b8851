package channel

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestTracker(t *testing.T) (*Tracker, string) {
	t.Helper()
	statePath := filepath.Join(t.TempDir(), ".thinkfix_channel")
	return NewTracker(statePath), statePath
}

func TestRead_MissingFile(t *testing.T) {
	tracker, _ := newTestTracker(t)

	if id, ok := tracker.Read(); ok {
		t.Errorf("Read() = (%q, true), want ok=false for missing state", id)
	}
}

func TestRead_EmptyFileTreatedAsAbsent(t *testing.T) {
	tracker, statePath := newTestTracker(t)
	if err := os.WriteFile(statePath, []byte("  \n"), 0o600); err != nil {
		t.Fatalf("writing state: %v", err)
	}

	if id, ok := tracker.Read(); ok {
		t.Errorf("Read() = (%q, true), want ok=false for whitespace-only state", id)
	}
}

func TestWriteThenRead(t *testing.T) {
	tracker, _ := newTestTracker(t)

	if err := tracker.Write("https://api.anthropic.com"); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	id, ok := tracker.Read()
	if !ok {
		t.Fatal("Read() ok = false after Write()")
	}
	if id != "https://api.anthropic.com" {
		t.Errorf("Read() = %q, want %q", id, "https://api.anthropic.com")
	}
}

func TestWrite_OverwritesWholesale(t *testing.T) {
	tracker, _ := newTestTracker(t)

	if err := tracker.Write("https://first.example.com"); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if err := tracker.Write("https://second.example.com"); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	id, _ := tracker.Read()
	if id != "https://second.example.com" {
		t.Errorf("Read() = %q, want the second value only", id)
	}
}

func TestHasSwitched(t *testing.T) {
	tracker, _ := newTestTracker(t)

	// First run: nothing recorded, never a switch.
	if tracker.HasSwitched("https://api.anthropic.com") {
		t.Error("HasSwitched() = true with no recorded state")
	}

	if err := tracker.Write("https://api.anthropic.com"); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	if tracker.HasSwitched("https://api.anthropic.com") {
		t.Error("HasSwitched() = true for identical channel")
	}
	if !tracker.HasSwitched("https://proxy.example.com/v1") {
		t.Error("HasSwitched() = false for different channel")
	}

	// Comparison is exact, no normalization.
	if !tracker.HasSwitched("https://API.anthropic.com") {
		t.Error("HasSwitched() = false for case-differing channel, want true (exact comparison)")
	}
}
