// Package channel persists and compares the backend channel identifier
// across hook invocations. The identifier is an opaque string; equality is
// exact comparison with no normalization.
package channel

import (
	"os"
	"strings"
)

// Tracker reads and writes the single-fact channel state file.
type Tracker struct {
	statePath string
}

// NewTracker returns a tracker backed by the given state file path.
func NewTracker(statePath string) *Tracker {
	return &Tracker{statePath: statePath}
}

// Read returns the last persisted channel identifier. ok is false when the
// file is missing, unreadable, or empty; corruption is treated as absent,
// never as a fatal error. Absent state at worst causes an extra scan on the
// next invocation, which is safe.
func (t *Tracker) Read() (id string, ok bool) {
	data, err := os.ReadFile(t.statePath)
	if err != nil {
		return "", false
	}
	id = strings.TrimSpace(string(data))
	if id == "" {
		return "", false
	}
	return id, true
}

// Write overwrites the persisted channel identifier wholesale.
func (t *Tracker) Write(id string) error {
	return os.WriteFile(t.statePath, []byte(id+"\n"), 0o600)
}

// HasSwitched reports whether a prior identifier exists and differs from
// current. First runs (no prior value) never count as a switch.
func (t *Tracker) HasSwitched(current string) bool {
	last, ok := t.Read()
	return ok && last != current
}
