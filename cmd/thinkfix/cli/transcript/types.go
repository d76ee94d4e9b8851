// Package transcript implements scanning and repair of Claude Code JSONL
// transcripts. Repair removes reasoning content blocks whose signatures are
// bound to the backend channel that produced them; everything else in the
// file round-trips byte for byte.
package transcript

// Content block types relevant to removal decisions.
const (
	TypeThinking         = "thinking"
	TypeRedactedThinking = "redacted_thinking"
	TypeReasoning        = "reasoning"
)

// Mode selects the removal policy.
type Mode int

const (
	// ModeMalformed removes only blocks that could never be accepted by any
	// channel: thinking blocks with a missing or empty signature, and
	// reasoning blocks. Used by the switch-independent safety net.
	ModeMalformed Mode = iota

	// ModeSwitch removes every thinking and redacted_thinking block
	// regardless of signature. Signatures are channel-bound, so after a
	// confirmed channel switch all of them are invalid.
	ModeSwitch
)

// String returns the mode name used in logs and flag help.
func (m Mode) String() string {
	if m == ModeSwitch {
		return "switch"
	}
	return "malformed"
}

// Block is the minimal view of a content block needed by the removal
// predicate. Unknown fields of the underlying JSON are never touched.
type Block struct {
	Type string `json:"type"`

	// Signature distinguishes "absent" (nil) from "empty" (pointer to "").
	Signature *string `json:"signature"`
}

// Result reports what a rewrite did.
type Result struct {
	// BlocksRemoved is the total number of content blocks deleted. Used for
	// the user-facing restart message; not required for correctness.
	BlocksRemoved int
}
