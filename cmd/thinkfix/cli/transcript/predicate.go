package transcript

// NeedsRemoval reports whether a content block must be deleted under the
// given mode. The function is pure: scanning and rewriting rely on it
// returning the same answer for the same input.
func NeedsRemoval(b Block, mode Mode) bool {
	switch b.Type {
	case TypeThinking, TypeRedactedThinking:
		if mode == ModeSwitch {
			return true
		}
		return b.Signature == nil || *b.Signature == ""
	case TypeReasoning:
		// Reasoning blocks come from non-Anthropic backends and never carry
		// a signature scheme that survives a channel change.
		return true
	default:
		return false
	}
}
