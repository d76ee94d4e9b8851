package transcript

import (
	"bytes"
	"encoding/json"
)

// contentLocation records where a record keeps its content-block array.
type contentLocation int

const (
	contentNone contentLocation = iota
	contentTopLevel
	contentInMessage
)

// record is a parsed transcript line. Field values are kept as raw JSON so
// that everything we do not explicitly remove round-trips unchanged.
type record struct {
	top     map[string]json.RawMessage
	message map[string]json.RawMessage // set when loc == contentInMessage
	blocks  []json.RawMessage
	loc     contentLocation
}

// parseRecord parses one transcript line. ok is false when the line is not a
// JSON object; such lines pass through every operation verbatim.
func parseRecord(line []byte) (*record, bool) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(line, &top); err != nil || top == nil {
		return nil, false
	}

	rec := &record{top: top, loc: contentNone}

	// Assistant and user records nest their blocks under message.content;
	// some event records carry a top-level content array instead. String
	// content (plain user prompts) is not a block array and passes through.
	if msgRaw, ok := top["message"]; ok {
		var msg map[string]json.RawMessage
		if err := json.Unmarshal(msgRaw, &msg); err == nil && msg != nil {
			if blocks, ok := blockArray(msg["content"]); ok {
				rec.message = msg
				rec.blocks = blocks
				rec.loc = contentInMessage
				return rec, true
			}
		}
	}
	if blocks, ok := blockArray(top["content"]); ok {
		rec.blocks = blocks
		rec.loc = contentTopLevel
	}
	return rec, true
}

func blockArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil, false
	}
	return arr, true
}

// removableCount returns how many of the record's blocks the predicate flags.
func (r *record) removableCount(mode Mode) int {
	count := 0
	for _, raw := range r.blocks {
		var b Block
		if err := json.Unmarshal(raw, &b); err != nil {
			// Not an object we understand; never removed.
			continue
		}
		if NeedsRemoval(b, mode) {
			count++
		}
	}
	return count
}

// withBlocksRemoved re-serializes the record with flagged blocks dropped.
// Surviving blocks keep their original bytes and order; a record whose
// content empties out keeps an empty array so turn alignment is preserved.
func (r *record) withBlocksRemoved(mode Mode) ([]byte, int, error) {
	kept := make([]json.RawMessage, 0, len(r.blocks))
	removed := 0
	for _, raw := range r.blocks {
		var b Block
		if err := json.Unmarshal(raw, &b); err == nil && NeedsRemoval(b, mode) {
			removed++
			continue
		}
		kept = append(kept, raw)
	}

	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, raw := range kept {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(raw)
	}
	buf.WriteByte(']')
	content := json.RawMessage(buf.Bytes())

	switch r.loc {
	case contentInMessage:
		r.message["content"] = content
		msgJSON, err := json.Marshal(r.message)
		if err != nil {
			return nil, 0, err
		}
		r.top["message"] = msgJSON
	case contentTopLevel:
		r.top["content"] = content
	case contentNone:
		// Nothing to remove; callers check removableCount first.
	}

	out, err := json.Marshal(r.top)
	if err != nil {
		return nil, 0, err
	}
	return out, removed, nil
}

// cleanLine transforms one raw transcript line. Lines that fail to parse or
// lose no blocks come back byte-identical so rewrites never reformat records
// they do not touch. The returned line excludes any trailing newline; the
// caller owns the terminator.
func cleanLine(line []byte, mode Mode) ([]byte, int) {
	trimmed := bytes.TrimSuffix(line, []byte("\n"))
	if len(bytes.TrimSpace(trimmed)) == 0 {
		return trimmed, 0
	}

	rec, ok := parseRecord(trimmed)
	if !ok || rec.loc == contentNone || rec.removableCount(mode) == 0 {
		return trimmed, 0
	}

	out, removed, err := rec.withBlocksRemoved(mode)
	if err != nil {
		// Fault isolation per record: keep the original on any re-serialize
		// failure rather than dropping the line.
		return trimmed, 0
	}
	return out, removed
}
