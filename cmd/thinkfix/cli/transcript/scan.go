package transcript

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
)

// Scan reads the transcript record by record and reports whether any record
// contains at least one block the mode would remove. It never writes; the
// common case (nothing to clean) costs a single streaming read.
// Uses bufio.Reader to handle arbitrarily long lines.
func Scan(path string, mode Mode) (bool, error) {
	file, err := os.Open(path) //nolint:gosec // path comes from the hook input or Claude's project layout
	if err != nil {
		return false, fmt.Errorf("opening transcript: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := bufio.NewReader(file)
	for {
		lineBytes, err := reader.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return false, fmt.Errorf("reading transcript: %w", err)
		}

		if len(bytes.TrimSpace(lineBytes)) > 0 {
			// Unparsable records count as clean here; the rewriter preserves
			// them verbatim anyway.
			if rec, ok := parseRecord(bytes.TrimSuffix(lineBytes, []byte("\n"))); ok {
				if rec.removableCount(mode) > 0 {
					return true, nil
				}
			}
		}

		if err == io.EOF {
			return false, nil
		}
	}
}
