package transcript

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Rewrite removes every block the mode flags and atomically replaces the
// transcript. The corrected content goes to a temp file in the same
// directory, is flushed to durable storage, and is then renamed over the
// original, so a crash mid-write leaves the original intact. Running Rewrite
// on an already-clean transcript removes nothing and produces byte-identical
// output.
func Rewrite(path string, mode Mode) (Result, error) {
	in, err := os.Open(path) //nolint:gosec // path comes from the hook input or Claude's project layout
	if err != nil {
		return Result{}, fmt.Errorf("opening transcript: %w", err)
	}
	defer func() { _ = in.Close() }()

	tmp, err := os.CreateTemp(filepath.Dir(path), ".thinkfix_tmp_*.jsonl")
	if err != nil {
		return Result{}, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	renamed := false
	defer func() {
		if !renamed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	writer := bufio.NewWriter(tmp)
	reader := bufio.NewReader(in)
	result := Result{}

	for {
		lineBytes, readErr := reader.ReadBytes('\n')
		if readErr != nil && readErr != io.EOF {
			return Result{}, fmt.Errorf("reading transcript: %w", readErr)
		}

		if len(lineBytes) > 0 {
			cleaned, removed := cleanLine(lineBytes, mode)
			result.BlocksRemoved += removed

			var out []byte
			if removed == 0 {
				// Untouched lines are copied verbatim, terminator included.
				out = lineBytes
			} else {
				out = cleaned
				if bytes.HasSuffix(lineBytes, []byte("\n")) {
					out = append(out, '\n')
				}
			}
			if _, err := writer.Write(out); err != nil {
				return Result{}, fmt.Errorf("writing temp file: %w", err)
			}
		}

		if readErr == io.EOF {
			break
		}
	}

	if err := writer.Flush(); err != nil {
		return Result{}, fmt.Errorf("flushing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return Result{}, fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return Result{}, fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return Result{}, fmt.Errorf("replacing transcript: %w", err)
	}
	renamed = true

	return result, nil
}

// CleanBytes applies the same transformation as Rewrite to in-memory content.
// Used for dry-run previews and tests.
func CleanBytes(content []byte, mode Mode) ([]byte, int) {
	var out bytes.Buffer
	removedTotal := 0
	reader := bufio.NewReader(bytes.NewReader(content))

	for {
		lineBytes, readErr := reader.ReadBytes('\n')
		if len(lineBytes) > 0 {
			cleaned, removed := cleanLine(lineBytes, mode)
			removedTotal += removed
			if removed == 0 {
				out.Write(lineBytes)
			} else {
				out.Write(cleaned)
				if bytes.HasSuffix(lineBytes, []byte("\n")) {
					out.WriteByte('\n')
				}
			}
		}
		if readErr != nil {
			break
		}
	}

	return out.Bytes(), removedTotal
}
