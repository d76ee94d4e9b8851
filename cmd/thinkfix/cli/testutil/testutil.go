// Package testutil provides shared test helpers.
// This package has no build tags, making it usable by all test packages.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// SetHome points HOME at a fresh temp directory with a ~/.claude subdir and
// returns it. Everything path resolution derives from the home directory, so
// this isolates a test from the real user environment.
func SetHome(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	// os.UserHomeDir consults USERPROFILE on Windows
	t.Setenv("USERPROFILE", home)

	if err := os.MkdirAll(filepath.Join(home, ".claude"), 0o755); err != nil {
		t.Fatalf("failed to create .claude dir: %v", err)
	}
	return home
}

// WriteFile creates a file with the given content under dir.
// It creates parent directories as needed.
func WriteFile(t *testing.T, dir, path, content string) string {
	t.Helper()

	fullPath := filepath.Join(dir, path)

	//nolint:gosec // test code, permissions are intentionally standard
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}

	//nolint:gosec // test code, permissions are intentionally standard
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return fullPath
}

// ReadFile reads a file under dir.
func ReadFile(t *testing.T, dir, path string) string {
	t.Helper()

	//nolint:gosec // test code, path is from test setup
	data, err := os.ReadFile(filepath.Join(dir, path))
	if err != nil {
		t.Fatalf("failed to read file %s: %v", path, err)
	}
	return string(data)
}

// FileExists checks if a file exists under dir.
func FileExists(dir, path string) bool {
	_, err := os.Stat(filepath.Join(dir, path))
	return err == nil
}

// WriteClaudeSettings writes a minimal ~/.claude/settings.json with the
// given backend base URL in the env block.
func WriteClaudeSettings(t *testing.T, home, baseURL string) string {
	t.Helper()

	content := fmt.Sprintf(`{"env":{"ANTHROPIC_BASE_URL":%q}}`+"\n", baseURL)
	return WriteFile(t, home, filepath.Join(".claude", "settings.json"), content)
}
