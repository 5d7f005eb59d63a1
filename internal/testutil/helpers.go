package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// CreateTestFile creates a test file with content
func CreateTestFile(t *testing.T, path string, content []byte) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory for test file: %v", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
}

// WriteWordList writes content to words.txt in a temporary directory and
// returns its path
func WriteWordList(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "words.txt")
	CreateTestFile(t, path, []byte(content))
	return path
}
