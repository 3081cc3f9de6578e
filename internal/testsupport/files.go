package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteMedia creates a placeholder media file under dir and returns its path.
func WriteMedia(t testing.TB, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte("media"), 0o644); err != nil {
		t.Fatalf("write media %s: %v", path, err)
	}
	return path
}
