package level

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsLevelFiles(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "level1.txt"), []byte("p"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-w.Events:
		if name != "level1.txt" {
			t.Errorf("expected level1.txt event, got %q", name)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watcher event")
	}
}

func TestIsLevelFile(t *testing.T) {
	tests := map[string]bool{
		"level1.txt": true,
		"LEVEL1.TXT": true,
		"pack.yaml":  true,
		"other.yaml": false,
		"notes.md":   false,
	}
	for name, want := range tests {
		if got := isLevelFile(name); got != want {
			t.Errorf("isLevelFile(%q) = %v, want %v", name, got, want)
		}
	}
}
