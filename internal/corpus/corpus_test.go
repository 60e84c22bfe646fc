package corpus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadSingleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.txt")
	writeFile(t, path, "hello corpus")

	res, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.Text != "hello corpus" {
		t.Errorf("text: got %q", res.Text)
	}
	if res.Files != 1 {
		t.Errorf("files: got %d, want 1", res.Files)
	}
}

func TestLoadMissingPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("expected error for missing path")
	}
}

func TestLoadDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "alpha")
	writeFile(t, filepath.Join(root, "sub", "b.txt"), "beta")

	res, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.Files != 2 {
		t.Errorf("files: got %d, want 2", res.Files)
	}
	if !strings.Contains(res.Text, "alpha") || !strings.Contains(res.Text, "beta") {
		t.Errorf("text missing file contents: %q", res.Text)
	}
}

func TestLoadDirectoryRespectsGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "secret.txt\nlogs/\n")
	writeFile(t, filepath.Join(root, "kept.txt"), "KEPT")
	writeFile(t, filepath.Join(root, "secret.txt"), "CLASSIFIED")
	writeFile(t, filepath.Join(root, "logs", "out.txt"), "LOGDATA")

	res, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if strings.Contains(res.Text, "CLASSIFIED") {
		t.Error("gitignored file was included")
	}
	if strings.Contains(res.Text, "LOGDATA") {
		t.Error("gitignored directory was included")
	}
	if !strings.Contains(res.Text, "KEPT") {
		t.Error("non-ignored file was dropped")
	}
}

func TestLoadDirectorySkipsBinary(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "text.txt"), "readable")
	if err := os.WriteFile(filepath.Join(root, "blob"), []byte{0xFF, 0xFE, 0x00, 0x01}, 0o644); err != nil {
		t.Fatalf("write blob: %v", err)
	}

	res, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.Files != 1 {
		t.Errorf("files: got %d, want 1 (binary skipped)", res.Files)
	}
}

func TestLoadDirectorySkipsHardIgnoredDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.txt"), "main")
	writeFile(t, filepath.Join(root, "node_modules", "dep.txt"), "dependency")

	res, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if strings.Contains(res.Text, "dependency") {
		t.Error("node_modules content was included")
	}
}
