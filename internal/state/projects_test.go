package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestScanProjectsOrdersByLastUsed(t *testing.T) {
	root := t.TempDir()
	old := filepath.Join(root, "older")
	fresh := filepath.Join(root, "fresh")
	for _, dir := range []string{old, fresh} {
		if err := os.Mkdir(dir, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	base := time.Now().Add(-time.Hour)
	if err := os.Chtimes(old, base, base); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	if err := os.Chtimes(fresh, base.Add(30*time.Minute), base.Add(30*time.Minute)); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	projects, err := ScanProjects(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(projects))
	}
	if projects[0].Name != "fresh" || projects[1].Name != "older" {
		t.Fatalf("expected fresh before older, got %s, %s", projects[0].Name, projects[1].Name)
	}
	if projects[0].Path != fresh {
		t.Fatalf("expected path %s, got %s", fresh, projects[0].Path)
	}
}

func TestScanProjectsSkipsHiddenAndFiles(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.Mkdir(filepath.Join(root, "visible"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	projects, err := ScanProjects(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(projects) != 1 || projects[0].Name != "visible" {
		t.Fatalf("expected only the visible directory, got %v", projects)
	}
}

func TestScanProjectsCountsVisibleFiles(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "proj")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, name := range []string{"main.go", "go.mod", ".env"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	projects, err := ScanProjects(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if projects[0].Files != 2 {
		t.Fatalf("expected 2 visible files, got %d", projects[0].Files)
	}
}

func TestScanProjectsMissingRoot(t *testing.T) {
	if _, err := ScanProjects(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatalf("expected error for missing root")
	}
}
