package blob

import (
	"os"
	"strings"
	"testing"
)

func TestStoreAndResolve(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	id, err := s.Store([]byte("%PDF-1.4 content"), "My Resume.pdf")
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if !strings.HasSuffix(id, ".pdf") {
		t.Fatalf("id should keep the extension, got %q", id)
	}

	path, err := s.Path(id)
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "%PDF-1.4 content" {
		t.Fatalf("content mismatch: %q", data)
	}

	url, err := s.URL(id)
	if err != nil {
		t.Fatalf("url: %v", err)
	}
	if url != "/files/"+id {
		t.Fatalf("unexpected url: %q", url)
	}
}

func TestPathRejectsTraversal(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	if _, err := s.Path("../etc/passwd"); err == nil {
		t.Fatalf("traversal id must be rejected")
	}
	if _, err := s.Path("missing.pdf"); err == nil {
		t.Fatalf("unknown id must error")
	}
}
