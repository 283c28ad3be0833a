package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/decode"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func TestScanFindsSupportedFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "hdfc", "feb.csv"))
	writeFile(t, filepath.Join(root, "icici", "march.pdf"))
	writeFile(t, filepath.Join(root, "notes.md"))

	results, err := New(root).Scan()
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("Scan() found %d files, want 2", len(results))
	}
	// Path order is deterministic.
	if results[0].Format != decode.FormatCSV {
		t.Errorf("first format = %v, want csv", results[0].Format)
	}
	if results[1].Format != decode.FormatDocument {
		t.Errorf("second format = %v, want document", results[1].Format)
	}
}

func TestScanEmptyDir(t *testing.T) {
	results, err := New(t.TempDir()).Scan()
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Scan() found %d files, want 0", len(results))
	}
}

func TestScanMissingDir(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "absent")).Scan(); err == nil {
		t.Error("Scan() should fail for a missing directory")
	}
}
