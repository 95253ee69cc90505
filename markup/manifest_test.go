package markup

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "markup.yaml")
	content := "search_roots:\n  - templates\n  - shared/templates\ndefault_method: xhtml\ndefault_encoding: \"\"\nhtml: false\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.SearchRoots) != 2 || m.SearchRoots[0] != "templates" {
		t.Errorf("unexpected search roots: %v", m.SearchRoots)
	}
	if m.DefaultMethod != "xhtml" {
		t.Errorf("DefaultMethod = %q, want xhtml", m.DefaultMethod)
	}
	if m.HTML {
		t.Error("HTML should be false")
	}
}

func TestLoadManifestMissingFile(t *testing.T) {
	if _, err := LoadManifest(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing manifest file")
	}
}
