package kb

import (
	"os"
	"path/filepath"
	"testing"
)

func writeKBFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kb.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing KB file: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeKBFile(t, `[
		{"name": "GENERAL", "questions": [{"q": "¿Qué es?", "a": "Una respuesta."}]},
		{"name": "APP", "children": [
			{"name": "REGISTRO", "questions": [{"q": "¿Cómo?", "a": "Así."}]}
		]}
	]`)

	roots, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(roots) != 2 {
		t.Fatalf("got %d roots, want 2", len(roots))
	}
	if roots[0].Name != "GENERAL" || !roots[0].IsLeaf() {
		t.Errorf("first root wrong: %+v", roots[0])
	}
	if roots[1].IsLeaf() || roots[1].Children[0].Name != "REGISTRO" {
		t.Errorf("second root wrong: %+v", roots[1])
	}
}

func TestLoadFileRejectsBadInput(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"invalid json", `{not json`},
		{"empty array", `[]`},
		{"empty name", `[{"name": "", "questions": [{"q": "q", "a": "a"}]}]`},
		{"empty answer", `[{"name": "X", "questions": [{"q": "q", "a": ""}]}]`},
		{"branch and leaf at once", `[{"name": "X", "questions": [{"q": "q", "a": "a"}], "children": [{"name": "Y"}]}]`},
	}

	for _, c := range cases {
		path := writeKBFile(t, c.content)
		if _, err := LoadFile(path); err == nil {
			t.Errorf("%s: expected error, got none", c.name)
		}
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
