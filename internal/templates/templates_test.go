package templates

import (
	"strings"
	"testing"
)

func TestFiles_ReturnsExpectedTemplates(t *testing.T) {
	files := Files()
	if files == nil {
		t.Fatal("Files() returned nil")
	}

	expected := []string{"blank", "welcome"}
	for _, name := range expected {
		data, ok := files[name]
		if !ok {
			t.Errorf("missing expected template %q", name)
			continue
		}
		if len(data) == 0 {
			t.Errorf("template %q is empty", name)
		}
	}

	if len(files) != len(expected) {
		t.Errorf("expected %d templates, got %d", len(expected), len(files))
	}
}

func TestGet(t *testing.T) {
	data, err := Get(Default)
	if err != nil {
		t.Fatalf("Get(%q): %v", Default, err)
	}
	if !strings.Contains(string(data), "plugin: markdown") {
		t.Errorf("welcome template missing markdown cell")
	}

	_, err = Get("nope")
	if err == nil || !strings.Contains(err.Error(), "blank, welcome") {
		t.Errorf("expected error listing templates, got %v", err)
	}
}
