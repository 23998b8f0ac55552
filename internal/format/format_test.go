package format

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func fakeBinary(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prettier")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNoop(t *testing.T) {
	got, err := Noop{}.Format(context.Background(), "a  b", Options{})
	if err != nil || got != "a  b" {
		t.Errorf("Noop.Format = %q, %v", got, err)
	}
}

func TestPrettier_PipesStdin(t *testing.T) {
	bin := fakeBinary(t, `echo "// $*"; cat`)
	got, err := Prettier{Binary: bin}.Format(context.Background(), "const a = 1;\n", Options{Syntax: "typescript", PrintWidth: 100})
	if err != nil {
		t.Fatal(err)
	}
	want := "// --stdin-filepath component.tsx --parser typescript --print-width 100\nconst a = 1;\n"
	if got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}

func TestPrettier_Failure(t *testing.T) {
	bin := fakeBinary(t, "echo 'SyntaxError: boom' >&2; exit 2")
	_, err := Prettier{Binary: bin}.Format(context.Background(), "<", Options{})
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("expected stderr in error, got %v", err)
	}

	if _, err := (Prettier{Binary: filepath.Join(t.TempDir(), "missing")}).Format(context.Background(), "", Options{}); err == nil {
		t.Error("expected error for missing binary")
	}
}

func TestNew(t *testing.T) {
	for _, name := range []string{"", "none"} {
		f, err := New(name, "")
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := f.(Noop); !ok {
			t.Errorf("New(%q) = %T, want Noop", name, f)
		}
	}
	if f, _ := New("prettier", "/opt/prettier"); f.(Prettier).Binary != "/opt/prettier" {
		t.Errorf("binary not propagated: %+v", f)
	}
	if _, err := New("gofmt", ""); err == nil {
		t.Error("expected error for unknown formatter")
	}
}
