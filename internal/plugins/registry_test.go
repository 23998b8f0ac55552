package plugins

import (
	"context"
	"testing"

	"github.com/efebarandurmaz/svgsmith/internal/ir"
)

type mockSource struct{}

func (m *mockSource) Format() string { return "mock" }
func (m *mockSource) Parse(_ context.Context, _ SourceFile) (*ir.Document, error) { return &ir.Document{}, nil }

type mockTarget struct{ name string }

func (m *mockTarget) Framework() string { return m.name }
func (m *mockTarget) Extension() string { return ".mock" }
func (m *mockTarget) Generate(_ context.Context, _ Component) (GeneratedFile, error) {
	return GeneratedFile{}, nil
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.RegisterSource(&mockSource{})
	r.RegisterTarget(&mockTarget{name: "mock"})

	if _, err := r.Source("mock"); err != nil {
		t.Errorf("expected source, got error: %v", err)
	}
	if _, err := r.Source("unknown"); err == nil {
		t.Error("expected error for unknown source")
	}
	if _, err := r.Target("mock"); err != nil {
		t.Errorf("expected target, got error: %v", err)
	}
	if _, err := r.Target("svelte"); err == nil {
		t.Error("expected error for unknown target")
	}
}

func TestRegistry_FrameworksSorted(t *testing.T) {
	r := NewRegistry()
	r.RegisterTarget(&mockTarget{name: "vue"})
	r.RegisterTarget(&mockTarget{name: "react"})
	r.RegisterTarget(&mockTarget{name: "react"})

	got := r.Frameworks()
	if len(got) != 2 || got[0] != "react" || got[1] != "vue" {
		t.Errorf("Frameworks() = %v, want [react vue]", got)
	}
}
