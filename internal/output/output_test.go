package output

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/efebarandurmaz/svgsmith/internal/convert"
)

func quietLogger() *slog.Logger { return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)) }

func outcome(path, markup string, results ...convert.Result) convert.Outcome {
	return convert.Outcome{
		Request: convert.Request{Path: path, Markup: markup, Frameworks: []string{"react", "vue"}},
		Results: results,
	}
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint([]byte("<svg/>"), "react")
	if a != Fingerprint([]byte("<svg/>"), "react") {
		t.Error("fingerprint must be deterministic")
	}
	if a == Fingerprint([]byte("<svg />"), "react") {
		t.Error("source change must change the fingerprint")
	}
	if a == Fingerprint([]byte("<svg/>"), "vue") {
		t.Error("settings change must change the fingerprint")
	}
	if len(a) != 64 {
		t.Errorf("expected hex sha256, got %q", a)
	}
}

func TestWriter_WriteAndIndex(t *testing.T) {
	dir := t.TempDir()
	w := &Writer{Dir: dir, Index: true, Manifest: true, Logger: quietLogger()}

	written, err := w.Write([]convert.Outcome{
		outcome("icons/arrow-up.svg", "<svg/>",
			convert.Result{Code: "react-code", Extension: ".tsx", Framework: "react", Path: "ArrowUp.tsx"},
			convert.Result{Code: "vue-code", Extension: ".vue", Framework: "vue", Path: "ArrowUp.vue"},
		),
		outcome("icons/home.svg", "<svg><path/></svg>",
			convert.Result{Code: "home", Extension: ".tsx", Framework: "react", Path: "Home.tsx"},
		),
		{Request: convert.Request{Path: "broken.svg"}, Err: os.ErrInvalid},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"react/ArrowUp.tsx", "react/Home.tsx", "react/index.ts", "vue/ArrowUp.vue", "vue/index.ts"}
	if strings.Join(written, ",") != strings.Join(want, ",") {
		t.Errorf("written = %v, want %v", written, want)
	}

	data, err := os.ReadFile(filepath.Join(dir, "react", "ArrowUp.tsx"))
	if err != nil || string(data) != "react-code" {
		t.Errorf("unexpected component file %q, %v", data, err)
	}

	index, _ := os.ReadFile(filepath.Join(dir, "react", "index.ts"))
	wantIndex := "export { default as ArrowUp } from \"./ArrowUp\";\nexport { default as Home } from \"./Home\";\n"
	if string(index) != wantIndex {
		t.Errorf("react index =\n%s\nwant\n%s", index, wantIndex)
	}
	vueIndex, _ := os.ReadFile(filepath.Join(dir, "vue", "index.ts"))
	if string(vueIndex) != "export { default as ArrowUp } from \"./ArrowUp.vue\";\n" {
		t.Errorf("unexpected vue index %q", vueIndex)
	}

	m, err := LoadManifest(dir)
	if err != nil {
		t.Fatal(err)
	}
	e := m.Components["icons/arrow-up.svg"]
	if e == nil || e.Component != "ArrowUp" || len(e.Files) != 2 {
		t.Fatalf("unexpected manifest entry %+v", e)
	}
	if _, ok := m.Components["broken.svg"]; ok {
		t.Error("failed documents must not be recorded")
	}
}

func TestWriter_FilterSkipsUnchanged(t *testing.T) {
	dir := t.TempDir()
	w := &Writer{Dir: dir, Manifest: true, Settings: "v1", Logger: quietLogger()}
	first := outcome("a.svg", "<svg/>", convert.Result{Code: "x", Extension: ".tsx", Framework: "react", Path: "A.tsx"})
	if _, err := w.Write([]convert.Outcome{first}); err != nil {
		t.Fatal(err)
	}

	reqs := []convert.Request{
		first.Request,
		{Path: "b.svg", Markup: "<svg/>", Frameworks: []string{"react", "vue"}},
	}
	todo, skipped, err := w.Filter(reqs)
	if err != nil {
		t.Fatal(err)
	}
	if len(skipped) != 1 || skipped[0] != "a.svg" || len(todo) != 1 || todo[0].Path != "b.svg" {
		t.Errorf("todo=%v skipped=%v", todo, skipped)
	}

	changed := *w
	changed.Settings = "v2"
	if todo, _, _ := changed.Filter(reqs); len(todo) != 2 {
		t.Errorf("settings change should regenerate everything, got %d", len(todo))
	}

	forced := *w
	forced.Force = true
	if todo, skipped, _ := forced.Filter(reqs); len(todo) != 2 || len(skipped) != 0 {
		t.Errorf("force should regenerate everything")
	}

	if err := os.Remove(filepath.Join(dir, "react", "A.tsx")); err != nil {
		t.Fatal(err)
	}
	if todo, _, _ := w.Filter(reqs); len(todo) != 2 {
		t.Errorf("missing output should be regenerated, got %d", len(todo))
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	m, err := LoadManifest(dir)
	if err != nil || len(m.Components) != 0 {
		t.Fatalf("missing manifest should be empty: %v %v", m, err)
	}

	if err := os.WriteFile(filepath.Join(dir, ManifestFileName), []byte("version: \"0\"\ncomponents: {a: {component: A}}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if m, _ := LoadManifest(dir); len(m.Components) != 0 {
		t.Error("unknown manifest version should be discarded")
	}

	if err := os.WriteFile(filepath.Join(dir, ManifestFileName), []byte("version: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadManifest(dir); err == nil {
		t.Error("expected parse error")
	}
}

func TestWriter_JavaScriptIndex(t *testing.T) {
	dir := t.TempDir()
	w := &Writer{Dir: dir, Index: true}
	written, err := w.Write([]convert.Outcome{
		outcome("x.svg", "<svg/>", convert.Result{Code: "x", Extension: ".jsx", Framework: "react", Path: "X.jsx"}),
	})
	if err != nil {
		t.Fatal(err)
	}
	if written[len(written)-1] != filepath.Join("react", "index.js") {
		t.Errorf("expected index.js, got %v", written)
	}
	if _, err := os.Stat(filepath.Join(dir, ManifestFileName)); !os.IsNotExist(err) {
		t.Error("manifest should not be written when disabled")
	}
}
