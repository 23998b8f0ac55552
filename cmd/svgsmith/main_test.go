package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const homeIcon = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" fill="red"><path d="M3 12l9-9 9 9"/></svg>`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestCollectInputs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.svg"), homeIcon)
	writeFile(t, filepath.Join(dir, "nested", "b.SVG"), homeIcon)
	writeFile(t, filepath.Join(dir, "notes.txt"), "x")
	writeFile(t, filepath.Join(dir, "other", "c.svg"), homeIcon)

	got, err := collectInputs([]string{
		dir + "/nested",
		filepath.Join(dir, "*.svg"),
		filepath.Join(dir, "a.svg"),
		filepath.Join(dir, "other", "c.svg"),
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(dir, "a.svg"),
		filepath.Join(dir, "nested", "b.SVG"),
		filepath.Join(dir, "other", "c.svg"),
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("collectInputs =\n%v\nwant\n%v", got, want)
	}
}

func TestCollectInputs_Missing(t *testing.T) {
	if _, err := collectInputs([]string{filepath.Join(t.TempDir(), "missing.svg")}); err == nil {
		t.Error("expected error for missing input")
	}
}

func generate(t *testing.T, opts generateOptions) (map[string]any, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	opts.jsonReport = true
	if opts.concurrency == 0 {
		opts.concurrency = 2
	}
	err := runGenerate(context.Background(), opts, &stdout, &stderr)
	if stdout.Len() == 0 {
		return nil, err
	}
	var report map[string]any
	if jerr := json.Unmarshal(stdout.Bytes(), &report); jerr != nil {
		t.Fatalf("bad report %q: %v", stdout.String(), jerr)
	}
	return report, err
}

func TestRunGenerate(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeFile(t, filepath.Join(src, "home.svg"), homeIcon)
	writeFile(t, filepath.Join(src, "arrow-left.svg"), homeIcon)

	opts := generateOptions{
		inputs:     []string{src},
		outputDir:  out,
		frameworks: []string{"react", "vue"},
	}
	report, err := generate(t, opts)
	if err != nil {
		t.Fatalf("runGenerate: %v", err)
	}
	if report["converted"].(float64) != 2 {
		t.Errorf("expected 2 converted, got %v", report["converted"])
	}
	for _, rel := range []string{"react/Home.tsx", "react/ArrowLeft.tsx", "react/index.ts", "vue/Home.vue", "vue/index.ts", "icons.yaml"} {
		if _, err := os.Stat(filepath.Join(out, filepath.FromSlash(rel))); err != nil {
			t.Errorf("expected %s: %v", rel, err)
		}
	}
	code, err := os.ReadFile(filepath.Join(out, "react", "Home.tsx"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(code), "fill={color}") {
		t.Errorf("expected color binding:\n%s", code)
	}

	again, err := generate(t, opts)
	if err != nil {
		t.Fatal(err)
	}
	if again["skipped"].(float64) != 2 || again["converted"].(float64) != 0 {
		t.Errorf("second run should skip unchanged sources: %v", again)
	}

	opts.force = true
	forced, err := generate(t, opts)
	if err != nil {
		t.Fatal(err)
	}
	if forced["converted"].(float64) != 2 {
		t.Errorf("force should regenerate everything: %v", forced)
	}
}

func TestRunGenerate_PropsOff(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeFile(t, filepath.Join(src, "home.svg"), homeIcon)

	_, err := generate(t, generateOptions{
		inputs:        []string{filepath.Join(src, "home.svg")},
		outputDir:     out,
		frameworks:    []string{"react"},
		props:         false,
		propsSet:      true,
		typescript:    false,
		typescriptSet: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	code, err := os.ReadFile(filepath.Join(out, "react", "Home.jsx"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(code), "size") {
		t.Errorf("props disabled, got:\n%s", code)
	}
}

func TestRunGenerate_PartialFailure(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeFile(t, filepath.Join(src, "good.svg"), homeIcon)
	writeFile(t, filepath.Join(src, "bad.svg"), `<div></div>`)

	report, err := generate(t, generateOptions{
		inputs:     []string{src},
		outputDir:  out,
		frameworks: []string{"react"},
	})
	if err == nil {
		t.Fatal("expected an error when a document fails")
	}
	if report["failed"].(float64) != 1 || report["converted"].(float64) != 1 {
		t.Errorf("unexpected report %v", report)
	}
	errs := report["errors"].([]any)
	if len(errs) != 1 || !strings.Contains(errs[0].(string), "bad.svg") {
		t.Errorf("error should name the failing file: %v", errs)
	}
	if _, err := os.Stat(filepath.Join(out, "react", "Good.tsx")); err != nil {
		t.Errorf("good icon should still be written: %v", err)
	}
}

func TestRunGenerate_QualityGates(t *testing.T) {
	tests := []struct {
		name    string
		icon    string
		wantErr bool
	}{
		{"passes", homeIcon, false},
		{"missing viewBox", `<svg width="24" height="24"><path d="M0 0"/></svg>`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := t.TempDir()
			out := t.TempDir()
			writeFile(t, filepath.Join(src, "home.svg"), tt.icon)

			_, err := generate(t, generateOptions{
				inputs:     []string{src},
				outputDir:  out,
				frameworks: []string{"react"},
				gates:      true,
			})
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			_, statErr := os.Stat(filepath.Join(out, "react", "Home.tsx"))
			if tt.wantErr && statErr == nil {
				t.Error("failed gates must not write components")
			}
			if !tt.wantErr && statErr != nil {
				t.Errorf("expected component to be written: %v", statErr)
			}
		})
	}
}

func TestRunGenerate_UnknownFramework(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "home.svg"), homeIcon)
	_, err := generate(t, generateOptions{
		inputs:     []string{src},
		outputDir:  t.TempDir(),
		frameworks: []string{"svelte"},
	})
	if err == nil || !strings.Contains(err.Error(), "oneof") && !strings.Contains(err.Error(), "must be one of") {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestRunOptimize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icon.svg")
	writeFile(t, path, `<?xml version="1.0"?><!-- c --><svg xmlns="http://www.w3.org/2000/svg"><title>x</title><path d="M0 0"/></svg>`)
	var out bytes.Buffer
	if err := runOptimize(context.Background(), "", path, &out); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	for _, bad := range []string{"<?xml", "<!--", "xmlns"} {
		if strings.Contains(got, bad) {
			t.Errorf("optimized output still contains %s: %s", bad, got)
		}
	}
}

func TestBatchInput(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.svg"), homeIcon)

	in, err := batchInput(batchOptions{inputs: []string{dir}, concurrency: 4}, "components", []string{"vue"}, true, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(in.Sources) != 1 || !filepath.IsAbs(in.Sources[0]) || !filepath.IsAbs(in.OutputDir) {
		t.Errorf("paths should be absolute: %+v", in)
	}
	if in.Concurrency != 4 || !in.Index || in.Manifest || in.Frameworks[0] != "vue" {
		t.Errorf("unexpected batch input %+v", in)
	}

	if _, err := batchInput(batchOptions{inputs: []string{t.TempDir()}}, "x", nil, false, false); err == nil {
		t.Error("expected error for empty input set")
	}
}

func TestRootCmd_Frameworks(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"frameworks"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"react", ".tsx", "vue", ".vue"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("frameworks output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRootCmd_GenerateRequiresInput(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"generate"})
	if err := cmd.Execute(); err == nil {
		t.Error("expected error without inputs")
	}
}
