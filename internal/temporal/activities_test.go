package temporal

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.temporal.io/sdk/testsuite"

	"github.com/efebarandurmaz/svgsmith/internal/convert"
	"github.com/efebarandurmaz/svgsmith/internal/output"
	"github.com/efebarandurmaz/svgsmith/internal/plugins"
	"github.com/efebarandurmaz/svgsmith/internal/plugins/source/svg"
	"github.com/efebarandurmaz/svgsmith/internal/plugins/target/react"
	"github.com/efebarandurmaz/svgsmith/internal/plugins/target/vue"
)

const arrow = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><path d="M12 2"/></svg>`

// setupTestDeps installs a converter with the react and vue targets.
func setupTestDeps(t *testing.T) {
	t.Helper()
	reg := plugins.NewRegistry()
	reg.RegisterSource(svg.New())
	reg.RegisterTarget(react.New(react.Options{WithProps: true}))
	reg.RegisterTarget(vue.New(vue.Options{WithProps: true}, vue.ModeStructural))
	SetDependencies(&Dependencies{Converter: convert.New(reg), Settings: "test"})
	t.Cleanup(func() { SetDependencies(nil) })
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSetDependencies(t *testing.T) {
	conv := convert.New(plugins.NewRegistry())
	SetDependencies(&Dependencies{Converter: conv})
	defer SetDependencies(nil)

	if deps == nil {
		t.Fatal("SetDependencies failed: deps is nil")
	}
	if deps.Converter != conv {
		t.Error("SetDependencies did not set converter correctly")
	}
}

func TestConvertIconActivity(t *testing.T) {
	setupTestDeps(t)
	path := writeSource(t, t.TempDir(), "arrow-left.svg", arrow)

	res, err := ConvertIconActivity(context.Background(), IconInput{Path: path, Frameworks: []string{"react", "vue"}})
	if err != nil {
		t.Fatalf("ConvertIconActivity failed: %v", err)
	}
	if res.Error != "" {
		t.Fatalf("unexpected icon error: %s", res.Error)
	}
	if res.Name != "ArrowLeft" {
		t.Errorf("expected name ArrowLeft, got %s", res.Name)
	}
	if len(res.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(res.Results))
	}
	if res.Results[0].Framework != "react" || res.Results[1].Framework != "vue" {
		t.Errorf("results out of order: %s, %s", res.Results[0].Framework, res.Results[1].Framework)
	}
	if !strings.Contains(res.Results[0].Code, "export function ArrowLeft(") {
		t.Errorf("react code missing component:\n%s", res.Results[0].Code)
	}
}

func TestConvertIconActivity_InvalidDocument(t *testing.T) {
	setupTestDeps(t)
	path := writeSource(t, t.TempDir(), "broken.svg", `<div/>`)

	res, err := ConvertIconActivity(context.Background(), IconInput{Path: path, Frameworks: []string{"react"}})
	if err != nil {
		t.Fatalf("document errors must not fail the activity: %v", err)
	}
	if res.Error == "" {
		t.Error("expected icon error")
	}
	if len(res.Results) != 0 {
		t.Errorf("expected no results, got %d", len(res.Results))
	}
}

func TestConvertIconActivity_MissingFile(t *testing.T) {
	setupTestDeps(t)
	_, err := ConvertIconActivity(context.Background(), IconInput{
		Path:       filepath.Join(t.TempDir(), "missing.svg"),
		Frameworks: []string{"react"},
	})
	if err == nil {
		t.Error("expected read error for missing source")
	}
}

func TestConvertIconActivity_NoDependencies(t *testing.T) {
	SetDependencies(nil)
	if _, err := ConvertIconActivity(context.Background(), IconInput{Path: "x.svg"}); err == nil {
		t.Error("expected error without dependencies")
	}
}

func TestWriteResultsActivity(t *testing.T) {
	setupTestDeps(t)
	src := t.TempDir()
	out := t.TempDir()
	path := writeSource(t, src, "check.svg", arrow)

	icon, err := ConvertIconActivity(context.Background(), IconInput{Path: path, Frameworks: []string{"react"}})
	if err != nil {
		t.Fatal(err)
	}
	failed := IconResult{Path: filepath.Join(src, "bad.svg"), Error: "invalid svg document"}

	res, err := WriteResultsActivity(context.Background(), WriteInput{
		OutputDir: out,
		Index:     true,
		Manifest:  true,
		Icons:     []IconResult{icon, failed},
	})
	if err != nil {
		t.Fatalf("WriteResultsActivity failed: %v", err)
	}
	want := []string{filepath.Join("react", "Check.tsx"), filepath.Join("react", "index.ts")}
	if strings.Join(res.Written, ",") != strings.Join(want, ",") {
		t.Errorf("written = %v, want %v", res.Written, want)
	}
	if _, err := os.Stat(filepath.Join(out, output.ManifestFileName)); err != nil {
		t.Errorf("manifest not written: %v", err)
	}
}

func TestPlanBatchActivity_SkipsUnchanged(t *testing.T) {
	setupTestDeps(t)
	src := t.TempDir()
	out := t.TempDir()
	a := writeSource(t, src, "a.svg", arrow)
	b := writeSource(t, src, "b.svg", arrow)

	icon, err := ConvertIconActivity(context.Background(), IconInput{Path: a, Frameworks: []string{"react"}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := WriteResultsActivity(context.Background(), WriteInput{OutputDir: out, Manifest: true, Icons: []IconResult{icon}}); err != nil {
		t.Fatal(err)
	}

	plan, err := PlanBatchActivity(context.Background(), PlanInput{
		Sources:    []string{a, b},
		Frameworks: []string{"react"},
		OutputDir:  out,
		Manifest:   true,
	})
	if err != nil {
		t.Fatalf("PlanBatchActivity failed: %v", err)
	}
	if len(plan.Skipped) != 1 || plan.Skipped[0] != a {
		t.Errorf("expected %s skipped, got %v", a, plan.Skipped)
	}
	if len(plan.Pending) != 1 || plan.Pending[0] != b {
		t.Errorf("expected %s pending, got %v", b, plan.Pending)
	}

	forced, err := PlanBatchActivity(context.Background(), PlanInput{
		Sources:    []string{a, b},
		Frameworks: []string{"react"},
		OutputDir:  out,
		Manifest:   true,
		Force:      true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(forced.Pending) != 2 {
		t.Errorf("force should convert everything, got %v", forced.Pending)
	}
}

func TestOutcomes(t *testing.T) {
	got := Outcomes([]IconResult{
		{Path: "a.svg", Results: []convert.Result{{Framework: "react"}}, DurationMS: 5},
		{Path: "b.svg", Error: "boom"},
	})
	if len(got) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(got))
	}
	if got[0].Err != nil || got[0].Duration.Milliseconds() != 5 {
		t.Errorf("unexpected first outcome %+v", got[0])
	}
	if got[1].Err == nil || got[1].Err.Error() != "boom" {
		t.Errorf("expected boom error, got %v", got[1].Err)
	}
}

func TestConvertBatchWorkflow(t *testing.T) {
	setupTestDeps(t)
	src := t.TempDir()
	out := t.TempDir()
	sources := []string{
		writeSource(t, src, "home.svg", arrow),
		writeSource(t, src, "broken.svg", `<svg><g></svg>`),
		writeSource(t, src, "user.svg", arrow),
	}

	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterActivity(PlanBatchActivity)
	env.RegisterActivity(ConvertIconActivity)
	env.RegisterActivity(WriteResultsActivity)

	env.ExecuteWorkflow(ConvertBatchWorkflow, BatchInput{
		Sources:     sources,
		Frameworks:  []string{"react", "vue"},
		OutputDir:   out,
		Index:       true,
		Concurrency: 2,
	})

	if !env.IsWorkflowCompleted() {
		t.Fatal("workflow did not complete")
	}
	if err := env.GetWorkflowError(); err != nil {
		t.Fatalf("workflow failed: %v", err)
	}
	var result BatchOutput
	if err := env.GetWorkflowResult(&result); err != nil {
		t.Fatal(err)
	}
	if result.Converted != 2 || result.Failed != 1 {
		t.Errorf("converted=%d failed=%d, want 2 and 1", result.Converted, result.Failed)
	}
	if len(result.Errors) != 1 || !strings.HasPrefix(result.Errors[0], sources[1]) {
		t.Errorf("unexpected errors %v", result.Errors)
	}
	for _, rel := range []string{"react/Home.tsx", "react/User.tsx", "vue/Home.vue", "vue/User.vue", "react/index.ts", "vue/index.ts"} {
		if _, err := os.Stat(filepath.Join(out, filepath.FromSlash(rel))); err != nil {
			t.Errorf("expected %s: %v", rel, err)
		}
	}
}

func TestConvertBatchWorkflow_NoFrameworks(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.ExecuteWorkflow(ConvertBatchWorkflow, BatchInput{Sources: []string{"a.svg"}})
	if env.GetWorkflowError() == nil {
		t.Error("expected workflow error without frameworks")
	}
}
