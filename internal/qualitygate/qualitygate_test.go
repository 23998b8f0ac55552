package qualitygate

import (
	"errors"
	"strings"
	"testing"

	"github.com/efebarandurmaz/svgsmith/internal/convert"
)

func outcome(path, markup string, results ...convert.Result) convert.Outcome {
	return convert.Outcome{
		Request: convert.Request{Path: path, Markup: markup, Frameworks: []string{"react"}},
		Results: results,
	}
}

func TestNewEvalContext(t *testing.T) {
	outcomes := []convert.Outcome{
		outcome("a.svg", `<svg viewBox="0 0 24 24" fill="red"><path fill="currentColor" stroke="#f00"/><rect fill="url(#g)"/></svg>`,
			convert.Result{Framework: "react", Path: "A.tsx", Extension: ".tsx", Code: "12345"}),
		outcome("b.svg", `<svg><circle fill="NONE"/></svg>`),
		{Request: convert.Request{Path: "c.svg"}, Err: errors.New("boom")},
	}
	ctx := NewEvalContext(outcomes)

	if ctx.Documents != 3 {
		t.Errorf("documents = %d, want 3", ctx.Documents)
	}
	if len(ctx.Failures) != 1 || ctx.Failures[0] != "c.svg: boom" {
		t.Errorf("unexpected failures %v", ctx.Failures)
	}
	if len(ctx.Sources) != 2 {
		t.Fatalf("sources = %d, want 2", len(ctx.Sources))
	}
	a, b := ctx.Sources[0], ctx.Sources[1]
	if !a.ViewBox || b.ViewBox {
		t.Errorf("viewBox detection wrong: %+v %+v", a, b)
	}
	if len(a.Colors) != 1 || a.Colors[0] != "#f00" {
		t.Errorf("root fill and themable paints must be ignored, got %v", a.Colors)
	}
	if len(b.Colors) != 0 {
		t.Errorf("none is themable, got %v", b.Colors)
	}
	if len(ctx.Components) != 1 || ctx.Components[0].Path != "react/A.tsx" || ctx.Components[0].Bytes != 5 {
		t.Errorf("unexpected components %+v", ctx.Components)
	}
}

func TestGates(t *testing.T) {
	ctx := &EvalContext{
		Documents: 4,
		Failures:  []string{"x.svg: bad"},
		Sources: []SourceInfo{
			{Path: "a.svg", ViewBox: true},
			{Path: "b.svg", ViewBox: true, Colors: []string{"#000"}},
			{Path: "c.svg"},
		},
		Components: []ComponentInfo{
			{Path: "react/A.tsx", Bytes: 100},
			{Path: "react/B.tsx", Bytes: 900},
		},
	}

	tests := []struct {
		name       string
		gate       Gate
		ctx        *EvalContext
		wantStatus GateStatus
		wantDetail string
	}{
		{"errors within limit", NewErrorGate(1, SeverityCritical), ctx, GatePassed, ""},
		{"errors over limit", NewErrorGate(0, SeverityCritical), ctx, GateFailed, "x.svg: bad"},
		{"viewbox partial", NewViewBoxGate(1, SeverityRequired), ctx, GateFailed, "c.svg"},
		{"viewbox relaxed", NewViewBoxGate(0.5, SeverityRequired), ctx, GatePassed, ""},
		{"viewbox empty", NewViewBoxGate(1, SeverityRequired), &EvalContext{}, GateSkipped, ""},
		{"size over", NewSizeGate(500, SeverityAdvisory), ctx, GateFailed, "react/B.tsx (900 bytes)"},
		{"size within", NewSizeGate(1000, SeverityAdvisory), ctx, GatePassed, ""},
		{"size disabled", NewSizeGate(0, SeverityAdvisory), ctx, GateSkipped, ""},
		{"theming", NewThemeGate(SeverityAdvisory), ctx, GateFailed, "b.svg [#000]"},
		{"theming empty", NewThemeGate(SeverityAdvisory), &EvalContext{}, GateSkipped, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := tt.gate.Evaluate(tt.ctx)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s (%s)", r.Status, tt.wantStatus, r.Message)
			}
			if r.Severity != tt.gate.Severity() {
				t.Errorf("severity = %s, want %s", r.Severity, tt.gate.Severity())
			}
			if tt.wantDetail != "" && (len(r.Details) == 0 || r.Details[0] != tt.wantDetail) {
				t.Errorf("details = %v, want first %q", r.Details, tt.wantDetail)
			}
		})
	}
}

type stubGate struct {
	name     string
	severity GateSeverity
	status   GateStatus
	err      error
}

func (g stubGate) Name() string           { return g.name }
func (g stubGate) Severity() GateSeverity { return g.severity }
func (g stubGate) Evaluate(*EvalContext) (*GateResult, error) {
	if g.err != nil {
		return nil, g.err
	}
	return &GateResult{Name: g.name, Severity: g.severity, Status: g.status}, nil
}

func TestPipeline_Run(t *testing.T) {
	tests := []struct {
		name      string
		gates     []Gate
		wantPass  bool
		wantCount [4]int // passed, failed, warning, skipped
	}{
		{
			name:      "all pass",
			gates:     []Gate{stubGate{"a", SeverityRequired, GatePassed, nil}, stubGate{"b", SeverityCritical, GatePassed, nil}},
			wantPass:  true,
			wantCount: [4]int{2, 0, 0, 0},
		},
		{
			name:      "advisory failure is a warning",
			gates:     []Gate{stubGate{"a", SeverityAdvisory, GateFailed, nil}},
			wantPass:  true,
			wantCount: [4]int{0, 0, 1, 0},
		},
		{
			name:      "required failure continues",
			gates:     []Gate{stubGate{"a", SeverityRequired, GateFailed, nil}, stubGate{"b", SeverityRequired, GatePassed, nil}},
			wantPass:  false,
			wantCount: [4]int{1, 1, 0, 0},
		},
		{
			name:      "critical failure skips the rest",
			gates:     []Gate{stubGate{"a", SeverityCritical, GateFailed, nil}, stubGate{"b", SeverityRequired, GatePassed, nil}, stubGate{"c", SeverityAdvisory, GatePassed, nil}},
			wantPass:  false,
			wantCount: [4]int{0, 1, 0, 2},
		},
		{
			name:      "evaluation error fails the gate",
			gates:     []Gate{stubGate{"a", SeverityRequired, "", errors.New("broken")}},
			wantPass:  false,
			wantCount: [4]int{0, 1, 0, 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewPipeline(tt.gates...).Run(&EvalContext{})
			if r.Passed() != tt.wantPass {
				t.Errorf("passed = %v, want %v (%s)", r.Passed(), tt.wantPass, r.Summary)
			}
			got := [4]int{r.PassedCount, r.FailedCount, r.WarningCount, r.SkippedCount}
			if got != tt.wantCount {
				t.Errorf("counts = %v, want %v", got, tt.wantCount)
			}
			if len(r.Gates) != len(tt.gates) {
				t.Errorf("got %d gate results, want %d", len(r.Gates), len(tt.gates))
			}
		})
	}
}

func TestBuildPipeline(t *testing.T) {
	if n := BuildPipeline(nil).Len(); n != 4 {
		t.Errorf("default pipeline has %d gates, want 4", n)
	}
	cfg := DefaultConfig()
	cfg.MaxErrors = -1
	cfg.ViewBoxRate = 0
	cfg.MaxComponentBytes = 0
	cfg.Theming = false
	if n := BuildPipeline(cfg).Len(); n != 0 {
		t.Errorf("disabled pipeline has %d gates, want 0", n)
	}
}

func TestFormatReport(t *testing.T) {
	ctx := &EvalContext{
		Documents: 1,
		Sources:   []SourceInfo{{Path: "flat.svg"}},
	}
	report := FormatReport(BuildPipeline(nil).Run(ctx))
	for _, want := range []string{"Quality gates", "viewbox", "[REQUIRED]", "flat.svg", "Result: FAILED"} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}
