package metrics

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/efebarandurmaz/svgsmith/internal/convert"
)

func sampleRun() *RunMetrics {
	m := New()
	m.Record(convert.Outcome{Results: []convert.Result{
		{Framework: "react", Code: strings.Repeat("x", 2048)},
		{Framework: "vue", Code: "abc"},
	}})
	m.Record(convert.Outcome{Results: []convert.Result{{Framework: "react", Code: "y"}}})
	m.Record(convert.Outcome{Err: errors.New("broken.svg: invalid document")})
	m.AddSkipped(4)
	m.AddWritten("react/A.tsx", "react/index.ts")
	m.Finish()
	return m
}

func TestRecord(t *testing.T) {
	m := sampleRun()
	if m.Documents != 3 || m.Converted != 2 || m.Failed != 1 || m.Skipped != 4 {
		t.Errorf("unexpected counts %+v", m)
	}
	if fm := m.Frameworks["react"]; fm.Components != 2 || fm.TotalBytes != 2049 {
		t.Errorf("unexpected react metrics %+v", fm)
	}
	if m.Duration < 0 || m.FinishedAt.Before(m.StartedAt) {
		t.Error("finish should set a non-negative duration")
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	sampleRun().PrintSummary(&buf)
	out := buf.String()
	for _, want := range []string{
		"SVGSMITH RUN REPORT",
		"2 ok", "1 failed", "4 unchanged",
		"2 written",
		"2 components, 2.0 KB",
		"1 components, 3 B",
		"broken.svg: invalid document",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "react") > strings.Index(out, "vue") {
		t.Error("frameworks should be listed in sorted order")
	}
}

func TestJSON(t *testing.T) {
	data, err := sampleRun().JSON()
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["documents"].(float64) != 3 {
		t.Errorf("unexpected documents %v", decoded["documents"])
	}
	if _, ok := decoded["frameworks"].(map[string]any)["vue"]; !ok {
		t.Errorf("missing vue framework entry: %s", data)
	}
}
