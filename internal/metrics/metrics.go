// Package metrics collects per-run statistics for the generate command and
// renders them as a terminal report or JSON.
package metrics

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/efebarandurmaz/svgsmith/internal/convert"
)

// Colors matching the dark terminal theme.
const (
	ColorBorder = "#30363d"
	ColorBlue   = "#58a6ff"
	ColorGreen  = "#3fb950"
	ColorRed    = "#f85149"
	ColorYellow = "#d29922"
	ColorBg     = "#0d1117"
	ColorGray   = "#8b949e"
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorBorder)).
			Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorBlue))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)).Width(14)
	okBadge    = badge(ColorGreen)
	failBadge  = badge(ColorRed)
	skipBadge  = badge(ColorYellow)
)

func badge(color string) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(color)).
		Foreground(lipgloss.Color(ColorBg)).
		Padding(0, 1).
		Bold(true)
}

// RunMetrics collects statistics for one generate run.
type RunMetrics struct {
	StartedAt  time.Time                    `json:"started_at"`
	FinishedAt time.Time                    `json:"finished_at,omitempty"`
	Duration   time.Duration                `json:"duration_ms,omitempty"`
	Documents  int                          `json:"documents"`
	Converted  int                          `json:"converted"`
	Failed     int                          `json:"failed"`
	Skipped    int                          `json:"skipped"`
	Frameworks map[string]*FrameworkMetrics `json:"frameworks"`
	Written    []string                     `json:"written,omitempty"`
	Errors     []string                     `json:"errors,omitempty"`
}

type FrameworkMetrics struct {
	Components int `json:"components"`
	TotalBytes int `json:"total_bytes"`
}

// New starts tracking a run.
func New() *RunMetrics {
	return &RunMetrics{StartedAt: time.Now(), Frameworks: map[string]*FrameworkMetrics{}}
}

// Record adds one conversion outcome.
func (m *RunMetrics) Record(o convert.Outcome) {
	m.Documents++
	if o.Err != nil {
		m.Failed++
		m.Errors = append(m.Errors, o.Err.Error())
		return
	}
	m.Converted++
	for _, r := range o.Results {
		fm, ok := m.Frameworks[r.Framework]
		if !ok {
			fm = &FrameworkMetrics{}
			m.Frameworks[r.Framework] = fm
		}
		fm.Components++
		fm.TotalBytes += len(r.Code)
	}
}

// AddSkipped counts components left untouched because their source did not
// change.
func (m *RunMetrics) AddSkipped(n int) { m.Skipped += n }

// AddWritten records files written relative to the output directory.
func (m *RunMetrics) AddWritten(paths ...string) { m.Written = append(m.Written, paths...) }

// Finish marks the run as complete.
func (m *RunMetrics) Finish() {
	m.FinishedAt = time.Now()
	m.Duration = m.FinishedAt.Sub(m.StartedAt)
}

// PrintSummary writes a human-readable summary.
func (m *RunMetrics) PrintSummary(w io.Writer) {
	var b strings.Builder
	b.WriteString(titleStyle.Render("SVGSMITH RUN REPORT") + "\n\n")
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + value + "\n")
	}
	row("Duration", m.Duration.Round(time.Millisecond).String())
	row("Documents", fmt.Sprintf("%d", m.Documents))
	row("Files", fmt.Sprintf("%d written", len(m.Written)))
	row("Status", okBadge.Render(fmt.Sprintf("%d ok", m.Converted))+" "+
		failBadge.Render(fmt.Sprintf("%d failed", m.Failed))+" "+
		skipBadge.Render(fmt.Sprintf("%d unchanged", m.Skipped)))

	names := make([]string, 0, len(m.Frameworks))
	for name := range m.Frameworks {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) > 0 {
		b.WriteString("\n")
	}
	for _, name := range names {
		fm := m.Frameworks[name]
		row(name, fmt.Sprintf("%d components, %s", fm.Components, formatBytes(fm.TotalBytes)))
	}

	if len(m.Errors) > 0 {
		b.WriteString("\nErrors\n")
		for _, e := range m.Errors {
			b.WriteString("  • " + e + "\n")
		}
	}
	fmt.Fprintln(w, boxStyle.Render(strings.TrimRight(b.String(), "\n")))
}

// JSON returns the metrics as formatted JSON.
func (m *RunMetrics) JSON() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

func formatBytes(b int) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/float64(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
