package qualitygate

import (
	"fmt"
	"strings"
)

// GateConfig selects and tunes the gates. Zero thresholds disable a gate.
type GateConfig struct {
	Enabled bool `mapstructure:"enabled" json:"enabled"`

	MaxErrors     int    `mapstructure:"max_errors" json:"max_errors" validate:"gte=-1"`
	ErrorSeverity string `mapstructure:"error_severity" json:"error_severity" validate:"omitempty,oneof=critical required advisory"`

	ViewBoxRate     float64 `mapstructure:"viewbox_rate" json:"viewbox_rate" validate:"gte=0,lte=1"`
	ViewBoxSeverity string  `mapstructure:"viewbox_severity" json:"viewbox_severity" validate:"omitempty,oneof=critical required advisory"`

	MaxComponentBytes int    `mapstructure:"max_component_bytes" json:"max_component_bytes" validate:"gte=0"`
	SizeSeverity      string `mapstructure:"size_severity" json:"size_severity" validate:"omitempty,oneof=critical required advisory"`

	Theming         bool   `mapstructure:"theming" json:"theming"`
	ThemingSeverity string `mapstructure:"theming_severity" json:"theming_severity" validate:"omitempty,oneof=critical required advisory"`
}

func DefaultConfig() *GateConfig {
	return &GateConfig{
		Enabled:           false,
		MaxErrors:         0,
		ErrorSeverity:     "critical",
		ViewBoxRate:       1.0,
		ViewBoxSeverity:   "required",
		MaxComponentBytes: 16 * 1024,
		SizeSeverity:      "advisory",
		Theming:           true,
		ThemingSeverity:   "advisory",
	}
}

func parseSeverity(s string) GateSeverity {
	switch s {
	case "critical":
		return SeverityCritical
	case "advisory":
		return SeverityAdvisory
	default:
		return SeverityRequired
	}
}

// BuildPipeline constructs the gate pipeline for cfg. A negative MaxErrors
// disables the error gate.
func BuildPipeline(cfg *GateConfig) *Pipeline {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	p := NewPipeline()
	if cfg.MaxErrors >= 0 {
		p.AddGate(NewErrorGate(cfg.MaxErrors, parseSeverity(cfg.ErrorSeverity)))
	}
	if cfg.ViewBoxRate > 0 {
		p.AddGate(NewViewBoxGate(cfg.ViewBoxRate, parseSeverity(cfg.ViewBoxSeverity)))
	}
	if cfg.MaxComponentBytes > 0 {
		p.AddGate(NewSizeGate(cfg.MaxComponentBytes, parseSeverity(cfg.SizeSeverity)))
	}
	if cfg.Theming {
		p.AddGate(NewThemeGate(parseSeverity(cfg.ThemingSeverity)))
	}
	return p
}

// FormatReport renders result for a terminal.
func FormatReport(result *PipelineResult) string {
	var b strings.Builder
	b.WriteString("Quality gates\n")
	for _, gr := range result.Gates {
		icon := "✓"
		switch gr.Status {
		case GateFailed:
			icon = "✗"
		case GateSkipped:
			icon = "○"
		case GateWarning:
			icon = "!"
		}
		fmt.Fprintf(&b, "  %s %-8s [%s] %s\n", icon, gr.Name, strings.ToUpper(string(gr.Severity)), gr.Message)
		for _, d := range gr.Details {
			fmt.Fprintf(&b, "      %s\n", d)
		}
	}
	status := "PASSED"
	if !result.Passed() {
		status = "FAILED"
	}
	fmt.Fprintf(&b, "  Result: %s (%s)\n", status, result.Summary)
	return b.String()
}
