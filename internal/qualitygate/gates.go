package qualitygate

import "fmt"

// ErrorGate limits the number of documents that failed to convert.
type ErrorGate struct {
	MaxErrors int
	severity  GateSeverity
}

func NewErrorGate(maxErrors int, severity GateSeverity) *ErrorGate {
	return &ErrorGate{MaxErrors: maxErrors, severity: severity}
}

func (g *ErrorGate) Name() string           { return "errors" }
func (g *ErrorGate) Severity() GateSeverity { return g.severity }
func (g *ErrorGate) Evaluate(ctx *EvalContext) (*GateResult, error) {
	r := &GateResult{Name: g.Name(), Severity: g.severity, Score: 1}
	if ctx.Documents > 0 {
		r.Score = 1 - float64(len(ctx.Failures))/float64(ctx.Documents)
	}

	if n := len(ctx.Failures); n <= g.MaxErrors {
		r.Status = GatePassed
		r.Message = fmt.Sprintf("%d failed documents within limit %d", n, g.MaxErrors)
	} else {
		r.Status = GateFailed
		r.Message = fmt.Sprintf("%d failed documents exceed limit %d", n, g.MaxErrors)
		r.Details = ctx.Failures
	}
	return r, nil
}

// ViewBoxGate requires a share of the sources to declare a viewBox, without
// which a component cannot be resized through the size prop.
type ViewBoxGate struct {
	MinRate  float64
	severity GateSeverity
}

func NewViewBoxGate(minRate float64, severity GateSeverity) *ViewBoxGate {
	return &ViewBoxGate{MinRate: minRate, severity: severity}
}

func (g *ViewBoxGate) Name() string           { return "viewbox" }
func (g *ViewBoxGate) Severity() GateSeverity { return g.severity }
func (g *ViewBoxGate) Evaluate(ctx *EvalContext) (*GateResult, error) {
	r := &GateResult{Name: g.Name(), Severity: g.severity, Threshold: g.MinRate}
	if len(ctx.Sources) == 0 {
		r.Status = GateSkipped
		r.Message = "No converted documents"
		return r, nil
	}

	var missing []string
	for _, s := range ctx.Sources {
		if !s.ViewBox {
			missing = append(missing, s.Path)
		}
	}
	r.Score = 1 - float64(len(missing))/float64(len(ctx.Sources))
	if r.Score >= g.MinRate {
		r.Status = GatePassed
		r.Message = fmt.Sprintf("%.0f%% of documents declare a viewBox", r.Score*100)
	} else {
		r.Status = GateFailed
		r.Message = fmt.Sprintf("%d of %d documents have no viewBox", len(missing), len(ctx.Sources))
		r.Details = missing
	}
	return r, nil
}

// SizeGate flags generated components larger than MaxBytes.
type SizeGate struct {
	MaxBytes int
	severity GateSeverity
}

func NewSizeGate(maxBytes int, severity GateSeverity) *SizeGate {
	return &SizeGate{MaxBytes: maxBytes, severity: severity}
}

func (g *SizeGate) Name() string           { return "size" }
func (g *SizeGate) Severity() GateSeverity { return g.severity }
func (g *SizeGate) Evaluate(ctx *EvalContext) (*GateResult, error) {
	r := &GateResult{Name: g.Name(), Severity: g.severity, Threshold: float64(g.MaxBytes)}
	if g.MaxBytes <= 0 || len(ctx.Components) == 0 {
		r.Status = GateSkipped
		r.Message = "No size limit or no components"
		return r, nil
	}

	largest := 0
	var over []string
	for _, c := range ctx.Components {
		largest = max(largest, c.Bytes)
		if c.Bytes > g.MaxBytes {
			over = append(over, fmt.Sprintf("%s (%d bytes)", c.Path, c.Bytes))
		}
	}
	r.Score = 1 - float64(len(over))/float64(len(ctx.Components))
	if len(over) == 0 {
		r.Status = GatePassed
		r.Message = fmt.Sprintf("Largest component %d bytes within limit %d", largest, g.MaxBytes)
	} else {
		r.Status = GateFailed
		r.Message = fmt.Sprintf("%d components exceed %d bytes", len(over), g.MaxBytes)
		r.Details = over
	}
	return r, nil
}

// ThemeGate flags sources whose nested shapes paint with fixed colors that
// the color prop cannot override.
type ThemeGate struct {
	severity GateSeverity
}

func NewThemeGate(severity GateSeverity) *ThemeGate {
	return &ThemeGate{severity: severity}
}

func (g *ThemeGate) Name() string           { return "theming" }
func (g *ThemeGate) Severity() GateSeverity { return g.severity }
func (g *ThemeGate) Evaluate(ctx *EvalContext) (*GateResult, error) {
	r := &GateResult{Name: g.Name(), Severity: g.severity, Threshold: 1}
	if len(ctx.Sources) == 0 {
		r.Status = GateSkipped
		r.Message = "No converted documents"
		return r, nil
	}

	var fixed []string
	for _, s := range ctx.Sources {
		if len(s.Colors) > 0 {
			fixed = append(fixed, fmt.Sprintf("%s %v", s.Path, s.Colors))
		}
	}
	r.Score = 1 - float64(len(fixed))/float64(len(ctx.Sources))
	if len(fixed) == 0 {
		r.Status = GatePassed
		r.Message = "All shapes follow the color prop"
	} else {
		r.Status = GateFailed
		r.Message = fmt.Sprintf("%d documents use hard-coded colors", len(fixed))
		r.Details = fixed
	}
	return r, nil
}
