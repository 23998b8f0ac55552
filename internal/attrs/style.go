package attrs

import (
	"math"
	"strconv"
	"strings"
)

// Declaration is a single style property. Value is a float64 when the source
// text round-trips through numeric parsing, otherwise a string.
type Declaration struct {
	Property string
	Value    any
}

// Style is an ordered style object.
type Style []Declaration

// Get returns the value of property.
func (s Style) Get(property string) (any, bool) {
	for _, d := range s {
		if d.Property == property {
			return d.Value, true
		}
	}
	return nil, false
}

// TransformStyleString parses a "prop: value; ..." style attribute into a
// style object keyed by camelCase property names. Declarations without a
// colon or with an empty property or value are skipped. A repeated property
// keeps its first position and its last value.
func TransformStyleString(css string) Style {
	var out Style
	for _, decl := range splitDeclarations(css) {
		prop, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		prop = strings.TrimSpace(prop)
		value = strings.TrimSpace(value)
		if prop == "" || value == "" {
			continue
		}
		out = out.set(cssPropertyName(prop), styleValue(value))
	}
	return out
}

func (s Style) set(property string, value any) Style {
	for i := range s {
		if s[i].Property == property {
			s[i].Value = value
			return s
		}
	}
	return append(s, Declaration{Property: property, Value: value})
}

func styleValue(v string) any {
	if f, ok := roundTripNumber(v); ok {
		return f
	}
	return v
}

// roundTripNumber parses v as a number only when formatting the result gives
// back exactly v.
func roundTripNumber(v string) (float64, bool) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	if f == 0 && math.Signbit(f) {
		return 0, false
	}
	if strconv.FormatFloat(f, 'f', -1, 64) != v {
		return 0, false
	}
	return f, true
}

// splitDeclarations splits on semicolons outside quotes and parentheses.
func splitDeclarations(css string) []string {
	var (
		out   []string
		depth int
		quote byte
		start int
	)
	for i := 0; i < len(css); i++ {
		c := css[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
				continue
			}
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(':
			depth++
		case c == ')':
			if depth > 0 {
				depth--
			}
		case c == ';' && depth == 0:
			out = append(out, css[start:i])
			start = i + 1
		}
	}
	return append(out, css[start:])
}

// cssPropertyName converts a CSS property to its DOM style name:
// stroke-width → strokeWidth, -webkit-mask → WebkitMask, -ms-grid → msGrid.
// Custom properties are kept verbatim.
func cssPropertyName(p string) string {
	if strings.HasPrefix(p, "--") {
		return p
	}
	p = strings.ToLower(p)
	if strings.HasPrefix(p, "-ms-") {
		p = p[1:]
	}

	var b strings.Builder
	upper := false
	for _, r := range p {
		if r == '-' {
			upper = true
			continue
		}
		if upper {
			b.WriteString(strings.ToUpper(string(r)))
			upper = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
