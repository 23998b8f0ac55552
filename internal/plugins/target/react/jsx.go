package react

import (
	"strconv"
	"strings"

	"github.com/efebarandurmaz/svgsmith/internal/attrs"
	"github.com/efebarandurmaz/svgsmith/internal/codegen"
	"github.com/efebarandurmaz/svgsmith/internal/ir"
)

// Options controls JSX emission.
type Options struct {
	// WithProps wraps the markup in a props interface and a function
	// component, binding size and color on the root element.
	WithProps bool
	// ComponentName is the identifier of the generated component.
	ComponentName string
	// DefaultSize and DefaultColor are the prop defaults.
	DefaultSize  string
	DefaultColor string
	// JavaScript drops the TypeScript props interface and annotations.
	JavaScript bool
}

func (o Options) withDefaults() Options {
	if o.ComponentName == "" {
		o.ComponentName = "Icon"
	}
	if o.DefaultSize == "" {
		o.DefaultSize = "24"
	}
	if o.DefaultColor == "" {
		o.DefaultColor = "currentColor"
	}
	return o
}

var (
	jsxAttrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"{", "&#123;",
		"}", "&#125;",
	)
	jsxTextEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"{", "&#123;",
		"}", "&#125;",
	)
)

// EscapeAttr escapes a JSX string attribute value. Braces are escaped so the
// value never reads as an expression; single quotes are left alone.
func EscapeAttr(s string) string { return jsxAttrEscaper.Replace(s) }

// EscapeText escapes JSX child text.
func EscapeText(s string) string { return jsxTextEscaper.Replace(s) }

// Emit renders root as JSX. Without props the result is the bare JSX
// expression; with props it is a props interface plus a function component
// returning the expression.
func Emit(root *ir.Element, opts Options) string {
	e := &emitter{opts: opts.withDefaults()}
	if !e.opts.WithProps {
		return e.markup(root, 0)
	}
	return e.component(root)
}

// Module renders the complete source file for root: the React import, the
// component and its default export. It also returns the attribute names
// that collided while renaming.
func Module(root *ir.Element, opts Options) (string, []attrs.Collision) {
	e := &emitter{opts: opts.withDefaults()}
	var b strings.Builder
	b.WriteString("import * as React from \"react\";\n\n")
	b.WriteString(e.component(root))
	b.WriteString("\nexport default " + e.opts.ComponentName + ";\n")
	return b.String(), e.collisions
}

type emitter struct {
	opts       Options
	collisions []attrs.Collision
}

func (e *emitter) markup(root *ir.Element, indent int) string {
	var b strings.Builder
	e.writeElement(&b, root, indent, true)
	return b.String()
}

// component renders the function component. Without props it takes no
// arguments and returns the markup unchanged.
func (e *emitter) component(root *ir.Element) string {
	name := e.opts.ComponentName
	propsType := name + "Props"

	var b strings.Builder
	if !e.opts.WithProps {
		b.WriteString("export function " + name + "() {\n")
		b.WriteString("  return (\n")
		b.WriteString(e.markup(root, 2))
		b.WriteString("\n  );\n}\n")
		return b.String()
	}
	if !e.opts.JavaScript {
		b.WriteString("export interface " + propsType + " extends React.SVGProps<SVGSVGElement> {\n")
		b.WriteString("  size?: number | string;\n")
		b.WriteString("  color?: string;\n")
		b.WriteString("}\n\n")
	}
	b.WriteString("export function " + name + "({ size = " + codegen.Value(e.opts.DefaultSize) +
		", color = " + codegen.String(e.opts.DefaultColor) + ", ...props }")
	if !e.opts.JavaScript {
		b.WriteString(": " + propsType)
	}
	b.WriteString(") {\n")
	b.WriteString("  return (\n")
	b.WriteString(e.markup(root, 2))
	b.WriteString("\n  );\n")
	b.WriteString("}\n")
	return b.String()
}

func (e *emitter) writeElement(b *strings.Builder, el *ir.Element, indent int, root bool) {
	prefix := strings.Repeat("  ", indent)
	b.WriteString(prefix)
	b.WriteString("<")
	b.WriteString(el.Name)

	var formatted []string
	if root && e.opts.WithProps {
		formatted = e.rootAttributes(el)
	} else {
		formatted = e.attributes(el.Attrs, nil)
	}
	for _, a := range formatted {
		b.WriteString(" ")
		b.WriteString(a)
	}

	if len(el.Children) == 0 {
		b.WriteString(" />")
		return
	}
	b.WriteString(">\n")
	for _, c := range el.Children {
		switch n := c.(type) {
		case *ir.Element:
			e.writeElement(b, n, indent+1, false)
		case ir.Text:
			b.WriteString(prefix + "  ")
			b.WriteString(EscapeText(n.Value))
		}
		b.WriteString("\n")
	}
	b.WriteString(prefix)
	b.WriteString("</")
	b.WriteString(el.Name)
	b.WriteString(">")
}

// rootAttributes binds size and color props on the root: width and height
// always become {size}, fill becomes {color} unless it is "none", and the
// remaining props are spread last so callers override generated values.
func (e *emitter) rootAttributes(el *ir.Element) []string {
	out := []string{"width={size}", "height={size}"}
	skip := map[string]bool{"width": true, "height": true}
	if fill, ok := el.Attrs.Get("fill"); ok && fill != "none" {
		out = append(out, "fill={color}")
		skip["fill"] = true
	}
	out = append(out, e.attributes(el.Attrs, skip)...)
	return append(out, "{...props}")
}

func (e *emitter) attributes(in ir.Attributes, skip map[string]bool) []string {
	transformed, collisions := attrs.TransformAttributes(in, attrs.React)
	e.collisions = append(e.collisions, collisions...)

	out := make([]string, 0, len(transformed))
	for _, a := range transformed {
		if skip[a.Name] {
			continue
		}
		out = append(out, FormatAttribute(a.Name, a.Value))
	}
	return out
}

// FormatAttribute renders one JSX attribute whose name is already in React
// form: style becomes an object literal, numeric literals become bare
// numbers, everything else a quoted string.
func FormatAttribute(name, value string) string {
	switch {
	case name == "style":
		return "style={" + StyleObject(attrs.TransformStyleString(value)) + "}"
	case attrs.IsNumericLiteral(value):
		return name + "={" + codegen.Number(value) + "}"
	default:
		return name + `="` + EscapeAttr(value) + `"`
	}
}

// StyleObject renders a style as a JavaScript object literal.
func StyleObject(s attrs.Style) string {
	if len(s) == 0 {
		return "{}"
	}
	parts := make([]string, 0, len(s))
	for _, d := range s {
		key := d.Property
		if !codegen.IsIdentifier(key) {
			key = codegen.String(key)
		}
		var val string
		switch v := d.Value.(type) {
		case float64:
			val = strconv.FormatFloat(v, 'f', -1, 64)
		case string:
			val = codegen.String(v)
		}
		parts = append(parts, key+": "+val)
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}
