package vue

import (
	"strings"

	"github.com/efebarandurmaz/svgsmith/internal/attrs"
	"github.com/efebarandurmaz/svgsmith/internal/codegen"
	"github.com/efebarandurmaz/svgsmith/internal/ir"
)

// Options controls single-file component emission.
type Options struct {
	// WithProps declares size and color props. The structural emitter also
	// binds them on the root element.
	WithProps bool
	// DefaultSize and DefaultColor are the prop defaults.
	DefaultSize  string
	DefaultColor string
	// JavaScript emits a runtime props declaration instead of a typed one.
	JavaScript bool
}

func (o Options) withDefaults() Options {
	if o.DefaultSize == "" {
		o.DefaultSize = "24"
	}
	if o.DefaultColor == "" {
		o.DefaultColor = "currentColor"
	}
	return o
}

var mustacheEscaper = strings.NewReplacer("{{", "&#123;&#123;")

// EscapeText escapes template text so it is never read as an interpolation.
func EscapeText(s string) string { return mustacheEscaper.Replace(ir.EscapeText(s)) }

// Wrap places already serialized markup verbatim inside a template block.
// With props a script block declaring size and color is prepended; the
// markup itself is left untouched.
func Wrap(markup string, opts Options) string {
	opts = opts.withDefaults()
	var b strings.Builder
	if opts.WithProps {
		b.WriteString(script(opts))
		b.WriteString("\n")
	}
	b.WriteString("<template>\n")
	b.WriteString(markup)
	b.WriteString("\n</template>\n")
	return b.String()
}

// Emit walks root and renders a complete single-file component. With props
// the root binds :width and :height to size and :fill to color unless the
// source fill is "none".
func Emit(root *ir.Element, opts Options) string {
	opts = opts.withDefaults()
	s := ir.Serializer{EscapeAttr: ir.EscapeAttr, EscapeText: EscapeText}

	var b strings.Builder
	if opts.WithProps {
		b.WriteString(script(opts))
		b.WriteString("\n")
	}
	b.WriteString("<template>\n")
	b.WriteString(s.Serialize(bindRoot(root, opts.WithProps), 1))
	b.WriteString("\n</template>\n")
	return b.String()
}

// bindRoot returns a shallow copy of root carrying the template attribute
// list. Children are shared, root is never modified.
func bindRoot(root *ir.Element, withProps bool) *ir.Element {
	list, _ := attrs.TransformAttributes(root.Attrs, attrs.Vue)
	if !withProps {
		return &ir.Element{Name: root.Name, Attrs: list, Children: root.Children}
	}

	bound := ir.Attributes{{Name: ":width", Value: "size"}, {Name: ":height", Value: "size"}}
	skip := map[string]bool{"width": true, "height": true}
	if fill, ok := list.Get("fill"); ok && fill != "none" {
		bound = append(bound, ir.Attr{Name: ":fill", Value: "color"})
		skip["fill"] = true
	}
	for _, a := range list {
		if !skip[a.Name] {
			bound = append(bound, a)
		}
	}
	return &ir.Element{Name: root.Name, Attrs: bound, Children: root.Children}
}

func script(opts Options) string {
	size := codegen.Value(opts.DefaultSize)
	color := codegen.String(opts.DefaultColor)

	var b strings.Builder
	if opts.JavaScript {
		b.WriteString("<script setup>\n")
		b.WriteString("defineProps({\n")
		b.WriteString("  size: { type: [Number, String], default: " + size + " },\n")
		b.WriteString("  color: { type: String, default: " + color + " },\n")
		b.WriteString("});\n")
	} else {
		b.WriteString("<script setup lang=\"ts\">\n")
		b.WriteString("withDefaults(defineProps<{\n")
		b.WriteString("  size?: number | string;\n")
		b.WriteString("  color?: string;\n")
		b.WriteString("}>(), {\n")
		b.WriteString("  size: " + size + ",\n")
		b.WriteString("  color: " + color + ",\n")
		b.WriteString("});\n")
	}
	b.WriteString("</script>\n")
	return b.String()
}
