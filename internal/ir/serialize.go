package ir

import "strings"

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// EscapeAttr applies the five standard XML entity substitutions.
func EscapeAttr(s string) string { return attrEscaper.Replace(s) }

// EscapeText escapes character data for XML element content.
func EscapeText(s string) string { return textEscaper.Replace(s) }

// Serializer renders nodes as XML-style markup with two spaces of indentation
// per level. Nil escape functions fall back to EscapeAttr and EscapeText.
//
// Elements whose children are all elements get one child per line. Elements
// holding any text child are rendered inline so text survives a re-parse
// unchanged.
type Serializer struct {
	EscapeAttr func(string) string
	EscapeText func(string) string
}

// Serialize renders n with the XML escaping rules.
func Serialize(n Node, indent int) string { return Serializer{}.Serialize(n, indent) }

// Serialize renders n starting at the given indentation level.
func (s Serializer) Serialize(n Node, indent int) string {
	if s.EscapeAttr == nil {
		s.EscapeAttr = EscapeAttr
	}
	if s.EscapeText == nil {
		s.EscapeText = EscapeText
	}
	var b strings.Builder
	s.writeNode(&b, n, indent)
	return b.String()
}

// SerializeDocument renders the document's root element.
func SerializeDocument(d *Document) string {
	if d == nil || d.Root == nil {
		return ""
	}
	return Serialize(d.Root, 0)
}

func (s Serializer) writeNode(b *strings.Builder, n Node, indent int) {
	switch t := n.(type) {
	case Text:
		b.WriteString(s.EscapeText(t.Value))
	case *Element:
		s.writeElement(b, t, indent)
	}
}

func (s Serializer) writeElement(b *strings.Builder, el *Element, indent int) {
	prefix := strings.Repeat("  ", indent)
	b.WriteString(prefix)
	s.writeOpenTag(b, el)
	if len(el.Children) == 0 {
		b.WriteString("/>")
		return
	}
	b.WriteString(">")

	if hasText(el) {
		for _, c := range el.Children {
			s.writeInline(b, c)
		}
	} else {
		for _, c := range el.Children {
			b.WriteString("\n")
			s.writeNode(b, c, indent+1)
		}
		b.WriteString("\n")
		b.WriteString(prefix)
	}
	b.WriteString("</")
	b.WriteString(el.Name)
	b.WriteString(">")
}

func (s Serializer) writeInline(b *strings.Builder, n Node) {
	switch t := n.(type) {
	case Text:
		b.WriteString(s.EscapeText(t.Value))
	case *Element:
		s.writeOpenTag(b, t)
		if len(t.Children) == 0 {
			b.WriteString("/>")
			return
		}
		b.WriteString(">")
		for _, c := range t.Children {
			s.writeInline(b, c)
		}
		b.WriteString("</")
		b.WriteString(t.Name)
		b.WriteString(">")
	}
}

func (s Serializer) writeOpenTag(b *strings.Builder, el *Element) {
	b.WriteString("<")
	b.WriteString(el.Name)
	for _, a := range el.Attrs {
		b.WriteString(" ")
		b.WriteString(a.Name)
		b.WriteString(`="`)
		b.WriteString(s.EscapeAttr(a.Value))
		b.WriteString(`"`)
	}
}

func hasText(el *Element) bool {
	for _, c := range el.Children {
		if _, ok := c.(Text); ok {
			return true
		}
	}
	return false
}
