// Package ir holds the framework-agnostic document model produced by source
// plugins and consumed by the attribute transformer and target plugins.
package ir

// Node is an element or a text node of a parsed document.
type Node interface {
	node()
}

// Element is an element node. Children never contains nil.
type Element struct {
	Name     string
	Attrs    Attributes
	Children []Node
}

func (*Element) node() {}

// Text is a text node. Value is the raw, unescaped text content.
type Text struct {
	Value string
}

func (Text) node() {}

// Attr is a single attribute with its unescaped value.
type Attr struct {
	Name  string
	Value string
}

// Attributes is an insertion-ordered attribute list with unique names.
type Attributes []Attr

// Get returns the value of the named attribute.
func (a Attributes) Get(name string) (string, bool) {
	for _, at := range a {
		if at.Name == name {
			return at.Value, true
		}
	}
	return "", false
}

// Has reports whether the named attribute is present.
func (a Attributes) Has(name string) bool {
	_, ok := a.Get(name)
	return ok
}

// Set replaces the value of an existing attribute in place or appends a new
// one, keeping names unique.
func (a *Attributes) Set(name, value string) {
	for i := range *a {
		if (*a)[i].Name == name {
			(*a)[i].Value = value
			return
		}
	}
	*a = append(*a, Attr{Name: name, Value: value})
}

// Delete removes the named attribute if present.
func (a *Attributes) Delete(name string) {
	for i := range *a {
		if (*a)[i].Name == name {
			*a = append((*a)[:i], (*a)[i+1:]...)
			return
		}
	}
}

// Names returns attribute names in order.
func (a Attributes) Names() []string {
	names := make([]string, len(a))
	for i, at := range a {
		names[i] = at.Name
	}
	return names
}

// Clone returns a copy that shares no backing storage with a.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	out := make(Attributes, len(a))
	copy(out, a)
	return out
}

// Document is a parsed SVG document with a single root element.
type Document struct {
	Root *Element
}

// ViewBox returns the root's viewBox attribute.
func (d *Document) ViewBox() string { return d.rootAttr("viewBox") }

// Width returns the root's width attribute.
func (d *Document) Width() string { return d.rootAttr("width") }

// Height returns the root's height attribute.
func (d *Document) Height() string { return d.rootAttr("height") }

func (d *Document) rootAttr(name string) string {
	if d == nil || d.Root == nil {
		return ""
	}
	v, _ := d.Root.Attrs.Get(name)
	return v
}

// Walk calls fn for n and every descendant in document order. Returning false
// from fn skips the node's children.
func Walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	if el, ok := n.(*Element); ok {
		for _, c := range el.Children {
			Walk(c, fn)
		}
	}
}

// Equal reports whether a and b are structurally equal: same tag names,
// attribute lists, child order and text values.
func Equal(a, b Node) bool {
	switch x := a.(type) {
	case Text:
		y, ok := b.(Text)
		return ok && x.Value == y.Value
	case *Element:
		y, ok := b.(*Element)
		if !ok {
			return false
		}
		if x == nil || y == nil {
			return x == y
		}
		if x.Name != y.Name || len(x.Attrs) != len(y.Attrs) || len(x.Children) != len(y.Children) {
			return false
		}
		for i := range x.Attrs {
			if x.Attrs[i] != y.Attrs[i] {
				return false
			}
		}
		for i := range x.Children {
			if !Equal(x.Children[i], y.Children[i]) {
				return false
			}
		}
		return true
	default:
		return a == nil && b == nil
	}
}
