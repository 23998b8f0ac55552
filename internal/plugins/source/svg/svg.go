// Package svg parses SVG markup into the ir document model.
package svg

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/efebarandurmaz/svgsmith/internal/ir"
	"github.com/efebarandurmaz/svgsmith/internal/plugins"
)

// RootName is the tag name of the document root.
const RootName = "svg"

var (
	// ErrInvalidDocument is returned when the input does not contain an svg
	// element or is not well-formed markup.
	ErrInvalidDocument = errors.New("invalid svg document")
	// ErrMissingRootElement is returned when no top-level svg element exists
	// after parsing.
	ErrMissingRootElement = errors.New("missing svg root element")
)

var (
	svgElementPattern = regexp.MustCompile(`(?s)<svg(?:\s[^>]*)?(?:/>|>.*</svg\s*>)`)
	cdataPattern      = regexp.MustCompile(`(?s)<!\[CDATA\[.*?\]\]>`)
)

// Plugin implements SourcePlugin for SVG.
type Plugin struct{}

func New() *Plugin { return &Plugin{} }

func (p *Plugin) Format() string { return "svg" }

func (p *Plugin) FileExtensions() []string { return []string{".svg"} }

func (p *Plugin) Parse(ctx context.Context, file plugins.SourceFile) (*ir.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := Parse(string(file.Content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file.Path, err)
	}
	return doc, nil
}

// Parse builds a Document from SVG markup. Attributes are copied verbatim,
// whitespace-only text is dropped, and comments, CDATA, doctype and
// processing instructions never reach the tree.
func Parse(markup string) (*ir.Document, error) {
	if !svgElementPattern.MatchString(markup) {
		return nil, ErrInvalidDocument
	}

	top, err := buildTree(cdataPattern.ReplaceAllString(markup, ""))
	if err != nil {
		return nil, err
	}
	for _, n := range top {
		if el, ok := n.(*ir.Element); ok && el.Name == RootName {
			return &ir.Document{Root: el}, nil
		}
	}
	return nil, ErrMissingRootElement
}

func buildTree(markup string) ([]ir.Node, error) {
	d := xml.NewDecoder(strings.NewReader(markup))
	d.Strict = true
	d.Entity = xml.HTMLEntity
	d.CharsetReader = charset.NewReaderLabel

	var (
		top   []ir.Node
		stack []*ir.Element
	)
	appendChild := func(n ir.Node) {
		if len(stack) == 0 {
			top = append(top, n)
			return
		}
		parent := stack[len(stack)-1]
		// Text split by a dropped comment or PI is one run.
		if t, ok := n.(ir.Text); ok && len(parent.Children) > 0 {
			if prev, ok := parent.Children[len(parent.Children)-1].(ir.Text); ok {
				parent.Children[len(parent.Children)-1] = ir.Text{Value: prev.Value + t.Value}
				return
			}
		}
		parent.Children = append(parent.Children, n)
	}

	for {
		tok, err := d.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &ir.Element{Name: qualifiedName(t.Name)}
			for _, a := range t.Attr {
				el.Attrs.Set(qualifiedName(a.Name), a.Value)
			}
			appendChild(el)
			stack = append(stack, el)
		case xml.EndElement:
			name := qualifiedName(t.Name)
			if len(stack) == 0 || stack[len(stack)-1].Name != name {
				return nil, fmt.Errorf("%w: unexpected end element </%s>", ErrInvalidDocument, name)
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			s := string(t)
			if strings.TrimSpace(s) == "" {
				continue
			}
			appendChild(ir.Text{Value: s})
		case xml.Comment, xml.ProcInst, xml.Directive:
			// dropped
		}
	}

	if len(stack) > 0 {
		return nil, fmt.Errorf("%w: unclosed element <%s>", ErrInvalidDocument, stack[len(stack)-1].Name)
	}
	return top, nil
}

// qualifiedName keeps prefixes as written, e.g. xlink:href.
func qualifiedName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}
