package optimizer

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/efebarandurmaz/svgsmith/internal/ir"
)

// Token is a copied raw XML token: xml.StartElement, xml.EndElement,
// xml.CharData, xml.Comment, xml.ProcInst or xml.Directive.
type Token = xml.Token

// Tokenize splits markup into raw tokens. Namespace prefixes are kept as
// written.
func Tokenize(markup string) ([]Token, error) {
	dec := xml.NewDecoder(strings.NewReader(markup))
	dec.Strict = true
	dec.Entity = xml.HTMLEntity
	dec.CharsetReader = charset.NewReaderLabel

	var out []Token
	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		out = append(out, xml.CopyToken(tok))
	}
}

// Render writes tokens back as markup. A start tag directly followed by its
// end tag is self-closed.
func Render(tokens []Token) string {
	var b strings.Builder
	for i := 0; i < len(tokens); i++ {
		switch t := tokens[i].(type) {
		case xml.StartElement:
			b.WriteString("<" + qualified(t.Name))
			for _, a := range t.Attr {
				b.WriteString(" " + qualified(a.Name) + `="` + ir.EscapeAttr(a.Value) + `"`)
			}
			if i+1 < len(tokens) {
				if end, ok := tokens[i+1].(xml.EndElement); ok && end.Name == t.Name {
					b.WriteString("/>")
					i++
					continue
				}
			}
			b.WriteString(">")
		case xml.EndElement:
			b.WriteString("</" + qualified(t.Name) + ">")
		case xml.CharData:
			b.WriteString(ir.EscapeText(string(t)))
		case xml.Comment:
			b.WriteString("<!--" + string(t) + "-->")
		case xml.ProcInst:
			b.WriteString("<?" + t.Target)
			if len(t.Inst) > 0 {
				b.WriteString(" " + string(t.Inst))
			}
			b.WriteString("?>")
		case xml.Directive:
			b.WriteString("<!" + string(t) + ">")
		}
	}
	return b.String()
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}
