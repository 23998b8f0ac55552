package optimizer

import (
	"encoding/xml"
	"regexp"
	"strconv"
	"strings"
)

var (
	urlRefPattern      = regexp.MustCompile(`url\(\s*['"]?#([^'")\s]+)`)
	cssIDSelector      = regexp.MustCompile(`#([A-Za-z_][A-Za-z0-9_-]*)`)
	dimensionUnitsTrim = strings.NewReplacer("px", "")
)

func removeXMLDecl(in []Token) []Token {
	out := in[:0:0]
	for _, tok := range in {
		if pi, ok := tok.(xml.ProcInst); ok && pi.Target == "xml" {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// removeNamespaces drops xmlns and xmlns:* declarations from every element.
// Prefixed names elsewhere are left as written.
func removeNamespaces(in []Token) []Token {
	out := make([]Token, 0, len(in))
	for _, tok := range in {
		se, ok := tok.(xml.StartElement)
		if !ok {
			out = append(out, tok)
			continue
		}
		kept := se.Attr[:0:0]
		for _, a := range se.Attr {
			if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
				continue
			}
			kept = append(kept, a)
		}
		se.Attr = kept
		out = append(out, se)
	}
	return out
}

func removeComments(in []Token) []Token {
	out := in[:0:0]
	for _, tok := range in {
		if _, ok := tok.(xml.Comment); ok {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// dropElements removes unprefixed elements with the given local names along
// with their subtrees.
func dropElements(names ...string) func([]Token) []Token {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	return func(in []Token) []Token {
		out := in[:0:0]
		depth := 0
		for _, tok := range in {
			if depth > 0 {
				switch tok.(type) {
				case xml.StartElement:
					depth++
				case xml.EndElement:
					depth--
				}
				continue
			}
			if se, ok := tok.(xml.StartElement); ok && se.Name.Space == "" && drop[se.Name.Local] {
				depth = 1
				continue
			}
			out = append(out, tok)
		}
		return out
	}
}

// removeDimensions strips width and height from the root svg element. When
// the root has no viewBox and both dimensions are plain numbers, a viewBox is
// derived from them so the drawing keeps its coordinate system.
func removeDimensions(in []Token) []Token {
	out := make([]Token, len(in))
	copy(out, in)
	for i, tok := range out {
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Space != "" || se.Name.Local != "svg" {
			return out
		}

		var width, height string
		hasViewBox := false
		kept := make([]xml.Attr, 0, len(se.Attr))
		for _, a := range se.Attr {
			switch {
			case a.Name.Space != "":
				kept = append(kept, a)
			case a.Name.Local == "width":
				width = a.Value
			case a.Name.Local == "height":
				height = a.Value
			case a.Name.Local == "viewBox":
				hasViewBox = true
				kept = append(kept, a)
			default:
				kept = append(kept, a)
			}
		}
		if !hasViewBox {
			w, werr := strconv.ParseFloat(dimensionUnitsTrim.Replace(width), 64)
			h, herr := strconv.ParseFloat(dimensionUnitsTrim.Replace(height), 64)
			if werr != nil || herr != nil {
				// Without a viewBox the dimensions cannot be dropped safely.
				return out
			}
			kept = append(kept, xml.Attr{
				Name:  xml.Name{Local: "viewBox"},
				Value: "0 0 " + strconv.FormatFloat(w, 'f', -1, 64) + " " + strconv.FormatFloat(h, 'f', -1, 64),
			})
		}
		se.Attr = kept
		out[i] = se
		return out
	}
	return out
}

// cleanupIDs removes id attributes that nothing in the document references.
// References are href="#id" (any prefix), url(#id) in attribute values and
// url(#id) or #id selectors inside style elements.
func cleanupIDs(in []Token) []Token {
	refs := map[string]bool{}
	inStyle := 0
	for _, tok := range in {
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "style" {
				inStyle++
			}
			for _, a := range t.Attr {
				if a.Name.Local == "href" && strings.HasPrefix(a.Value, "#") {
					refs[a.Value[1:]] = true
				}
				for _, m := range urlRefPattern.FindAllStringSubmatch(a.Value, -1) {
					refs[m[1]] = true
				}
			}
		case xml.EndElement:
			if t.Name.Local == "style" && inStyle > 0 {
				inStyle--
			}
		case xml.CharData:
			if inStyle == 0 {
				continue
			}
			for _, m := range urlRefPattern.FindAllStringSubmatch(string(t), -1) {
				refs[m[1]] = true
			}
			for _, m := range cssIDSelector.FindAllStringSubmatch(string(t), -1) {
				refs[m[1]] = true
			}
		}
	}

	out := make([]Token, 0, len(in))
	for _, tok := range in {
		se, ok := tok.(xml.StartElement)
		if !ok {
			out = append(out, tok)
			continue
		}
		kept := se.Attr[:0:0]
		for _, a := range se.Attr {
			if a.Name.Space == "" && a.Name.Local == "id" && !refs[a.Value] {
				continue
			}
			kept = append(kept, a)
		}
		se.Attr = kept
		out = append(out, se)
	}
	return out
}
