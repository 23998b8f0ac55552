package qualitygate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/efebarandurmaz/svgsmith/internal/convert"
	"github.com/efebarandurmaz/svgsmith/internal/ir"
	"github.com/efebarandurmaz/svgsmith/internal/plugins/source/svg"
)

// EvalContext is the data gates evaluate.
type EvalContext struct {
	Documents  int
	Failures   []string // "path: error"
	Sources    []SourceInfo
	Components []ComponentInfo
}

// SourceInfo describes one successfully converted document.
type SourceInfo struct {
	Path    string
	Bytes   int
	ViewBox bool
	// Colors lists the distinct paint values below the root that do not
	// follow the color prop.
	Colors []string
}

// ComponentInfo describes one generated file.
type ComponentInfo struct {
	Framework string
	Path      string
	Bytes     int
}

// themable paint values track currentColor or reference a paint server.
var themable = map[string]bool{
	"":             true,
	"none":         true,
	"currentcolor": true,
	"inherit":      true,
	"transparent":  true,
}

// NewEvalContext summarizes conversion outcomes for the gates.
func NewEvalContext(outcomes []convert.Outcome) *EvalContext {
	ctx := &EvalContext{Documents: len(outcomes)}
	for _, o := range outcomes {
		if o.Err != nil {
			ctx.Failures = append(ctx.Failures, fmt.Sprintf("%s: %v", o.Request.Path, o.Err))
			continue
		}
		info := SourceInfo{Path: o.Request.Path, Bytes: len(o.Request.Markup)}
		if doc, err := svg.Parse(o.Request.Markup); err == nil {
			info.ViewBox = doc.ViewBox() != ""
			info.Colors = paints(doc.Root)
		}
		ctx.Sources = append(ctx.Sources, info)
		for _, r := range o.Results {
			ctx.Components = append(ctx.Components, ComponentInfo{
				Framework: r.Framework,
				Path:      r.Framework + "/" + r.Path,
				Bytes:     len(r.Code),
			})
		}
	}
	return ctx
}

func paints(root *ir.Element) []string {
	seen := map[string]bool{}
	ir.Walk(root, func(n ir.Node) bool {
		el, ok := n.(*ir.Element)
		if !ok || el == root {
			return true
		}
		for _, name := range []string{"fill", "stroke", "stop-color"} {
			v, _ := el.Attrs.Get(name)
			v = strings.TrimSpace(v)
			if themable[strings.ToLower(v)] || strings.HasPrefix(v, "url(") {
				continue
			}
			seen[v] = true
		}
		return true
	})
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
