// Package attrs maps SVG attribute names and values onto the vocabulary of a
// target UI framework.
package attrs

import (
	"regexp"

	"github.com/efebarandurmaz/svgsmith/internal/ir"
)

// Framework identifies an output flavor.
type Framework string

const (
	React Framework = "react"
	Vue   Framework = "vue"
)

var numericLiteral = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

// TransformName returns the attribute name to emit for fw. React names come
// from a fixed table and unknown names pass through; Vue names are never
// altered.
func TransformName(name string, fw Framework) string {
	if fw != React {
		return name
	}
	if mapped, ok := reactNames[name]; ok {
		return mapped
	}
	return name
}

// IsNumericLiteral reports whether v is an optional minus sign, digits and an
// optional fractional part, with nothing else around it.
func IsNumericLiteral(v string) bool {
	return numericLiteral.MatchString(v)
}

// Collision records two source attributes that map to the same target name.
type Collision struct {
	Target  string
	Dropped string // source name whose value was overwritten
	Kept    string // source name whose value survives
}

// TransformAttributes renames every attribute of in for fw. When two source
// names map to the same target name the last one in source order wins; the
// surviving entry keeps the position of the first occurrence. in is not
// modified.
func TransformAttributes(in ir.Attributes, fw Framework) (ir.Attributes, []Collision) {
	out := make(ir.Attributes, 0, len(in))
	sources := make(map[string]string, len(in))
	var collisions []Collision

	for _, a := range in {
		target := TransformName(a.Name, fw)
		if prev, ok := sources[target]; ok {
			collisions = append(collisions, Collision{Target: target, Dropped: prev, Kept: a.Name})
		}
		sources[target] = a.Name
		out.Set(target, a.Value)
	}
	return out, collisions
}
