// Package codegen provides identifier case conversion and JavaScript literal
// rendering shared across target framework plugins.
package codegen

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	jsIdentifier  = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
	numberLiteral = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)
)

// ToPascalCase converts an identifier using common separators (-, _, space, .)
// into PascalCase. Parts written entirely in upper case are lowered first, so
// "ARROW_UP" becomes "ArrowUp" while "arrowUp" keeps its inner capital.
// Returns "Generated" for empty input.
func ToPascalCase(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || r == ' ' || r == '.'
	})
	var out strings.Builder
	for _, p := range parts {
		if p == strings.ToUpper(p) {
			p = strings.ToLower(p)
		}
		r, size := utf8.DecodeRuneInString(p)
		out.WriteRune(unicode.ToUpper(r))
		out.WriteString(p[size:])
	}
	if out.Len() == 0 {
		return "Generated"
	}
	return out.String()
}

// ComponentName derives a component identifier from a source file path:
// "icons/arrow-left.svg" with prefix "Icon" becomes "IconArrowLeft". Names
// that would start with a digit get an "Svg" prefix.
func ComponentName(path, prefix, suffix string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	var cleaned strings.Builder
	for _, r := range base {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			cleaned.WriteRune(r)
		default:
			cleaned.WriteRune('-')
		}
	}
	name := ToPascalCase(prefix + "-" + cleaned.String() + "-" + suffix)
	if name[0] >= '0' && name[0] <= '9' {
		name = "Svg" + name
	}
	return name
}

// IsIdentifier reports whether s can be used as a bare JavaScript identifier
// or object key.
func IsIdentifier(s string) bool { return jsIdentifier.MatchString(s) }

// String renders s as a double-quoted JavaScript string literal.
func String(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}

// Number renders a numeric literal without redundant leading zeros, so "007"
// is never read as a legacy octal. v must be a plain decimal literal.
func Number(v string) string {
	sign := ""
	if strings.HasPrefix(v, "-") {
		sign, v = "-", v[1:]
	}
	intPart, frac, hasFrac := strings.Cut(v, ".")
	intPart = strings.TrimLeft(intPart, "0")
	if intPart == "" {
		intPart = "0"
	}
	if hasFrac {
		return sign + intPart + "." + frac
	}
	return sign + intPart
}

// Value renders v as a number when it is a plain decimal literal and as a
// string otherwise.
func Value(v string) string {
	if numberLiteral.MatchString(v) {
		return Number(v)
	}
	return String(v)
}
