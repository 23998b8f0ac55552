// Package optimizer cleans up raw SVG markup before it is parsed for code
// generation. A fixed pipeline of token filters runs first, followed by the
// tdewolff SVG minifier for geometry and whitespace.
package optimizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/svg"
)

const svgMimetype = "image/svg+xml"

// ErrMalformed is returned when the markup cannot be tokenized.
var ErrMalformed = errors.New("optimizer: malformed markup")

// Options selects the cleanup plugins. Namespace declarations and the XML
// declaration are always removed.
type Options struct {
	RemoveComments   bool `mapstructure:"remove_comments" json:"remove_comments"`
	RemoveMetadata   bool `mapstructure:"remove_metadata" json:"remove_metadata"`
	RemoveTitle      bool `mapstructure:"remove_title" json:"remove_title"`
	RemoveDesc       bool `mapstructure:"remove_desc" json:"remove_desc"`
	RemoveDimensions bool `mapstructure:"remove_dimensions" json:"remove_dimensions"`
	CleanupIDs       bool `mapstructure:"cleanup_ids" json:"cleanup_ids"`
	// Minify runs the tdewolff SVG minifier after the plugins.
	Minify bool `mapstructure:"minify" json:"minify"`
	// Precision is the number of significant digits kept in numbers and
	// path data. Zero keeps them lossless.
	Precision int `mapstructure:"precision" json:"precision" validate:"gte=0,lte=10"`
}

// DefaultOptions returns the default plugin selection.
func DefaultOptions() Options {
	return Options{
		RemoveComments: true,
		RemoveMetadata: true,
		CleanupIDs:     true,
		Minify:         true,
	}
}

// Plugin is a named token filter.
type Plugin struct {
	Name  string
	Apply func([]Token) []Token
}

// Optimizer applies a plugin pipeline and the minifier to SVG markup. It is
// safe for concurrent use.
type Optimizer struct {
	opts    Options
	plugins []Plugin
	m       *minify.M
}

// New builds the pipeline for opts.
func New(opts Options) *Optimizer {
	o := &Optimizer{opts: opts, plugins: Pipeline(opts)}
	if opts.Minify {
		o.m = minify.New()
		o.m.AddFunc("text/css", css.Minify)
		o.m.Add(svgMimetype, &svg.Minifier{
			KeepComments: !opts.RemoveComments,
			Precision:    opts.Precision,
		})
	}
	return o
}

// Pipeline returns the plugins enabled by opts in execution order.
func Pipeline(opts Options) []Plugin {
	ps := []Plugin{
		{Name: "removeXMLDecl", Apply: removeXMLDecl},
		{Name: "removeXMLNS", Apply: removeNamespaces},
	}
	if opts.RemoveComments {
		ps = append(ps, Plugin{Name: "removeComments", Apply: removeComments})
	}
	if opts.RemoveMetadata {
		ps = append(ps, Plugin{Name: "removeMetadata", Apply: dropElements("metadata")})
	}
	if opts.RemoveTitle {
		ps = append(ps, Plugin{Name: "removeTitle", Apply: dropElements("title")})
	}
	if opts.RemoveDesc {
		ps = append(ps, Plugin{Name: "removeDesc", Apply: dropElements("desc")})
	}
	if opts.RemoveDimensions {
		ps = append(ps, Plugin{Name: "removeDimensions", Apply: removeDimensions})
	}
	if opts.CleanupIDs {
		ps = append(ps, Plugin{Name: "cleanupIDs", Apply: cleanupIDs})
	}
	return ps
}

// Plugins lists the names of the enabled plugins.
func (o *Optimizer) Plugins() []string {
	names := make([]string, len(o.plugins))
	for i, p := range o.plugins {
		names[i] = p.Name
	}
	return names
}

// Optimize runs the pipeline over markup.
func (o *Optimizer) Optimize(ctx context.Context, markup string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tokens, err := Tokenize(markup)
	if err != nil {
		return "", err
	}
	for _, p := range o.plugins {
		tokens = p.Apply(tokens)
	}
	out := strings.TrimSpace(Render(tokens))

	if o.m == nil {
		return out, nil
	}
	minified, err := o.m.String(svgMimetype, out)
	if err != nil {
		return "", fmt.Errorf("optimizer: minify: %w", err)
	}
	return minified, nil
}

// Optimize is a convenience wrapper building a one-off Optimizer.
func Optimize(ctx context.Context, markup string, opts Options) (string, error) {
	return New(opts).Optimize(ctx, markup)
}
