// Package vue emits Vue single-file components.
package vue

import (
	"context"
	"fmt"

	"github.com/efebarandurmaz/svgsmith/internal/ir"
	"github.com/efebarandurmaz/svgsmith/internal/plugins"
)

// Mode selects how the template is produced.
type Mode string

const (
	// ModeStructural walks the tree and binds props on the root.
	ModeStructural Mode = "structural"
	// ModePassthrough wraps the serialized markup and leaves props unbound.
	ModePassthrough Mode = "passthrough"
)

// Plugin implements TargetPlugin for Vue.
type Plugin struct {
	opts Options
	mode Mode
}

// New creates a Vue plugin. An empty mode selects ModeStructural.
func New(opts Options, mode Mode) *Plugin {
	if mode == "" {
		mode = ModeStructural
	}
	return &Plugin{opts: opts, mode: mode}
}

func (p *Plugin) Framework() string { return "vue" }
func (p *Plugin) Extension() string { return ".vue" }

func (p *Plugin) Generate(ctx context.Context, c plugins.Component) (plugins.GeneratedFile, error) {
	if err := ctx.Err(); err != nil {
		return plugins.GeneratedFile{}, err
	}
	if c.Document == nil || c.Document.Root == nil {
		return plugins.GeneratedFile{}, fmt.Errorf("vue: component %q has no document", c.Name)
	}

	var code string
	switch p.mode {
	case ModeStructural:
		code = Emit(c.Document.Root, p.opts)
	case ModePassthrough:
		code = Wrap(ir.Serialize(c.Document.Root, 1), p.opts)
	default:
		return plugins.GeneratedFile{}, fmt.Errorf("vue: unknown mode %q", p.mode)
	}

	return plugins.GeneratedFile{
		Path:      c.Name + p.Extension(),
		Content:   []byte(code),
		Framework: p.Framework(),
	}, nil
}
