// Package react emits React function components with JSX markup.
package react

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/efebarandurmaz/svgsmith/internal/plugins"
)

// Plugin implements TargetPlugin for React.
type Plugin struct {
	opts   Options
	logger *slog.Logger
}

func New(opts Options) *Plugin { return &Plugin{opts: opts, logger: slog.Default()} }

// WithLogger sets the logger used for attribute collision warnings.
func (p *Plugin) WithLogger(l *slog.Logger) *Plugin {
	if l != nil {
		p.logger = l
	}
	return p
}

func (p *Plugin) Framework() string { return "react" }

func (p *Plugin) Extension() string {
	if p.opts.JavaScript {
		return ".jsx"
	}
	return ".tsx"
}

func (p *Plugin) Generate(ctx context.Context, c plugins.Component) (plugins.GeneratedFile, error) {
	if err := ctx.Err(); err != nil {
		return plugins.GeneratedFile{}, err
	}
	if c.Document == nil || c.Document.Root == nil {
		return plugins.GeneratedFile{}, fmt.Errorf("react: component %q has no document", c.Name)
	}

	opts := p.opts
	opts.ComponentName = c.Name
	code, collisions := Module(c.Document.Root, opts)

	for _, col := range collisions {
		p.logger.Warn("attribute name collision",
			"component", c.Name,
			"target", col.Target,
			"dropped", col.Dropped,
			"kept", col.Kept,
		)
	}

	return plugins.GeneratedFile{
		Path:      opts.withDefaults().ComponentName + p.Extension(),
		Content:   []byte(code),
		Framework: p.Framework(),
	}, nil
}

// OptimizeInput reports that JSX output is generated from optimized markup.
func (p *Plugin) OptimizeInput() bool { return true }

func (p *Plugin) FormatSyntax() string {
	if p.opts.JavaScript {
		return "babel"
	}
	return "typescript"
}
