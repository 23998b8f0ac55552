// Package app assembles the conversion stack from configuration. Both the
// CLI and the Temporal worker build their converter here.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/efebarandurmaz/svgsmith/internal/config"
	"github.com/efebarandurmaz/svgsmith/internal/convert"
	"github.com/efebarandurmaz/svgsmith/internal/format"
	"github.com/efebarandurmaz/svgsmith/internal/observability"
	"github.com/efebarandurmaz/svgsmith/internal/optimizer"
	"github.com/efebarandurmaz/svgsmith/internal/output"
	"github.com/efebarandurmaz/svgsmith/internal/plugins"
	svgplugin "github.com/efebarandurmaz/svgsmith/internal/plugins/source/svg"
	reactplugin "github.com/efebarandurmaz/svgsmith/internal/plugins/target/react"
	vueplugin "github.com/efebarandurmaz/svgsmith/internal/plugins/target/vue"
)

// Version is reported in traces and health responses.
var Version = "0.1.0"

// App holds the wired components for one process.
type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	Registry  *plugins.Registry
	Converter *convert.Converter
	Metrics   *observability.ConvertMetrics
	Tracing   *observability.TracerProvider
}

// New builds the logger, tracing, registry and converter described by cfg.
// Log output goes to logOut.
func New(ctx context.Context, cfg *config.Config, logOut io.Writer) (*App, error) {
	logger, err := observability.NewLogger(logOut, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	tp, err := observability.InitTracing(ctx, &observability.TracingConfig{
		ServiceName:    cfg.Tracing.ServiceName,
		ServiceVersion: Version,
		OTLPEndpoint:   cfg.Tracing.Endpoint,
		Insecure:       cfg.Tracing.Insecure,
		SampleRate:     cfg.Tracing.SampleRatio,
	})
	if err != nil {
		return nil, fmt.Errorf("tracing: %w", err)
	}

	formatter, err := format.New(cfg.Format.Formatter, cfg.Format.Binary)
	if err != nil {
		return nil, err
	}

	registry := NewRegistry(cfg, logger)
	m := observability.NewConvertMetrics()
	conv := convert.New(registry,
		convert.WithOptimizer(optimizer.New(cfg.Optimizer)),
		convert.WithFormatter(formatter, cfg.Format.PrintWidth),
		convert.WithNaming(cfg.Component.Prefix, cfg.Component.Suffix),
		convert.WithMetrics(m),
		convert.WithLogger(logger),
	)

	return &App{
		Config:    cfg,
		Logger:    logger,
		Registry:  registry,
		Converter: conv,
		Metrics:   m,
		Tracing:   tp,
	}, nil
}

// NewRegistry registers the svg source and the react and vue targets.
func NewRegistry(cfg *config.Config, logger *slog.Logger) *plugins.Registry {
	c := cfg.Component
	registry := plugins.NewRegistry()
	registry.RegisterSource(svgplugin.New())
	registry.RegisterTarget(reactplugin.New(reactplugin.Options{
		WithProps:    c.Props,
		DefaultSize:  c.DefaultSize,
		DefaultColor: c.DefaultColor,
		JavaScript:   !c.TypeScript,
	}).WithLogger(logger))
	registry.RegisterTarget(vueplugin.New(vueplugin.Options{
		WithProps:    c.Props,
		DefaultSize:  c.DefaultSize,
		DefaultColor: c.DefaultColor,
		JavaScript:   !c.TypeScript,
	}, vueplugin.Mode(cfg.Vue.Mode)))
	return registry
}

// Writer returns the output writer for the configured directory.
func (a *App) Writer() *output.Writer {
	return &output.Writer{
		Dir:      a.Config.Output.Dir,
		Index:    a.Config.Output.Index,
		Manifest: a.Config.Output.Manifest,
		Force:    a.Config.Output.Force,
		Settings: Settings(a.Config),
		Logger:   a.Logger,
	}
}

// Settings serializes every option that changes generated code. It is
// folded into manifest fingerprints.
func Settings(cfg *config.Config) string {
	data, _ := json.Marshal(struct {
		Component  config.ComponentConfig `json:"component"`
		Optimizer  optimizer.Options      `json:"optimizer"`
		Vue        config.VueConfig       `json:"vue"`
		Formatter  string                 `json:"formatter"`
		PrintWidth int                    `json:"print_width"`
	}{cfg.Component, cfg.Optimizer, cfg.Vue, cfg.Format.Formatter, cfg.Format.PrintWidth})
	return string(data)
}

// Shutdown flushes pending spans.
func (a *App) Shutdown(ctx context.Context) error {
	if a.Tracing == nil {
		return nil
	}
	return a.Tracing.Shutdown(ctx)
}
