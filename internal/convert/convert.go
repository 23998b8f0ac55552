// Package convert runs SVG documents through the optimize, parse, emit and
// format stages for each requested framework.
package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/efebarandurmaz/svgsmith/internal/codegen"
	"github.com/efebarandurmaz/svgsmith/internal/format"
	"github.com/efebarandurmaz/svgsmith/internal/ir"
	"github.com/efebarandurmaz/svgsmith/internal/observability"
	"github.com/efebarandurmaz/svgsmith/internal/optimizer"
	"github.com/efebarandurmaz/svgsmith/internal/plugins"
)

// SourceFormat is the registry key of the SVG source plugin.
const SourceFormat = "svg"

// Request is one document to convert.
type Request struct {
	// Name is the component identifier. Derived from Path when empty.
	Name       string   `json:"name"`
	Path       string   `json:"path"`
	Markup     string   `json:"markup"`
	Frameworks []string `json:"frameworks"`
}

// Result is the generated component for one framework.
type Result struct {
	Code      string `json:"code"`
	Extension string `json:"extension"`
	Framework string `json:"framework"`
	Path      string `json:"path"`
}

// Outcome pairs a request with its results or its failure.
type Outcome struct {
	Request  Request       `json:"request"`
	Results  []Result      `json:"results,omitempty"`
	Err      error         `json:"-"`
	Duration time.Duration `json:"duration_ms"`
}

// Converter wires the registry, the optimizer and the formatter together.
// It holds no per-call state and is safe for concurrent use.
type Converter struct {
	registry   *plugins.Registry
	optimizer  *optimizer.Optimizer
	formatter  format.Formatter
	printWidth int
	namePrefix string
	nameSuffix string
	metrics    *observability.ConvertMetrics
	logger     *slog.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithOptimizer enables the optimizer for targets that request it.
func WithOptimizer(o *optimizer.Optimizer) Option { return func(c *Converter) { c.optimizer = o } }

// WithFormatter sets the formatter for targets that request it.
func WithFormatter(f format.Formatter, printWidth int) Option {
	return func(c *Converter) {
		c.formatter = f
		c.printWidth = printWidth
	}
}

// WithNaming sets the prefix and suffix of derived component names.
func WithNaming(prefix, suffix string) Option {
	return func(c *Converter) {
		c.namePrefix = prefix
		c.nameSuffix = suffix
	}
}

func WithMetrics(m *observability.ConvertMetrics) Option { return func(c *Converter) { c.metrics = m } }

func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Converter over reg.
func New(reg *plugins.Registry, opts ...Option) *Converter {
	c := &Converter{
		registry:  reg,
		formatter: format.Noop{},
		logger:    slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// ComponentName returns the identifier used for req.
func (c *Converter) ComponentName(req Request) string {
	if req.Name != "" {
		return req.Name
	}
	return codegen.ComponentName(req.Path, c.namePrefix, c.nameSuffix)
}

// Convert produces one result per requested framework, in request order.
// Parser errors are returned unchanged for errors.Is checks.
func (c *Converter) Convert(ctx context.Context, req Request) (results []Result, err error) {
	start := time.Now()
	name := c.ComponentName(req)
	ctx, span := observability.StartConvertSpan(ctx, name, req.Frameworks)
	defer func() {
		observability.RecordError(span, err)
		span.End()
		if c.metrics != nil {
			c.metrics.RecordConversion(time.Since(start), len(results), resultBytes(results), err)
		}
	}()

	if len(req.Frameworks) == 0 {
		return nil, fmt.Errorf("convert %s: no frameworks requested", name)
	}
	source, err := c.registry.Source(SourceFormat)
	if err != nil {
		return nil, err
	}

	original, err := c.parse(ctx, source, req.Path, req.Markup)
	if err != nil {
		return nil, err
	}
	var optimized *ir.Document

	for _, fw := range req.Frameworks {
		target, err := c.registry.Target(fw)
		if err != nil {
			return nil, err
		}

		doc := original
		if o, ok := target.(plugins.Optimized); ok && o.OptimizeInput() && c.optimizer != nil {
			if optimized == nil {
				optimized, err = c.optimize(ctx, source, req.Path, req.Markup)
				if err != nil {
					return nil, err
				}
			}
			doc = optimized
		}

		res, err := c.emit(ctx, target, name, doc)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}

	c.logger.Debug("converted document",
		"component", name,
		"path", req.Path,
		"results", len(results),
		"duration", time.Since(start),
	)
	return results, nil
}

func (c *Converter) parse(ctx context.Context, source plugins.SourcePlugin, path, markup string) (*ir.Document, error) {
	ctx, span := observability.StartStageSpan(ctx, observability.SpanKindParse, "")
	defer span.End()

	doc, err := source.Parse(ctx, plugins.SourceFile{Path: path, Content: []byte(markup)})
	observability.RecordError(span, err)
	return doc, err
}

func (c *Converter) optimize(ctx context.Context, source plugins.SourcePlugin, path, markup string) (*ir.Document, error) {
	octx, span := observability.StartStageSpan(ctx, observability.SpanKindOptimize, "")
	out, err := c.optimizer.Optimize(octx, markup)
	observability.RecordMarkupSize(span, len(markup), len(out))
	observability.RecordError(span, err)
	span.End()
	if err != nil {
		return nil, fmt.Errorf("optimize %s: %w", path, err)
	}
	return c.parse(ctx, source, path, out)
}

func (c *Converter) emit(ctx context.Context, target plugins.TargetPlugin, name string, doc *ir.Document) (Result, error) {
	ectx, span := observability.StartStageSpan(ctx, observability.SpanKindEmit, target.Framework())
	file, err := target.Generate(ectx, plugins.Component{Name: name, Document: doc})
	observability.RecordError(span, err)
	span.End()
	if err != nil {
		return Result{}, err
	}

	code := string(file.Content)
	if f, ok := target.(plugins.Formatted); ok {
		code = c.format(ctx, name, code, f.FormatSyntax())
	}

	return Result{
		Code:      code,
		Extension: target.Extension(),
		Framework: target.Framework(),
		Path:      file.Path,
	}, nil
}

// format keeps the unformatted code when the formatter fails.
func (c *Converter) format(ctx context.Context, name, code, syntax string) string {
	ctx, span := observability.StartStageSpan(ctx, observability.SpanKindFormat, syntax)
	defer span.End()

	out, err := c.formatter.Format(ctx, code, format.Options{Syntax: syntax, PrintWidth: c.printWidth})
	if err != nil {
		observability.RecordError(span, err)
		c.logger.Warn("formatter failed, keeping unformatted code", "component", name, "error", err)
		return code
	}
	return out
}

// ConvertAll converts reqs with up to concurrency documents in flight. A
// failing document does not stop the others; the returned error joins every
// per-document failure. Outcomes keep request order.
func (c *Converter) ConvertAll(ctx context.Context, reqs []Request, concurrency int) ([]Outcome, error) {
	if concurrency < 1 {
		concurrency = 1
	}
	outcomes := make([]Outcome, len(reqs))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i, req := range reqs {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int, r Request) {
			defer wg.Done()
			defer func() { <-sem }()

			if c.metrics != nil {
				c.metrics.InFlight.Inc()
				defer c.metrics.InFlight.Dec()
			}
			start := time.Now()
			results, err := c.Convert(ctx, r)
			outcomes[idx] = Outcome{Request: r, Results: results, Err: err, Duration: time.Since(start)}
		}(i, req)
	}
	wg.Wait()

	var allErr error
	for _, o := range outcomes {
		if o.Err != nil {
			c.logger.Error("conversion failed", "path", o.Request.Path, "error", o.Err)
			allErr = errors.Join(allErr, o.Err)
		}
	}
	return outcomes, allErr
}

func resultBytes(results []Result) int {
	n := 0
	for _, r := range results {
		n += len(r.Code)
	}
	return n
}
