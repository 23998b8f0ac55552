package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/efebarandurmaz/svgsmith/internal/app"
	"github.com/efebarandurmaz/svgsmith/internal/config"
	"github.com/efebarandurmaz/svgsmith/internal/convert"
	"github.com/efebarandurmaz/svgsmith/internal/metrics"
	"github.com/efebarandurmaz/svgsmith/internal/optimizer"
	"github.com/efebarandurmaz/svgsmith/internal/qualitygate"
	"github.com/efebarandurmaz/svgsmith/internal/tui"
)

type generateOptions struct {
	inputs        []string
	outputDir     string
	frameworks    []string
	props         bool
	propsSet      bool
	typescript    bool
	typescriptSet bool
	configPath    string
	jsonReport    bool
	force         bool
	concurrency   int
	review        bool
	reviewReport  string
	gates         bool
}

func version() string { return app.Version }

// loadConfig reads the config file and applies command-line overrides.
func loadConfig(path, outputDir string, frameworks []string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}
	if len(frameworks) > 0 {
		cfg.Frameworks = frameworks
	}
	return cfg, nil
}

func runGenerate(ctx context.Context, opts generateOptions, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig(opts.configPath, opts.outputDir, opts.frameworks)
	if err != nil {
		return err
	}
	if opts.propsSet {
		cfg.Component.Props = opts.props
	}
	if opts.typescriptSet {
		cfg.Component.TypeScript = opts.typescript
	}
	if opts.force {
		cfg.Output.Force = true
	}
	if opts.gates {
		cfg.Gates.Enabled = true
	}
	if err := cfg.Check(); err != nil {
		return err
	}

	a, err := app.New(ctx, cfg, stderr)
	if err != nil {
		return err
	}
	defer a.Shutdown(context.Background())

	paths, err := collectInputs(opts.inputs)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no .svg files found in %s", strings.Join(opts.inputs, ", "))
	}

	reqs, err := readRequests(paths, cfg.Frameworks)
	if err != nil {
		return err
	}

	m := metrics.New()
	w := a.Writer()
	todo, skipped, err := w.Filter(reqs)
	if err != nil {
		return err
	}
	m.AddSkipped(len(skipped))

	outcomes, convErr := a.Converter.ConvertAll(ctx, todo, opts.concurrency)
	for _, o := range outcomes {
		if o.Err != nil {
			o.Err = fmt.Errorf("%s: %w", o.Request.Path, o.Err)
		}
		m.Record(o)
	}

	if opts.review {
		session, err := tui.RunReview(tui.NewReviewSession(outcomes))
		if err != nil {
			return err
		}
		if opts.reviewReport != "" {
			if err := tui.SaveReviewReport(session, opts.reviewReport); err != nil {
				return err
			}
		}
		outcomes = session.Apply(outcomes)
	}

	if cfg.Gates.Enabled {
		result := qualitygate.BuildPipeline(&cfg.Gates).Run(qualitygate.NewEvalContext(outcomes))
		fmt.Fprint(stderr, qualitygate.FormatReport(result))
		if !result.Passed() {
			return fmt.Errorf("quality gates failed, nothing written: %s", result.Summary)
		}
	}

	written, err := w.Write(outcomes)
	m.AddWritten(written...)
	m.Finish()
	if err != nil {
		return err
	}

	if opts.jsonReport {
		data, err := m.JSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, string(data))
	} else {
		m.PrintSummary(stdout)
	}

	if convErr != nil {
		return fmt.Errorf("%d of %d documents failed", m.Failed, m.Documents)
	}
	return nil
}

func readRequests(paths, frameworks []string) ([]convert.Request, error) {
	reqs := make([]convert.Request, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		reqs = append(reqs, convert.Request{Path: p, Markup: string(data), Frameworks: frameworks})
	}
	return reqs, nil
}

// collectInputs expands files, directories (recursively) and glob patterns
// into a sorted, de-duplicated list of .svg files. A plain file is accepted
// whatever its extension.
func collectInputs(inputs []string) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	var errs error
	for _, in := range inputs {
		matches := []string{in}
		if strings.ContainsAny(in, "*?[") {
			var err error
			if matches, err = filepath.Glob(in); err != nil {
				errs = errors.Join(errs, fmt.Errorf("bad pattern %q: %w", in, err))
				continue
			}
		}
		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				errs = errors.Join(errs, err)
				continue
			}
			if !info.IsDir() {
				add(match)
				continue
			}
			err = filepath.WalkDir(match, func(p string, d os.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() && strings.EqualFold(filepath.Ext(p), ".svg") {
					add(p)
				}
				return nil
			})
			if err != nil {
				errs = errors.Join(errs, err)
			}
		}
	}
	sort.Strings(out)
	return out, errs
}

func runOptimize(ctx context.Context, configPath, path string, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	out, err := optimizer.Optimize(ctx, string(data), cfg.Optimizer)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	fmt.Fprintln(stdout, out)
	return nil
}

func listFrameworks(stdout io.Writer) error {
	reg := app.NewRegistry(config.Default(), nil)
	fmt.Fprintln(stdout, "Available frameworks:")
	fmt.Fprintln(stdout)
	for _, name := range reg.Frameworks() {
		target, err := reg.Target(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "  %-8s %s\n", name, target.Extension())
	}
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Select in svgsmith.yaml or via environment:")
	fmt.Fprintln(stdout, "  SVGSMITH_FRAMEWORKS=react,vue")
	return nil
}
