package temporal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/efebarandurmaz/svgsmith/internal/convert"
	"github.com/efebarandurmaz/svgsmith/internal/output"
)

// IconInput names one source document to convert.
type IconInput struct {
	Path       string
	Name       string
	Frameworks []string
}

// IconResult is the serializable result of ConvertIconActivity. A document
// that cannot be converted is reported through Error rather than failing
// the activity, so one bad icon never fails the batch.
type IconResult struct {
	Path       string
	Name       string
	Markup     string
	Frameworks []string
	Results    []convert.Result
	Error      string
	DurationMS int64
}

// PlanInput selects the sources of a batch that need converting.
type PlanInput struct {
	Sources    []string
	Frameworks []string
	OutputDir  string
	Manifest   bool
	Force      bool
}

// PlanResult splits the batch into pending and unchanged sources.
type PlanResult struct {
	Pending []string
	Skipped []string
}

// WriteInput carries converted icons to WriteResultsActivity.
type WriteInput struct {
	OutputDir string
	Index     bool
	Manifest  bool
	Icons     []IconResult
}

// WriteResult lists the files written relative to the output directory.
type WriteResult struct {
	Written []string
}

// Dependencies holds shared resources injected into activities.
type Dependencies struct {
	Converter *convert.Converter
	// Settings is folded into manifest fingerprints, see output.Writer.
	Settings string
	Logger   *slog.Logger
}

var deps *Dependencies

// SetDependencies injects shared resources (called during worker setup).
func SetDependencies(d *Dependencies) {
	deps = d
}

func logger() *slog.Logger {
	if deps != nil && deps.Logger != nil {
		return deps.Logger
	}
	return slog.Default()
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}
	return string(data), nil
}

// PlanBatchActivity drops sources whose generated output is still current
// according to the manifest in the output directory.
func PlanBatchActivity(ctx context.Context, input PlanInput) (PlanResult, error) {
	reqs := make([]convert.Request, 0, len(input.Sources))
	for _, path := range input.Sources {
		if err := ctx.Err(); err != nil {
			return PlanResult{}, err
		}
		markup, err := readSource(path)
		if err != nil {
			return PlanResult{}, err
		}
		reqs = append(reqs, convert.Request{Path: path, Markup: markup, Frameworks: input.Frameworks})
	}

	w := &output.Writer{
		Dir:      input.OutputDir,
		Manifest: input.Manifest,
		Force:    input.Force,
		Settings: settings(),
		Logger:   logger(),
	}
	todo, skipped, err := w.Filter(reqs)
	if err != nil {
		return PlanResult{}, err
	}
	result := PlanResult{Skipped: skipped}
	for _, r := range todo {
		result.Pending = append(result.Pending, r.Path)
	}
	return result, nil
}

// ConvertIconActivity converts one source document for every requested
// framework. Only a failure to read the source fails the activity.
func ConvertIconActivity(ctx context.Context, input IconInput) (IconResult, error) {
	if deps == nil || deps.Converter == nil {
		return IconResult{}, fmt.Errorf("temporal: dependencies not set")
	}
	markup, err := readSource(input.Path)
	if err != nil {
		return IconResult{}, err
	}

	req := convert.Request{
		Name:       input.Name,
		Path:       input.Path,
		Markup:     markup,
		Frameworks: input.Frameworks,
	}
	result := IconResult{
		Path:       input.Path,
		Name:       deps.Converter.ComponentName(req),
		Markup:     markup,
		Frameworks: input.Frameworks,
	}

	start := time.Now()
	results, err := deps.Converter.Convert(ctx, req)
	result.DurationMS = time.Since(start).Milliseconds()
	if err != nil {
		logger().Warn("icon conversion failed", "path", input.Path, "error", err)
		result.Error = err.Error()
		return result, nil
	}
	result.Results = results
	return result, nil
}

// WriteResultsActivity writes every successful icon plus the index files
// and the manifest.
func WriteResultsActivity(ctx context.Context, input WriteInput) (WriteResult, error) {
	if err := ctx.Err(); err != nil {
		return WriteResult{}, err
	}
	w := &output.Writer{
		Dir:      input.OutputDir,
		Index:    input.Index,
		Manifest: input.Manifest,
		Settings: settings(),
		Logger:   logger(),
	}
	written, err := w.Write(Outcomes(input.Icons))
	return WriteResult{Written: written}, err
}

// Outcomes converts icon results back into conversion outcomes.
func Outcomes(icons []IconResult) []convert.Outcome {
	out := make([]convert.Outcome, 0, len(icons))
	for _, ic := range icons {
		o := convert.Outcome{
			Request: convert.Request{
				Name:       ic.Name,
				Path:       ic.Path,
				Markup:     ic.Markup,
				Frameworks: ic.Frameworks,
			},
			Results:  ic.Results,
			Duration: time.Duration(ic.DurationMS) * time.Millisecond,
		}
		if ic.Error != "" {
			o.Err = fmt.Errorf("%s", ic.Error)
		}
		out = append(out, o)
	}
	return out
}

func settings() string {
	if deps == nil {
		return ""
	}
	return deps.Settings
}
