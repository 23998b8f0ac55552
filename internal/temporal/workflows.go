package temporal

import (
	"fmt"
	"time"

	sdktemporal "go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

const defaultConcurrency = 8

// BatchInput holds the workflow parameters.
type BatchInput struct {
	Sources    []string
	Frameworks []string
	OutputDir  string

	Index    bool
	Manifest bool
	Force    bool

	// Concurrency bounds the number of icon conversions in flight.
	Concurrency int
}

// BatchOutput holds the workflow result.
type BatchOutput struct {
	Converted int
	Failed    int
	Skipped   []string
	Written   []string
	Errors    []string
}

// ConvertBatchWorkflow plans the batch, converts pending icons in parallel
// windows and writes the successful ones. Icon failures are collected in
// the output; only planning or writing failures fail the workflow.
func ConvertBatchWorkflow(ctx workflow.Context, input BatchInput) (*BatchOutput, error) {
	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &sdktemporal.RetryPolicy{
			InitialInterval: time.Second,
			MaximumAttempts: 3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)
	log := workflow.GetLogger(ctx)

	if len(input.Frameworks) == 0 {
		return nil, fmt.Errorf("batch: no frameworks requested")
	}

	// Step 1: filter unchanged sources
	var plan PlanResult
	if err := workflow.ExecuteActivity(ctx, PlanBatchActivity, PlanInput{
		Sources:    input.Sources,
		Frameworks: input.Frameworks,
		OutputDir:  input.OutputDir,
		Manifest:   input.Manifest,
		Force:      input.Force,
	}).Get(ctx, &plan); err != nil {
		return nil, fmt.Errorf("plan: %w", err)
	}

	out := &BatchOutput{Skipped: plan.Skipped}
	window := input.Concurrency
	if window < 1 {
		window = defaultConcurrency
	}

	// Step 2: convert in windows of futures
	var icons []IconResult
	for start := 0; start < len(plan.Pending); start += window {
		end := min(start+window, len(plan.Pending))
		futures := make([]workflow.Future, 0, end-start)
		for _, path := range plan.Pending[start:end] {
			futures = append(futures, workflow.ExecuteActivity(ctx, ConvertIconActivity, IconInput{
				Path:       path,
				Frameworks: input.Frameworks,
			}))
		}
		for i, f := range futures {
			path := plan.Pending[start+i]
			var icon IconResult
			if err := f.Get(ctx, &icon); err != nil {
				icon = IconResult{Path: path, Error: err.Error()}
			}
			if icon.Error != "" {
				out.Failed++
				out.Errors = append(out.Errors, fmt.Sprintf("%s: %s", path, icon.Error))
				continue
			}
			out.Converted++
			icons = append(icons, icon)
		}
	}

	// Step 3: write
	if len(icons) > 0 {
		var written WriteResult
		if err := workflow.ExecuteActivity(ctx, WriteResultsActivity, WriteInput{
			OutputDir: input.OutputDir,
			Index:     input.Index,
			Manifest:  input.Manifest,
			Icons:     icons,
		}).Get(ctx, &written); err != nil {
			return nil, fmt.Errorf("write: %w", err)
		}
		out.Written = written.Written
	}

	log.Info("batch complete",
		"converted", out.Converted,
		"failed", out.Failed,
		"skipped", len(out.Skipped),
	)
	return out, nil
}
