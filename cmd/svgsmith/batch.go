package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	temporalclient "go.temporal.io/sdk/client"

	temporalmod "github.com/efebarandurmaz/svgsmith/internal/temporal"
)

type batchOptions struct {
	inputs      []string
	outputDir   string
	frameworks  []string
	configPath  string
	force       bool
	concurrency int
	wait        bool
}

// batchInput resolves inputs to absolute paths so the worker can read them
// regardless of its working directory.
func batchInput(opts batchOptions, outputDir string, frameworks []string, index, manifest bool) (temporalmod.BatchInput, error) {
	paths, err := collectInputs(opts.inputs)
	if err != nil {
		return temporalmod.BatchInput{}, err
	}
	if len(paths) == 0 {
		return temporalmod.BatchInput{}, fmt.Errorf("no .svg files found")
	}
	for i, p := range paths {
		if paths[i], err = filepath.Abs(p); err != nil {
			return temporalmod.BatchInput{}, err
		}
	}
	out, err := filepath.Abs(outputDir)
	if err != nil {
		return temporalmod.BatchInput{}, err
	}
	return temporalmod.BatchInput{
		Sources:     paths,
		Frameworks:  frameworks,
		OutputDir:   out,
		Index:       index,
		Manifest:    manifest,
		Force:       opts.force,
		Concurrency: opts.concurrency,
	}, nil
}

func runBatch(ctx context.Context, opts batchOptions, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig(opts.configPath, opts.outputDir, opts.frameworks)
	if err != nil {
		return err
	}
	if err := cfg.Check(); err != nil {
		return err
	}
	input, err := batchInput(opts, cfg.Output.Dir, cfg.Frameworks, cfg.Output.Index, cfg.Output.Manifest)
	if err != nil {
		return err
	}

	c, err := temporalclient.Dial(temporalclient.Options{
		HostPort:  cfg.Temporal.Host,
		Namespace: cfg.Temporal.Namespace,
	})
	if err != nil {
		return fmt.Errorf("temporal client: %w", err)
	}
	defer c.Close()

	run, err := c.ExecuteWorkflow(ctx, temporalclient.StartWorkflowOptions{
		ID:        fmt.Sprintf("svgsmith-batch-%d", time.Now().UnixNano()),
		TaskQueue: cfg.Temporal.TaskQueue,
	}, temporalmod.ConvertBatchWorkflow, input)
	if err != nil {
		return fmt.Errorf("start workflow: %w", err)
	}
	fmt.Fprintf(stdout, "Submitted %d icons as workflow %s (run %s)\n", len(input.Sources), run.GetID(), run.GetRunID())
	if !opts.wait {
		return nil
	}

	var result temporalmod.BatchOutput
	if err := run.Get(ctx, &result); err != nil {
		return fmt.Errorf("workflow: %w", err)
	}
	fmt.Fprintf(stdout, "Converted %d, failed %d, unchanged %d, wrote %d files\n",
		result.Converted, result.Failed, len(result.Skipped), len(result.Written))
	for _, e := range result.Errors {
		fmt.Fprintf(stdout, "  • %s\n", e)
	}
	if result.Failed > 0 {
		return fmt.Errorf("%d icons failed", result.Failed)
	}
	return nil
}
