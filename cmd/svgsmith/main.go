package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "svgsmith",
		Short:        "Generate React and Vue components from SVG icons",
		SilenceUsage: true,
	}

	var gen generateOptions
	generateCmd := &cobra.Command{
		Use:   "generate [files, dirs or globs...]",
		Short: "Convert SVG files into framework components",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen.inputs = args
			gen.propsSet = cmd.Flags().Changed("props")
			gen.typescriptSet = cmd.Flags().Changed("typescript")
			return runGenerate(cmd.Context(), gen, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	generateCmd.Flags().StringVarP(&gen.outputDir, "output", "o", "", "Output directory (default from config)")
	generateCmd.Flags().StringSliceVarP(&gen.frameworks, "frameworks", "f", nil, "Target frameworks: react, vue")
	generateCmd.Flags().BoolVar(&gen.props, "props", true, "Bind size and color props on the root element")
	generateCmd.Flags().BoolVar(&gen.typescript, "typescript", true, "Emit TypeScript (.tsx, lang=\"ts\")")
	generateCmd.Flags().StringVar(&gen.configPath, "config", "", "Config file path")
	generateCmd.Flags().BoolVar(&gen.jsonReport, "json", false, "Output the run report as JSON")
	generateCmd.Flags().BoolVar(&gen.force, "force", false, "Regenerate components whose source is unchanged")
	generateCmd.Flags().IntVarP(&gen.concurrency, "concurrency", "j", runtime.NumCPU(), "Documents converted in parallel")
	generateCmd.Flags().BoolVar(&gen.review, "review", false, "Review generated components in a TUI before writing")
	generateCmd.Flags().StringVar(&gen.reviewReport, "review-report", "", "Write review decisions as JSON to this path")
	generateCmd.Flags().BoolVar(&gen.gates, "gates", false, "Run quality gates and refuse to write on failure")

	var optConfigPath string
	optimizeCmd := &cobra.Command{
		Use:   "optimize <file>",
		Short: "Print the optimized markup of one SVG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOptimize(cmd.Context(), optConfigPath, args[0], cmd.OutOrStdout())
		},
	}
	optimizeCmd.Flags().StringVar(&optConfigPath, "config", "", "Config file path")

	frameworksCmd := &cobra.Command{
		Use:   "frameworks",
		Short: "List available target frameworks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listFrameworks(cmd.OutOrStdout())
		},
	}

	var batch batchOptions
	batchCmd := &cobra.Command{
		Use:   "batch [files, dirs or globs...]",
		Short: "Submit a batch conversion to the Temporal worker",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			batch.inputs = args
			return runBatch(cmd.Context(), batch, cmd.OutOrStdout())
		},
	}
	batchCmd.Flags().StringVarP(&batch.outputDir, "output", "o", "", "Output directory on the worker (default from config)")
	batchCmd.Flags().StringSliceVarP(&batch.frameworks, "frameworks", "f", nil, "Target frameworks: react, vue")
	batchCmd.Flags().StringVar(&batch.configPath, "config", "", "Config file path")
	batchCmd.Flags().BoolVar(&batch.force, "force", false, "Regenerate components whose source is unchanged")
	batchCmd.Flags().IntVarP(&batch.concurrency, "concurrency", "j", 8, "Icon activities in flight")
	batchCmd.Flags().BoolVar(&batch.wait, "wait", true, "Wait for the workflow result")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "svgsmith", version())
		},
	}

	rootCmd.AddCommand(generateCmd, optimizeCmd, frameworksCmd, batchCmd, versionCmd)
	return rootCmd
}
