package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bpmnlayout/pkg/bpmn"
	"github.com/matzehuels/bpmnlayout/pkg/graph"
	"github.com/matzehuels/bpmnlayout/pkg/layout"
	"github.com/matzehuels/bpmnlayout/pkg/pipeline"
)

// layoutFlags are the engine options settable on the command line. Zero
// values keep the configured value.
type layoutFlags struct {
	hspace, vspace float64
	charWidth      float64
	workers        int
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.hspace, "hspace", 0, "gap between layer columns")
	cmd.Flags().Float64Var(&f.vspace, "vspace", 0, "gap between rows of a layer")
	cmd.Flags().Float64Var(&f.charWidth, "char-width", 0, "estimated label glyph width")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "sub-process bodies laid out concurrently")
}

func (f *layoutFlags) apply(o layout.Options) layout.Options {
	if f.hspace > 0 {
		o.HorizontalSpacing = f.hspace
	}
	if f.vspace > 0 {
		o.VerticalSpacing = f.vspace
	}
	if f.charWidth > 0 {
		o.CharWidth = f.charWidth
	}
	if f.workers > 0 {
		o.Workers = f.workers
	}
	return o
}

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
		withSVG bool
		flags   layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [process.json]",
		Short: "Compute a diagram layout for a process",
		Long: `Compute a diagram layout for a process.

The layout command reads a process model (JSON), assigns coordinates to every
flow element, routes the sequence flows and places labels. The result is a
layout.json file that can be rendered with 'render' or expanded with
'relayout'.

Results are cached; use --no-cache or --refresh to bypass the cache.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], output, noCache, refresh, withSVG, flags)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute and overwrite cached results")
	cmd.Flags().BoolVar(&withSVG, "svg", false, "also write an SVG preview next to the layout")
	flags.register(cmd)

	return cmd
}

// runLayout loads the process, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input, output string, noCache, refresh, withSVG bool, flags layoutFlags) error {
	p, err := bpmn.ReadProcessFile(input)
	if err != nil {
		return fmt.Errorf("load process %s: %w", input, err)
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{
		Layout:  flags.apply(cfg.LayoutOptions()),
		Refresh: refresh,
		Formats: []string{pipeline.FormatJSON},
		Logger:  c.Logger,
	}
	if withSVG {
		opts.Formats = append(opts.Formats, pipeline.FormatSVG)
	}

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()
	result, err := runner.Execute(ctx, p, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()
	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
	}
	if err := graph.WriteLayoutFile(result.Layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	if withSVG {
		svgPath := strings.TrimSuffix(outputPath, ".json") + ".svg"
		if err := os.WriteFile(svgPath, result.Artifacts[pipeline.FormatSVG], 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", svgPath, err)
		}
		printFile(svgPath)
	}
	printStats(result.Stats, result.CacheInfo.LayoutHit)
	printNewline()
	printNextStep("Render", appName+" render "+outputPath)

	return nil
}
