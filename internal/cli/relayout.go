package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bpmnlayout/pkg/bpmn"
	"github.com/matzehuels/bpmnlayout/pkg/graph"
	"github.com/matzehuels/bpmnlayout/pkg/pipeline"
)

// relayoutCommand creates the relayout command.
func (c *CLI) relayoutCommand() *cobra.Command {
	var (
		prior   string
		output  string
		toggles []string
		noCache bool
		flags   layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "relayout [process.json]",
		Short: "Expand or collapse sub-processes of an existing layout",
		Long: `Expand or collapse sub-processes of an existing layout.

relayout starts from a prior layout of the same process and flips the
expanded state of every sub-process named with --toggle. Shapes that are not
affected keep their positions; only the layers around a resized
sub-process are restacked.`,
		Example: `  bpmnlayout relayout order.json --prior order.layout.json --toggle ship`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRelayout(cmd.Context(), args[0], prior, output, toggles, noCache, flags)
		},
	}

	cmd.Flags().StringVar(&prior, "prior", "", "prior layout file (default: <input>.layout.json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: overwrite the prior layout)")
	cmd.Flags().StringSliceVarP(&toggles, "toggle", "t", nil, "sub-process id to expand or collapse (repeatable)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	flags.register(cmd)
	_ = cmd.MarkFlagRequired("toggle")

	return cmd
}

func (c *CLI) runRelayout(ctx context.Context, input, priorPath, output string, toggles []string, noCache bool, flags layoutFlags) error {
	p, err := bpmn.ReadProcessFile(input)
	if err != nil {
		return fmt.Errorf("load process %s: %w", input, err)
	}
	if priorPath == "" {
		priorPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
	}
	prior, err := graph.ReadLayoutFile(priorPath)
	if err != nil {
		return fmt.Errorf("load prior layout: %w", err)
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

	prog := newProgress(c.Logger)
	l, err := runner.Relayout(ctx, p, prior, pipeline.Options{
		Layout:  flags.apply(cfg.LayoutOptions()),
		Toggles: toggles,
		Logger:  c.Logger,
	})
	if err != nil {
		return err
	}
	prog.done("Re-laid out " + p.ID)

	if output == "" {
		output = priorPath
	}
	if err := graph.WriteLayoutFile(l, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Toggled %s", strings.Join(toggles, ", "))
	printFile(output)
	return nil
}
