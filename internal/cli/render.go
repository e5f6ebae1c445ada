package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bpmnlayout/pkg/graph"
	"github.com/matzehuels/bpmnlayout/pkg/render/svg"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string  // output file, "-" for stdout
	padding  float64 // margin around the diagram
	noLabels bool    // omit label text
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{padding: svg.DefaultPadding}

	cmd := &cobra.Command{
		Use:   "render [layout.json]",
		Short: "Render a layout file to an SVG preview",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", `output file, "-" for stdout (default: <input>.svg)`)
	cmd.Flags().Float64Var(&opts.padding, "padding", opts.padding, "margin around the diagram")
	cmd.Flags().BoolVar(&opts.noLabels, "no-labels", false, "omit labels")

	return cmd
}

func (c *CLI) runRender(stdout io.Writer, input string, opts renderOpts) error {
	if opts.padding < 0 {
		return fmt.Errorf("padding must not be negative")
	}
	l, err := graph.ReadLayoutFile(input)
	if err != nil {
		return err
	}

	svgOpts := []svg.Option{svg.WithPadding(opts.padding)}
	if opts.noLabels {
		svgOpts = append(svgOpts, svg.WithoutLabels())
	}
	data := svg.Render(l, svgOpts...)
	c.Logger.Debugf("Rendered %d shapes, %d flows (%d bytes)", len(l.Shapes), len(l.Edges), len(data))

	if opts.output == "-" {
		_, err := stdout.Write(data)
		return err
	}
	path := opts.output
	if path == "" {
		path = svgPath(input)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	printSuccess("Rendered %s", l.ProcessID)
	printFile(path)
	return nil
}

// svgPath derives the SVG path from a layout path:
// order.layout.json becomes order.svg.
func svgPath(input string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	base = strings.TrimSuffix(base, ".layout")
	return base + ".svg"
}
