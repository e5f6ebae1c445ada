package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bpmnlayout/pkg/bpmn"
	"github.com/matzehuels/bpmnlayout/pkg/render/nodelink"
)

// dotCommand creates the dot command.
func (c *CLI) dotCommand() *cobra.Command {
	var (
		output   string
		detailed bool
		withSVG  bool
	)

	cmd := &cobra.Command{
		Use:   "dot [process.json]",
		Short: "Export the process graph as Graphviz DOT",
		Long: `Export the process graph as Graphviz DOT.

The export is independent of the layout engine and is meant for comparing
its result with a Graphviz rendering. With --svg the graph is rendered by
the embedded Graphviz instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDOT(cmd.Context(), cmd.OutOrStdout(), args[0], output, detailed, withSVG)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include element kinds in node labels")
	cmd.Flags().BoolVar(&withSVG, "svg", false, "render to SVG with Graphviz")

	return cmd
}

func (c *CLI) runDOT(ctx context.Context, stdout io.Writer, input, output string, detailed, withSVG bool) error {
	p, err := bpmn.ReadProcessFile(input)
	if err != nil {
		return fmt.Errorf("load process %s: %w", input, err)
	}

	data := []byte(nodelink.ToDOT(p, nodelink.Options{Detailed: detailed}))
	if withSVG {
		c.Logger.Info("Rendering with Graphviz")
		if data, err = nodelink.RenderSVG(ctx, string(data)); err != nil {
			return err
		}
	}

	if output == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	printFile(output)
	return nil
}
