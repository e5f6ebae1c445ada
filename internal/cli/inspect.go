package cli

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bpmnlayout/pkg/graph"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "inspect [layout.json]",
		Short: "Browse the shapes of a layout file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := graph.ReadLayoutFile(args[0])
			if err != nil {
				return err
			}
			if plain {
				return printShapeTable(cmd.OutOrStdout(), l)
			}
			_, err = tea.NewProgram(NewShapeListModel(l), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print a table instead of the interactive browser")

	return cmd
}

// printShapeTable writes all shapes of l as a table.
func printShapeTable(w io.Writer, l graph.Layout) error {
	shapes := sortedShapes(l.Shapes)
	rows := make([][]string, len(shapes))
	for i, s := range shapes {
		rows[i] = shapeRow("", s)
	}
	_, err := fmt.Fprintln(w, shapeTable(rows, func(int) bool { return false }).Render())
	return err
}
