package cli

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/bpmnlayout/pkg/graph"
)

var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

var shapeHeaders = []string{"", "Shape", "Kind", "Scope", "Layer", "Pos", "X", "Y", "Size"}

// =============================================================================
// ShapeListModel - Interactive layout browser
// =============================================================================

// ShapeListModel is the bubbletea model for browsing the shapes of a layout.
type ShapeListModel struct {
	Layout graph.Layout
	Shapes []graph.Shape
	Cursor int
	Height int
	Offset int
	Detail bool
}

// NewShapeListModel creates a browser over l, with shapes ordered by scope,
// layer and position.
func NewShapeListModel(l graph.Layout) ShapeListModel {
	return ShapeListModel{Layout: l, Shapes: sortedShapes(l.Shapes), Height: 15}
}

func (m ShapeListModel) Init() tea.Cmd {
	return nil
}

func (m ShapeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Shapes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			m.Detail = !m.Detail
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-12, 5)
	}
	return m, nil
}

func (m ShapeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Layout " + m.Layout.ProcessID))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%.0f × %.0f, %d flows", m.Layout.Width, m.Layout.Height, len(m.Layout.Edges))))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Shapes))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, shapeRow(cursor, m.Shapes[i]))
	}
	b.WriteString(shapeTable(rows, func(row int) bool { return m.Offset+row == m.Cursor }).Render())
	b.WriteString("\n")

	if m.Detail && m.Cursor < len(m.Shapes) {
		b.WriteString("\n")
		b.WriteString(m.detail(m.Shapes[m.Cursor]))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Shapes))))

	return b.String()
}

// detail describes a shape and the flows attached to it.
func (m ShapeListModel) detail(s graph.Shape) string {
	var b strings.Builder
	line := func(k, v string) {
		b.WriteString(styleKey.Render(k) + " " + StyleValue.Render(v) + "\n")
	}
	line("id", s.ID)
	if s.Label != "" {
		line("label", s.Label)
	}
	line("bounds", fmt.Sprintf("%.1f, %.1f, %.1f × %.1f", s.X, s.Y, s.Width, s.Height))
	if s.LabelBounds != nil {
		lb := s.LabelBounds
		line("label at", fmt.Sprintf("%.1f, %.1f, %.1f × %.1f", lb.X, lb.Y, lb.Width, lb.Height))
	}
	for _, e := range m.Layout.Edges {
		if e.Parent != s.Parent || (e.Source != s.ID && e.Target != s.ID) {
			continue
		}
		dir := "→ " + e.Target
		if e.Target == s.ID {
			dir = "← " + e.Source
		}
		if e.BackEdge {
			dir += " (loop)"
		}
		line(e.ID, fmt.Sprintf("%s  %d waypoints", dir, len(e.Waypoints)))
	}
	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

func sortedShapes(shapes []graph.Shape) []graph.Shape {
	out := slices.Clone(shapes)
	slices.SortStableFunc(out, func(a, b graph.Shape) int {
		return cmp.Or(
			cmp.Compare(a.Parent, b.Parent),
			cmp.Compare(a.Layer, b.Layer),
			cmp.Compare(a.Position, b.Position),
		)
	})
	return out
}

func shapeRow(cursor string, s graph.Shape) []string {
	scope := s.Parent
	if scope == "" {
		scope = "—"
	}
	kind := s.Kind
	if s.Expanded {
		kind += " [-]"
	}
	return []string{
		cursor, s.ID, kind, scope,
		fmt.Sprint(s.Layer), fmt.Sprint(s.Position),
		fmt.Sprintf("%.0f", s.X), fmt.Sprintf("%.0f", s.Y),
		fmt.Sprintf("%.0f×%.0f", s.Width, s.Height),
	}
}

// shapeTable renders rows with the shape headers; rows for which current
// returns true are highlighted.
func shapeTable(rows [][]string, current func(row int) bool) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(shapeHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return listHeaderStyle
			case current(row):
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			case col >= 4:
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle()
		})
}
