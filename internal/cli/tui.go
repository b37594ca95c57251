package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/bubbletreemap/pkg/graph"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	headerStyle       = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// NodeBrowserModel - Interactive layout browser
// =============================================================================

// NodeBrowserModel is the bubbletea model for browsing the nodes of a layout.
type NodeBrowserModel struct {
	Layout     graph.Layout
	Cursor     int
	Height     int
	Offset     int
	LeavesOnly bool

	visible []int // Indexes into Layout.Nodes
}

// NewNodeBrowserModel creates a browser over every node of l.
func NewNodeBrowserModel(l graph.Layout) NodeBrowserModel {
	m := NodeBrowserModel{Layout: l, Height: 15}
	m.refresh()
	return m
}

func (m *NodeBrowserModel) refresh() {
	m.visible = m.visible[:0]
	for i, n := range m.Layout.Nodes {
		if !m.LeavesOnly || n.Leaf {
			m.visible = append(m.visible, i)
		}
	}
	m.Cursor = min(m.Cursor, max(len(m.visible)-1, 0))
	m.clampOffset()
}

func (m *NodeBrowserModel) clampOffset() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	m.Offset = max(0, min(m.Offset, max(len(m.visible)-m.Height, 0)))
}

// Current returns the node under the cursor.
func (m NodeBrowserModel) Current() (graph.Node, bool) {
	if len(m.visible) == 0 {
		return graph.Node{}, false
	}
	return m.Layout.Nodes[m.visible[m.Cursor]], true
}

func (m NodeBrowserModel) Init() tea.Cmd {
	return nil
}

func (m NodeBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.visible)-1 {
				m.Cursor++
			}
		case "pgup":
			m.Cursor = max(m.Cursor-m.Height, 0)
		case "pgdown":
			m.Cursor = min(m.Cursor+m.Height, max(len(m.visible)-1, 0))
		case "g", "home":
			m.Cursor = 0
		case "G", "end":
			m.Cursor = max(len(m.visible)-1, 0)
		case "l":
			m.LeavesOnly = !m.LeavesOnly
			m.visible = append([]int(nil), m.visible...)
			m.refresh()
		}
		m.clampOffset()
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-14, 5)
		m.clampOffset()
	}
	return m, nil
}

func (m NodeBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Bubble Treemap"))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %gx%g  padding %g  curvature %g",
		m.Layout.Width, m.Layout.Height, m.Layout.Padding, m.Layout.Curvature)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  l leaves only  g/G top/bottom  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.visible))
	var rows [][]string
	for i := m.Offset; i < end; i++ {
		n := m.Layout.Nodes[m.visible[i]]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			strings.Repeat("  ", n.Depth) + n.Name,
			swatch(n.Color),
			fmt.Sprintf("%.1f", n.Value),
			fmt.Sprintf("%.1f", n.R),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Node", "Colour", "Value", "Radius").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	if n, ok := m.Current(); ok {
		b.WriteString(nodeDetails(n))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(m.visible)), len(m.visible))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// swatch renders a colour block followed by its hex code.
func swatch(hex string) string {
	if hex == "" {
		return "—"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("●") + " " + hex
}

func nodeDetails(n graph.Node) string {
	kind := "group"
	if n.Leaf {
		kind = "leaf"
	}
	lines := []string{
		fmt.Sprintf("  %s %s", StyleHighlight.Render(n.Name), StyleDim.Render(fmt.Sprintf("(%s, id %d, depth %d)", kind, n.ID, n.Depth))),
		fmt.Sprintf("  centre (%.2f, %.2f)  radius %.2f", n.X, n.Y, n.R),
	}
	if n.Uncertainty > 0 {
		lines = append(lines, fmt.Sprintf("  uncertainty %.2f", n.Uncertainty))
	}
	return StyleValue.Render(strings.Join(lines, "\n")) + "\n"
}

// layoutTable renders every node of l as a static table.
func layoutTable(l graph.Layout) string {
	rows := make([][]string, len(l.Nodes))
	for i, n := range l.Nodes {
		rows[i] = []string{
			fmt.Sprint(n.ID),
			strings.Repeat("  ", n.Depth) + n.Name,
			n.Color,
			fmt.Sprintf("%.2f", n.X),
			fmt.Sprintf("%.2f", n.Y),
			fmt.Sprintf("%.2f", n.R),
			fmt.Sprintf("%g", n.Value),
		}
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Node", "Colour", "X", "Y", "R", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
