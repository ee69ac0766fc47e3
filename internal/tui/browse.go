package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/J3rry320/mdtree/internal/markdown"
	"github.com/J3rry320/mdtree/internal/render"
	"github.com/J3rry320/mdtree/internal/styles"
)

const summaryWidth = 60

// previewMode selects what the preview pane shows
type previewMode int

const (
	previewRendered previewMode = iota
	previewTree
)

// BrowseData holds a parsed document
type BrowseData struct {
	Path  string
	Nodes []*markdown.Node
}

// BrowseMsg is sent when browse data is ready
type BrowseMsg struct {
	Data *BrowseData
	Err  error
}

type browseModel struct {
	table       table.Model
	viewport    viewport.Model
	data        *BrowseData
	err         error
	ready       bool
	showingNode bool
	mode        previewMode
	selected    *markdown.Node
	width       int
	height      int
}

// InitBrowseModel creates a new node browser model
func InitBrowseModel() browseModel {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Line", Width: 6},
		{Title: "Kind", Width: 16},
		{Title: "Content", Width: summaryWidth},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(styles.Border)).
		BorderBottom(true).
		Bold(false)
	ts.Selected = styles.SelectedStyle
	t.SetStyles(ts)

	vp := viewport.New(100, 20)
	vp.Style = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(styles.Border)).
		Padding(1)

	return browseModel{
		table:    t,
		viewport: vp,
	}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(msg.Height - 10)
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 6
		if m.showingNode {
			m.refreshPreview()
		}

	case tea.KeyMsg:
		if m.showingNode {
			switch msg.String() {
			case "q", "esc":
				m.showingNode = false
				return m, nil
			case "tab", "t":
				if m.mode == previewRendered {
					m.mode = previewTree
				} else {
					m.mode = previewRendered
				}
				m.refreshPreview()
				return m, nil
			case "up", "k", "down", "j", "pgup", "pgdown":
				m.viewport, cmd = m.viewport.Update(msg)
				return m, cmd
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k", "down", "j", "pgup", "pgdown", "home", "end":
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		case "enter", "p":
			if m.data != nil && len(m.data.Nodes) > 0 {
				idx := m.table.Cursor()
				if idx >= 0 && idx < len(m.data.Nodes) {
					m.selected = m.data.Nodes[idx]
					m.showingNode = true
					m.mode = previewRendered
					m.refreshPreview()
				}
			}
			return m, nil
		}

	case BrowseMsg:
		m.ready = true
		m.data = msg.Data
		m.err = msg.Err

		if m.data != nil {
			m.table.SetRows(NodeRows(m.data.Nodes))
		}
		return m, nil
	}

	return m, nil
}

func (m *browseModel) refreshPreview() {
	if m.selected == nil {
		return
	}
	var content string
	switch m.mode {
	case previewTree:
		data, err := yaml.Marshal(m.selected)
		if err != nil {
			content = styles.ErrorStyle.Render("✗ " + err.Error())
		} else {
			content = string(data)
		}
	default:
		width := m.viewport.Width - 4
		if width <= 0 {
			width = 80
		}
		content = render.TerminalNode(m.selected, width)
	}
	m.viewport.SetContent(content)
	m.viewport.GotoTop()
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("mdtree Node Browser"))
	b.WriteString("\n\n")

	if m.err != nil {
		return styles.ErrorStyle.Render("✗ Error: "+m.err.Error()) + "\n"
	}

	if !m.ready || m.data == nil {
		return b.String()
	}

	if m.showingNode {
		label := "Rendered"
		if m.mode == previewTree {
			label = "Tree"
		}
		b.WriteString(styles.LabelStyle.Render(label+": ") +
			styles.HighlightStyle.Render(m.selected.Kind.String()) +
			styles.LabelStyle.Render(fmt.Sprintf(" at line %d", m.selected.Line)))
		b.WriteString("\n\n")
		b.WriteString(m.viewport.View())
		b.WriteString("\n\n")
		b.WriteString(styles.HelpStyle.Render("↑/k up • ↓/j down • tab rendered/tree • esc/q back"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(styles.LabelStyle.Render(fmt.Sprintf("%s: %d nodes", m.data.Path, len(m.data.Nodes))))
	b.WriteString("\n\n")
	b.WriteString(styles.TableStyle.Render(m.table.View()))
	b.WriteString("\n\n")
	b.WriteString(styles.HelpStyle.Render("↑/k up • ↓/j down • enter/p preview • q quit"))
	b.WriteString("\n")

	return b.String()
}

// NodeRows builds one table row per top-level node
func NodeRows(nodes []*markdown.Node) []table.Row {
	rows := make([]table.Row, 0, len(nodes))
	for i, n := range nodes {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(n.Line),
			n.Kind.String(),
			Summary(n, summaryWidth),
		})
	}
	return rows
}

// Summary flattens a node to one line of plain text, truncated to width
func Summary(n *markdown.Node, width int) string {
	text := n.InnerText()
	switch n.Kind {
	case markdown.KindImage:
		text = n.Attrs.Alt + " " + n.Attrs.Src
	case markdown.KindRule:
		text = "---"
	case markdown.KindHeading:
		text = strings.Repeat("#", n.Level) + " " + text
	}

	text = strings.Join(strings.Fields(stripTags(text)), " ")
	runes := []rune(text)
	if width > 1 && len(runes) > width {
		return string(runes[:width-1]) + "…"
	}
	return text
}
