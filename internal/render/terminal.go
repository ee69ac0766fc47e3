package render

import (
	"bytes"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/J3rry320/mdtree/internal/markdown"
	"github.com/J3rry320/mdtree/internal/styles"
)

// spanStyle maps one inline tag back to a terminal style. Inner tags come
// first so nested spans are styled before their parents.
type spanStyle struct {
	pattern *regexp.Regexp
	style   lipgloss.Style
}

var (
	spanStyles = []spanStyle{
		{regexp.MustCompile(`<code>(.*?)</code>`), styles.CodeStyle},
		{regexp.MustCompile(`<span class="math">(.*?)</span>`), styles.CodeStyle},
		{regexp.MustCompile(`<em>(.*?)</em>`), lipgloss.NewStyle().Italic(true)},
		{regexp.MustCompile(`<strong>(.*?)</strong>`), lipgloss.NewStyle().Bold(true)},
		{regexp.MustCompile(`<del>(.*?)</del>`), lipgloss.NewStyle().Strikethrough(true)},
		{regexp.MustCompile(`<mark>(.*?)</mark>`), styles.MarkStyle},
		{regexp.MustCompile(`<a [^>]*>(.*?)</a>`), styles.LinkStyle},
	}
	imgTag     = regexp.MustCompile(`<img [^>]*alt="([^"]*)"[^>]*>`)
	anyTag     = regexp.MustCompile(`<[^>]+>`)
	marginLeft = regexp.MustCompile(`^(\d+)px$`)
)

// Terminal renders nodes for display in a terminal of the given width
func Terminal(nodes []*markdown.Node, width int) string {
	if width <= 0 {
		width = 80
	}
	blocks := make([]string, 0, len(nodes))
	for _, n := range nodes {
		blocks = append(blocks, TerminalNode(n, width))
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

// TerminalNode renders a single top-level node
func TerminalNode(n *markdown.Node, width int) string {
	text := styles.NormalTextStyle.Width(width)

	switch n.Kind {
	case markdown.KindHeading:
		return styles.HeadingStyle.Render(strings.Repeat("#", n.Level) + " " + plain(n.InnerText()))

	case markdown.KindParagraph:
		return text.Render(ansi(n.InnerText()))

	case markdown.KindUnorderedList, markdown.KindOrderedList:
		bullet := "•"
		if n.Kind == markdown.KindOrderedList {
			bullet = strconv.Itoa(n.Start) + "."
		}
		return indent(n) + styles.BulletStyle.Render(bullet) + " " + ansi(n.InnerText())

	case markdown.KindTaskItem:
		box := styles.DimStyle.Render("[ ]")
		if n.Checked() {
			box = styles.SuccessStyle.Render("[✓]")
		}
		return indent(n) + box + " " + ansi(n.InnerText())

	case markdown.KindTable:
		return terminalTable(n)

	case markdown.KindCodeBlock:
		return styles.CodeBlockStyle.Render(highlight(n))

	case markdown.KindBlockquote:
		var quote, cite string
		for _, child := range n.Children {
			if child.Kind == markdown.KindCitation {
				cite = "— " + ansi(child.InnerText())
				continue
			}
			quote = ansi(child.Text)
		}
		if cite != "" {
			quote += "\n" + styles.DimStyle.Render(cite)
		}
		return styles.QuoteStyle.Render(quote)

	case markdown.KindImage:
		label := "[image: " + plain(n.Attrs.Alt) + "]"
		return styles.LinkStyle.Render(label) + " " + styles.DimStyle.Render(plain(n.Attrs.Src))

	case markdown.KindDefinitionList:
		var lines []string
		for _, child := range n.Children {
			if child.Kind == markdown.KindTerm {
				lines = append(lines, styles.LabelStyle.Render(plain(child.InnerText())))
				continue
			}
			lines = append(lines, "  "+ansi(child.InnerText()))
		}
		return strings.Join(lines, "\n")

	case markdown.KindError:
		return styles.ErrorStyle.Render("✗ " + n.InnerText())

	case markdown.KindRule:
		return styles.DimStyle.Render(strings.Repeat("─", width))
	}
	return plain(n.InnerText())
}

func terminalTable(n *markdown.Node) string {
	t := n.Table
	if t == nil {
		return ""
	}

	// Cells are zipped against the header like the HTML renderer does
	rows := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		cells := make([]string, len(t.Header))
		for i := range cells {
			if i < len(row) {
				cells[i] = plain(row[i])
			}
		}
		rows = append(rows, cells)
	}
	header := make([]string, len(t.Header))
	for i, h := range t.Header {
		header[i] = plain(h)
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(styles.Border))).
		Headers(header...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				s = s.Inherit(styles.HeaderStyle)
			}
			if col < len(t.Align) {
				switch t.Align[col] {
				case markdown.AlignCenter:
					s = s.Align(lipgloss.Center)
				case markdown.AlignRight:
					s = s.Align(lipgloss.Right)
				}
			}
			return s
		})
	return tbl.String()
}

// highlight colors code with chroma, falling back to the plain text
func highlight(n *markdown.Node) string {
	source := html.UnescapeString(n.InnerText())
	lang := n.Attrs.Language
	if lang == "" {
		return source
	}

	var buf bytes.Buffer
	if err := quick.Highlight(&buf, source, lang, "terminal256", styles.ChromaStyle); err != nil {
		return source
	}
	return strings.TrimRight(buf.String(), "\n")
}

// indent turns a margin-left style back into leading spaces
func indent(n *markdown.Node) string {
	m := marginLeft.FindStringSubmatch(n.Attrs.Style["margin-left"])
	if m == nil {
		return ""
	}
	px, _ := strconv.Atoi(m[1])
	return strings.Repeat("  ", px/20)
}

// ansi converts inline markup into terminal styling
func ansi(markup string) string {
	markup = imgTag.ReplaceAllString(markup, "[image: $1]")
	for _, s := range spanStyles {
		style := s.style
		markup = s.pattern.ReplaceAllStringFunc(markup, func(match string) string {
			inner := s.pattern.FindStringSubmatch(match)[1]
			return style.Render(inner)
		})
	}
	return plain(markup)
}

// plain strips tags and decodes entities
func plain(markup string) string {
	return html.UnescapeString(anyTag.ReplaceAllString(markup, ""))
}
