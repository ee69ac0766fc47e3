package render

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/J3rry320/mdtree/internal/markdown"
)

// BaseClass is always present on the document container
const BaseClass = "markdown-body"

// ContainerOptions describes the element that wraps a rendered document
type ContainerOptions struct {
	// Article wraps the document in <article> instead of <div>
	Article bool

	// ID of the container. A random one is generated when empty.
	ID string

	Class     string
	Style     markdown.Style
	AriaLabel string
}

// NewContainerID generates a short unique container id
func NewContainerID() string {
	return "mdtree-" + uuid.New().String()[:8]
}

// ParseFunc turns markdown text into nodes
type ParseFunc func(text string, opts markdown.Options) ([]*markdown.Node, error)

// Document parses text and renders it inside its container. It is the
// failure boundary around the parser: on an error or a panic it returns the
// fallback rendering of the raw text together with the error.
func Document(text string, opts markdown.Options, c ContainerOptions) (string, error) {
	out, _, err := DocumentWith(markdown.Parse, text, opts, c)
	return out, err
}

// DocumentWith is Document with the parser supplied. It also returns the
// parsed nodes, which are nil when the fallback was rendered.
func DocumentWith(parse ParseFunc, text string, opts markdown.Options, c ContainerOptions) (out string, nodes []*markdown.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render panicked: %v", r)
			out = Fallback(text, c)
			nodes = nil
		}
	}()

	nodes, err = parse(text, opts)
	if err != nil {
		return Fallback(text, c), nil, fmt.Errorf("failed to parse markdown: %w", err)
	}
	return HTML(nodes, c), nodes, nil
}

// Fallback renders the raw text, escaped, as a single paragraph
func Fallback(text string, c ContainerOptions) string {
	c.Class = strings.TrimSpace(c.Class + " markdown-fallback")
	var b strings.Builder
	head, tail := container(c)
	b.WriteString(head)
	b.WriteString("<p>" + html.EscapeString(text) + "</p>\n")
	b.WriteString(tail)
	return b.String()
}

// HTML renders nodes inside their container
func HTML(nodes []*markdown.Node, c ContainerOptions) string {
	var b strings.Builder
	head, tail := container(c)
	b.WriteString(head)
	for _, n := range nodes {
		writeNode(&b, n)
		b.WriteByte('\n')
	}
	b.WriteString(tail)
	return b.String()
}

func container(c ContainerOptions) (string, string) {
	tag := "div"
	if c.Article {
		tag = "article"
	}
	id := c.ID
	if id == "" {
		id = NewContainerID()
	}

	attrs := markdown.Attributes{
		Class: strings.TrimSpace(BaseClass + " " + c.Class),
		Style: c.Style,
	}
	open := "<" + tag + ` id="` + html.EscapeString(id) + `"` + attrs.HTML()
	if c.AriaLabel != "" {
		open += ` aria-label="` + html.EscapeString(c.AriaLabel) + `"`
	}
	return open + ">\n", "</" + tag + ">\n"
}

// Page wraps a rendered document in a standalone HTML page
func Page(title, lang, body string) string {
	if lang == "" {
		lang = "en"
	}
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString(`<html lang="` + html.EscapeString(lang) + `">` + "\n")
	b.WriteString("<head>\n<meta charset=\"utf-8\">\n")
	if title != "" {
		b.WriteString("<title>" + html.EscapeString(title) + "</title>\n")
	}
	b.WriteString("</head>\n<body>\n")
	b.WriteString(body)
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// inner renders the children of n back to back. Text leaves already hold
// markup.
func inner(n *markdown.Node) string {
	var b strings.Builder
	for _, child := range n.Children {
		if child.Kind == markdown.KindText {
			b.WriteString(child.Text)
			continue
		}
		writeNode(&b, child)
	}
	return b.String()
}

func writeNode(b *strings.Builder, n *markdown.Node) {
	switch n.Kind {
	case markdown.KindHeading:
		tag := "h" + strconv.Itoa(n.Level)
		b.WriteString("<" + tag + idAttr(n.ID) + n.Attrs.HTML() + ">" + inner(n) + "</" + tag + ">")

	case markdown.KindParagraph:
		b.WriteString("<p" + n.Attrs.HTML() + ">" + inner(n) + "</p>")

	case markdown.KindUnorderedList:
		b.WriteString("<ul" + n.Attrs.HTML() + ">" + inner(n) + "</ul>")

	case markdown.KindOrderedList:
		start := ""
		if n.Start > 1 {
			start = ` start="` + strconv.Itoa(n.Start) + `"`
		}
		b.WriteString("<ol" + start + n.Attrs.HTML() + ">" + inner(n) + "</ol>")

	case markdown.KindListItem:
		b.WriteString("<li>" + inner(n) + "</li>")

	case markdown.KindTaskItem:
		attrs := n.Attrs
		attrs.Class = strings.TrimSpace("task-item " + attrs.Class)
		b.WriteString("<div" + attrs.HTML() + ">" + inner(n) + "</div>")

	case markdown.KindCheckbox:
		checked := ""
		if n.Checked() {
			checked = " checked"
		}
		b.WriteString(`<input type="checkbox" disabled` + checked + "> ")

	case markdown.KindTable:
		writeTable(b, n)

	case markdown.KindCodeBlock:
		// class belongs to <code>, everything else to <pre>
		pre := n.Attrs
		pre.Class = ""
		code := markdown.Attributes{Class: n.Attrs.Class}
		b.WriteString("<pre" + idAttr(n.ID) + pre.HTML() + "><code" + code.HTML() + ">" + inner(n) + "</code></pre>")

	case markdown.KindBlockquote:
		b.WriteString("<blockquote" + n.Attrs.HTML() + ">")
		for _, child := range n.Children {
			if child.Kind == markdown.KindText {
				b.WriteString("<p>" + child.Text + "</p>")
				continue
			}
			writeNode(b, child)
		}
		b.WriteString("</blockquote>")

	case markdown.KindCitation:
		b.WriteString("<footer><cite>" + inner(n) + "</cite></footer>")

	case markdown.KindImage:
		b.WriteString("<img" + n.Attrs.HTML() + ">")

	case markdown.KindDefinitionList:
		b.WriteString("<dl" + n.Attrs.HTML() + ">" + inner(n) + "</dl>")

	case markdown.KindTerm:
		b.WriteString("<dt>" + inner(n) + "</dt>")

	case markdown.KindDefinition:
		b.WriteString("<dd>" + inner(n) + "</dd>")

	case markdown.KindError:
		b.WriteString(`<div class="markdown-error" role="alert">` + inner(n) + "</div>")

	case markdown.KindRule:
		b.WriteString("<hr>")

	case markdown.KindText:
		b.WriteString(n.Text)
	}
}

// writeTable zips body cells against the header; extra cells are dropped
// and missing cells produce no <td>
func writeTable(b *strings.Builder, n *markdown.Node) {
	t := n.Table
	if t == nil {
		return
	}
	b.WriteString("<table" + n.Attrs.HTML() + "><thead><tr>")
	for i, cell := range t.Header {
		b.WriteString("<th" + alignAttr(t.Align, i) + ">" + cell + "</th>")
	}
	b.WriteString("</tr></thead><tbody>")
	for _, row := range t.Rows {
		b.WriteString("<tr>")
		for i, cell := range row {
			if i >= len(t.Header) {
				break
			}
			b.WriteString("<td" + alignAttr(t.Align, i) + ">" + cell + "</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
}

func alignAttr(align []markdown.Alignment, i int) string {
	if i >= len(align) || align[i] == markdown.AlignNone {
		return ""
	}
	return ` style="text-align: ` + string(align[i]) + `"`
}

func idAttr(id string) string {
	if id == "" {
		return ""
	}
	return ` id="` + html.EscapeString(id) + `"`
}
