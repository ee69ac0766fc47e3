package markdown

import (
	"fmt"
	"strings"
)

// Kind identifies what a Node represents
type Kind int

const (
	KindHeading Kind = iota
	KindParagraph
	KindUnorderedList
	KindOrderedList
	KindTaskItem
	KindTable
	KindCodeBlock
	KindBlockquote
	KindImage
	KindDefinitionList
	KindError
	KindRule

	// Kinds below only appear as children of the block kinds above
	KindListItem
	KindTerm
	KindDefinition
	KindCitation
	KindCheckbox
	KindText
)

var kindNames = [...]string{
	KindHeading:        "heading",
	KindParagraph:      "paragraph",
	KindUnorderedList:  "unordered-list",
	KindOrderedList:    "ordered-list",
	KindTaskItem:       "task-item",
	KindTable:          "table",
	KindCodeBlock:      "code-block",
	KindBlockquote:     "blockquote",
	KindImage:          "image",
	KindDefinitionList: "definition-list",
	KindError:          "error",
	KindRule:           "rule",
	KindListItem:       "list-item",
	KindTerm:           "term",
	KindDefinition:     "definition",
	KindCitation:       "citation",
	KindCheckbox:       "checkbox",
	KindText:           "text",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText renders the kind by name in JSON and YAML dumps
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a kind name
func (k *Kind) UnmarshalText(b []byte) error {
	for i, name := range kindNames {
		if name == string(b) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown node kind %q", string(b))
}

// Alignment is the horizontal alignment of a table column
type Alignment string

const (
	AlignNone   Alignment = ""
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Table holds the cells of a table node. Cells are already inline-formatted.
// Body rows keep their own length; nothing is padded or truncated.
type Table struct {
	Header []string    `json:"header" yaml:"header"`
	Align  []Alignment `json:"align" yaml:"align"`
	Rows   [][]string  `json:"rows" yaml:"rows"`
}

// Node is one unit of parsed output
type Node struct {
	Kind Kind `json:"kind" yaml:"kind"`

	// Line is the 1-based source line the node starts on
	Line int `json:"line,omitempty" yaml:"line,omitempty"`

	Level int    `json:"level,omitempty" yaml:"level,omitempty"`
	ID    string `json:"id,omitempty" yaml:"id,omitempty"`
	Start int    `json:"start,omitempty" yaml:"start,omitempty"`

	// Text is set on KindText leaves
	Text string `json:"text,omitempty" yaml:"text,omitempty"`

	Attrs    Attributes `json:"attributes" yaml:"attributes,omitempty"`
	Children []*Node    `json:"children,omitempty" yaml:"children,omitempty"`
	Table    *Table     `json:"table,omitempty" yaml:"table,omitempty"`
}

// textNode creates a leaf holding markup or literal text
func textNode(text string) *Node {
	return &Node{Kind: KindText, Text: text}
}

// InnerText concatenates the text of all leaves below n, including table cells
func (n *Node) InnerText() string {
	var b strings.Builder
	n.collectText(&b)
	return b.String()
}

func (n *Node) collectText(b *strings.Builder) {
	if n == nil {
		return
	}
	if n.Kind == KindText {
		b.WriteString(n.Text)
	}
	for i, child := range n.Children {
		if i > 0 && b.Len() > 0 {
			b.WriteByte(' ')
		}
		child.collectText(b)
	}
	if n.Table != nil {
		b.WriteString(strings.Join(n.Table.Header, " "))
		for _, row := range n.Table.Rows {
			b.WriteByte(' ')
			b.WriteString(strings.Join(row, " "))
		}
	}
}

// Checked reports the checkbox state of a task item
func (n *Node) Checked() bool {
	return n.Attrs.Checked != nil && *n.Attrs.Checked
}
