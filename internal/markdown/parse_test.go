package markdown

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, text string) []*Node {
	t.Helper()
	nodes, err := Parse(text, Options{})
	require.NoError(t, err)
	return nodes
}

func kinds(nodes []*Node) []Kind {
	out := make([]Kind, len(nodes))
	for i, n := range nodes {
		out[i] = n.Kind
	}
	return out
}

func TestParseEmpty(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n  \r\n"} {
		nodes := parse(t, input)
		assert.NotNil(t, nodes)
		assert.Empty(t, nodes, "input %q", input)
	}
}

func TestHeadingLevels(t *testing.T) {
	for n := 1; n <= 6; n++ {
		t.Run(fmt.Sprintf("level %d", n), func(t *testing.T) {
			nodes := parse(t, strings.Repeat("#", n)+" Title")
			require.Len(t, nodes, 1)
			assert.Equal(t, KindHeading, nodes[0].Kind)
			assert.Equal(t, n, nodes[0].Level)
			assert.Equal(t, "Title", nodes[0].InnerText())
		})
	}

	t.Run("seven marks fall through", func(t *testing.T) {
		nodes := parse(t, "####### Too deep")
		require.Len(t, nodes, 1)
		assert.Equal(t, KindParagraph, nodes[0].Kind)
		assert.Equal(t, "####### Too deep", nodes[0].InnerText())
	})

	t.Run("no space is not a heading", func(t *testing.T) {
		nodes := parse(t, "#hashtag")
		require.Len(t, nodes, 1)
		assert.Equal(t, KindParagraph, nodes[0].Kind)
	})
}

func TestHeadingID(t *testing.T) {
	nodes := parse(t, "## Getting **started** {#setup}")
	require.Len(t, nodes, 1)
	assert.Equal(t, "setup", nodes[0].ID)
	assert.Equal(t, "Getting <strong>started</strong>", nodes[0].InnerText())
}

func TestTaskItems(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		checked bool
		text    string
		margin  string
	}{
		{name: "checked", input: "- [x] Done", checked: true, text: "Done"},
		{name: "upper case mark", input: "- [X] Shipped", checked: true, text: "Shipped"},
		{name: "unchecked", input: "- [ ] Todo", checked: false, text: "Todo"},
		{name: "nested", input: "intro\n    - [ ] Deep", checked: false, text: "Deep", margin: "40px"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := parse(t, tt.input)
			task := nodes[len(nodes)-1]
			require.Equal(t, KindTaskItem, task.Kind)
			assert.Equal(t, tt.checked, task.Checked())
			require.Len(t, task.Children, 2)
			assert.Equal(t, KindCheckbox, task.Children[0].Kind)
			assert.Equal(t, tt.checked, task.Children[0].Checked())
			assert.Equal(t, tt.text, task.Children[1].Text)
			assert.Equal(t, tt.margin, task.Attrs.Style["margin-left"])
		})
	}
}

func TestTableHeaderOnly(t *testing.T) {
	nodes := parse(t, "| H1 | H2 |")
	require.Len(t, nodes, 1)
	require.Equal(t, KindTable, nodes[0].Kind)
	assert.Equal(t, []string{"H1", "H2"}, nodes[0].Table.Header)
	assert.Empty(t, nodes[0].Table.Rows)
}

func TestTableWithAlignment(t *testing.T) {
	input := strings.Join([]string{
		"| A | B | C |",
		"|:--|:-:|--:|",
		"| 1 | **2** | 3 |",
		"| 4 | 5 |",
		"after",
	}, "\n")

	nodes := parse(t, input)
	require.Equal(t, []Kind{KindTable, KindParagraph}, kinds(nodes))

	table := nodes[0].Table
	assert.Equal(t, []Alignment{AlignLeft, AlignCenter, AlignRight}, table.Align)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"1", "<strong>2</strong>", "3"}, table.Rows[0])
	assert.Equal(t, []string{"4", "5"}, table.Rows[1], "short rows are not padded")
	assert.Equal(t, 5, nodes[1].Line)
}

func TestTableWithoutAlignmentRow(t *testing.T) {
	nodes := parse(t, "| A |\n| 1 |")
	require.Equal(t, []Kind{KindTable, KindParagraph}, kinds(nodes))
	assert.Empty(t, nodes[0].Table.Rows)
	assert.Equal(t, "| 1 |", nodes[1].InnerText())
}

func TestTableStopsAtSecondAlignmentRow(t *testing.T) {
	nodes := parse(t, "| A |\n|---|\n| 1 |\n|---|\n# Next")
	require.Equal(t, []Kind{KindTable, KindParagraph, KindHeading}, kinds(nodes))
	assert.Len(t, nodes[0].Table.Rows, 1)
	assert.Equal(t, 5, nodes[2].Line)
}

func TestCodeFence(t *testing.T) {
	input := strings.Join([]string{
		"```go {.numbered #main hl=2}",
		"func main() {",
		"\tok := 1 < 2 // **not bold**",
		"}",
		"```",
		"after",
	}, "\n")

	nodes := parse(t, input)
	require.Equal(t, []Kind{KindCodeBlock, KindParagraph}, kinds(nodes))

	code := nodes[0]
	assert.Equal(t, 1, code.Line)
	assert.Equal(t, "main", code.ID)
	assert.Equal(t, "go", code.Attrs.Language)
	assert.Equal(t, "language-go numbered", code.Attrs.Class)
	assert.Equal(t, map[string]string{"hl": "2"}, code.Attrs.Data)
	require.Len(t, code.Children, 1)
	assert.Equal(t, "func main() {\n\tok := 1 &lt; 2 // **not bold**\n}", code.Children[0].Text)
	assert.Equal(t, 6, nodes[1].Line)
}

func TestCodeFenceInfoRejectsMarkup(t *testing.T) {
	tests := []struct {
		name  string
		info  string
		class string
		id    string
		data  map[string]string
	}{
		{
			name:  "quote in key",
			info:  `{a"onmouseover=alert(1)//}`,
			class: "language-go",
		},
		{
			name:  "tag in key",
			info:  `{x"><img src=x onerror=alert(1)>=1}`,
			class: "language-go",
			data:  map[string]string{"src": "x", "onerror": "alert(1)&gt;=1"},
		},
		{
			name:  "markup in id",
			info:  `{#a"b ok=1}`,
			class: "language-go",
			data:  map[string]string{"ok": "1"},
		},
		{
			name:  "markup in class and value",
			info:  `{.a"b k=<i>}`,
			class: "language-go a&#34;b",
			data:  map[string]string{"k": "&lt;i&gt;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := parse(t, "```go "+tt.info+"\nok\n```")
			require.Len(t, nodes, 1)
			code := nodes[0]
			assert.Equal(t, KindCodeBlock, code.Kind)
			assert.Equal(t, tt.class, code.Attrs.Class)
			assert.Equal(t, tt.id, code.ID)
			assert.Equal(t, tt.data, code.Attrs.Data)
		})
	}
}

func TestOrderedListStartOverflow(t *testing.T) {
	nodes := parse(t, "99999999999999999999. big\n7. seven")
	require.Equal(t, []Kind{KindOrderedList, KindOrderedList}, kinds(nodes))
	assert.Equal(t, math.MaxInt, nodes[0].Start)
	assert.Equal(t, 7, nodes[1].Start)
}

func TestCodeFenceCustomPrefix(t *testing.T) {
	nodes, err := Parse("```rust\nfn main() {}\n```", Options{
		LangPrefix:    "lang-",
		CustomClasses: map[ElementType]string{CodeBlocks: "code"},
	})
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "code lang-rust", nodes[0].Attrs.Class)
}

func TestCodeFenceUnterminated(t *testing.T) {
	nodes := parse(t, "```\nline one\n# not a heading")
	require.Len(t, nodes, 1)
	assert.Equal(t, KindCodeBlock, nodes[0].Kind)
	assert.Equal(t, "", nodes[0].Attrs.Class)
	assert.Equal(t, "line one\n# not a heading", nodes[0].Children[0].Text)
}

func TestCodeFenceHidesBlockSyntax(t *testing.T) {
	nodes := parse(t, "```\nTerm\n: not a definition\n| a |\n```")
	require.Len(t, nodes, 1)
	assert.Equal(t, KindCodeBlock, nodes[0].Kind)
}

func TestBlockquote(t *testing.T) {
	nodes := parse(t, "> Stay *hungry* -- Steve Jobs\n> Second line")
	require.Equal(t, []Kind{KindBlockquote, KindBlockquote}, kinds(nodes))

	first := nodes[0]
	require.Len(t, first.Children, 2)
	assert.Equal(t, "Stay <em>hungry</em>", first.Children[0].Text)
	assert.Equal(t, KindCitation, first.Children[1].Kind)
	assert.Equal(t, "Steve Jobs", first.Children[1].InnerText())

	assert.Len(t, nodes[1].Children, 1)
}

func TestImageLine(t *testing.T) {
	nodes := parse(t, `![Logo](logo.png "The logo")`)
	require.Len(t, nodes, 1)
	img := nodes[0]
	assert.Equal(t, KindImage, img.Kind)
	assert.Equal(t, "logo.png", img.Attrs.Src)
	assert.Equal(t, "Logo", img.Attrs.Alt)
	assert.Equal(t, "The logo", img.Attrs.Title)
	assert.Empty(t, img.Children)
}

func TestLists(t *testing.T) {
	nodes := parse(t, "- one\n  * two\n+ three\n12. twelve")
	require.Equal(t, []Kind{KindUnorderedList, KindUnorderedList, KindUnorderedList, KindOrderedList}, kinds(nodes))

	assert.Nil(t, nodes[0].Attrs.Style)
	assert.Equal(t, Style{"margin-left": "20px"}, nodes[1].Attrs.Style)
	assert.Equal(t, 12, nodes[3].Start)

	for _, n := range nodes {
		require.Len(t, n.Children, 1)
		assert.Equal(t, KindListItem, n.Children[0].Kind)
	}
	assert.Equal(t, "twelve", nodes[3].InnerText())
}

func TestHorizontalRule(t *testing.T) {
	for _, input := range []string{"---", "***", "___", "* * *", "- - - -"} {
		nodes := parse(t, input)
		require.Len(t, nodes, 1, "input %q", input)
		assert.Equal(t, KindRule, nodes[0].Kind, "input %q", input)
	}
}

func TestDefinitionList(t *testing.T) {
	nodes := parse(t, "Go\n: A language\n:   Made at *Google*\nNext")
	require.Equal(t, []Kind{KindDefinitionList, KindParagraph}, kinds(nodes))

	dl := nodes[0]
	require.Len(t, dl.Children, 3)
	assert.Equal(t, KindTerm, dl.Children[0].Kind)
	assert.Equal(t, "Go", dl.Children[0].InnerText())
	assert.Equal(t, KindDefinition, dl.Children[1].Kind)
	assert.Equal(t, "A language", dl.Children[1].InnerText())
	assert.Equal(t, "Made at <em>Google</em>", dl.Children[2].InnerText())
	assert.Equal(t, 4, nodes[1].Line)
}

func TestNestingCeiling(t *testing.T) {
	var lines []string
	for depth := 0; depth < 7; depth++ {
		lines = append(lines, strings.Repeat("  ", depth)+fmt.Sprintf("- level %d", depth))
	}

	nodes, err := Parse(strings.Join(lines, "\n"), Options{MaxNestingLevel: 3})
	require.NoError(t, err)
	require.Len(t, nodes, 7)

	for depth, n := range nodes {
		if depth <= 3 {
			assert.Equal(t, KindUnorderedList, n.Kind, "depth %d", depth)
			continue
		}
		assert.Equal(t, KindError, n.Kind, "depth %d", depth)
		require.Len(t, n.Children, 1)
		assert.Equal(t, MaxNestingMessage, n.Children[0].Text)
	}
}

func TestNestingResetsAfterOtherLines(t *testing.T) {
	nodes, err := Parse("- a\n      - too deep\nplain\n- b", Options{MaxNestingLevel: 2})
	require.NoError(t, err)
	assert.Equal(t, []Kind{KindUnorderedList, KindError, KindParagraph, KindUnorderedList}, kinds(nodes))
}

func TestSanitizeHTML(t *testing.T) {
	input := "<script>alert('x')</script> **hi**"

	nodes := parse(t, input)
	require.Len(t, nodes, 1)
	assert.Equal(t, "&lt;script&gt;alert(&#39;x&#39;)&lt;/script&gt; <strong>hi</strong>", nodes[0].InnerText())

	nodes, err := Parse(input, Options{SanitizeHTML: Bool(false)})
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "<script>alert('x')</script> <strong>hi</strong>", nodes[0].InnerText())
}

func TestBlankLinesAreSuppressed(t *testing.T) {
	nodes := parse(t, "first\n\n   \nsecond")
	require.Equal(t, []Kind{KindParagraph, KindParagraph}, kinds(nodes))
	assert.Equal(t, 1, nodes[0].Line)
	assert.Equal(t, 4, nodes[1].Line)
}

func TestCRLF(t *testing.T) {
	nodes := parse(t, "# Title\r\nbody\r\n")
	require.Equal(t, []Kind{KindHeading, KindParagraph}, kinds(nodes))
	assert.Equal(t, "Title", nodes[0].InnerText())
}

func TestCustomAttributes(t *testing.T) {
	opts := Options{
		CustomClasses: map[ElementType]string{Headings: "title", Lists: "bullets"},
		CustomStyles: map[ElementType]Style{
			Lists: {"color": "red", "margin-left": "5px"},
		},
	}
	nodes, err := Parse("# Hi\n  - item\nplain", opts)
	require.NoError(t, err)
	require.Len(t, nodes, 3)

	assert.Equal(t, "title", nodes[0].Attrs.Class)
	assert.Equal(t, "bullets", nodes[1].Attrs.Class)
	assert.Equal(t, Style{"color": "red", "margin-left": "20px"}, nodes[1].Attrs.Style)
	assert.Equal(t, "", nodes[2].Attrs.Class)
	assert.Nil(t, nodes[2].Attrs.Style)
}

func TestInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{name: "link target", opts: Options{LinkTarget: "_new"}},
		{name: "negative nesting", opts: Options{MaxNestingLevel: -1}},
		{name: "element type", opts: Options{CustomClasses: map[ElementType]string{"buttons": "x"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, err := Parse("# hi", tt.opts)
			assert.ErrorIs(t, err, ErrInvalidOptions)
			assert.Nil(t, nodes)
			assert.Panics(t, func() { MustParse("# hi", tt.opts) })
		})
	}
}

func TestParseIsolatedAcrossGoroutines(t *testing.T) {
	inputs := []string{
		"```go\nx := 1\n",
		"| a | b |\n|---|---|\n| 1 | 2 |",
		"- a\n  - b\n    - c",
		"# Title\n> quote -- me",
	}
	want := make([][]Kind, len(inputs))
	for i, in := range inputs {
		want[i] = kinds(MustParse(in, Options{}))
	}

	var wg sync.WaitGroup
	errs := make(chan string, 400)
	for n := 0; n < 100; n++ {
		for i, in := range inputs {
			wg.Add(1)
			go func(i int, in string) {
				defer wg.Done()
				got := kinds(MustParse(in, Options{}))
				if fmt.Sprint(got) != fmt.Sprint(want[i]) {
					errs <- fmt.Sprintf("input %d: got %v, want %v", i, got, want[i])
				}
			}(i, in)
		}
	}
	wg.Wait()
	close(errs)

	for e := range errs {
		t.Error(e)
	}
}
