package markdown

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	taskPattern    = regexp.MustCompile(`^(\s*)-\s+\[([ xX])\](?:\s+(.*))?$`)
	headingPattern = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	headingID      = regexp.MustCompile(`\s*\{#([\w-]+)\}\s*$`)
	fencePattern   = regexp.MustCompile("^```\\s*([\\w+#.-]*)\\s*(\\{[^}]*\\})?\\s*$")
	quotePattern   = regexp.MustCompile(`^>\s+(.*)$`)
	imagePattern   = regexp.MustCompile(`^!\[([^\]]*)\]\(\s*([^\s)]+)(?:\s+"([^"]*)")?\s*\)$`)
	rulePattern    = regexp.MustCompile(`^(?:(?:-[ \t]*){3,}|(?:\*[ \t]*){3,}|(?:_[ \t]*){3,})$`)
	listPattern    = regexp.MustCompile(`^(\s*)([-*+]|\d+\.)\s+(.*)$`)

	// fence info keys become data-* attribute names and ids become id
	// values, so both are limited to name characters
	dataKeyPattern = regexp.MustCompile(`^[A-Za-z][\w-]*$`)
	fenceIDPattern = regexp.MustCompile(`^[\w-]+$`)
)

// citationSeparator splits a blockquote line from its attribution
const citationSeparator = " -- "

// scanner holds the state of one Parse call. It is never shared.
type scanner struct {
	opts   Options
	format *Formatter
	lines  []string
	nodes  []*Node

	inCode    bool
	codeStart int
	codeLang  string
	codeInfo  string
	codeBuf   []string

	nesting nestingGuard
}

// recognizer tries one block construct at line i and reports how many
// lines it consumed
type recognizer func(s *scanner, i int) (consumed int, ok bool)

// blockRules run in order for every line outside a code fence; the first
// match wins. paragraph always matches.
var blockRules = []recognizer{
	(*scanner).definitionList,
	(*scanner).taskItem,
	(*scanner).heading,
	(*scanner).fenceOpen,
	(*scanner).blockquote,
	(*scanner).table,
	(*scanner).image,
	(*scanner).rule,
	(*scanner).list,
	(*scanner).paragraph,
}

func newScanner(lines []string, opts Options) *scanner {
	return &scanner{
		opts:    opts,
		format:  NewFormatter(opts),
		lines:   lines,
		nodes:   []*Node{},
		nesting: nestingGuard{max: opts.MaxNestingLevel},
	}
}

// run walks the lines with an explicit cursor; recognizers may consume
// more than one line
func (s *scanner) run() []*Node {
	for i := 0; i < len(s.lines); {
		i += s.dispatch(i)
	}
	// An unterminated fence still yields its code
	if s.inCode {
		s.closeFence()
	}
	return s.nodes
}

func (s *scanner) dispatch(i int) int {
	line := s.lines[i]

	if s.inCode {
		if isFence(line) {
			s.closeFence()
			return 1
		}
		s.codeBuf = append(s.codeBuf, line)
		return 1
	}

	s.nesting.observe(line)
	if s.nesting.exceeded() {
		s.emit(i, &Node{
			Kind:     KindError,
			Children: []*Node{textNode(MaxNestingMessage)},
		})
		return 1
	}

	for _, rule := range blockRules {
		if n, ok := rule(s, i); ok {
			return n
		}
	}
	return 1
}

func (s *scanner) emit(i int, n *Node) {
	n.Line = i + 1
	s.nodes = append(s.nodes, n)
}

func (s *scanner) formatted(text string) []*Node {
	return []*Node{textNode(s.format.Format(strings.TrimSpace(text)))}
}

func (s *scanner) definitionList(i int) (int, bool) {
	term := strings.TrimSpace(s.lines[i])
	if term == "" || strings.HasPrefix(term, ":") || i+1 >= len(s.lines) {
		return 0, false
	}
	if !strings.HasPrefix(strings.TrimSpace(s.lines[i+1]), ":") {
		return 0, false
	}

	node := &Node{
		Kind:  KindDefinitionList,
		Attrs: s.opts.Resolve(DefinitionLists, Attributes{}),
		Children: []*Node{
			{Kind: KindTerm, Children: s.formatted(term)},
		},
	}

	j := i + 1
	for ; j < len(s.lines); j++ {
		def := strings.TrimSpace(s.lines[j])
		if !strings.HasPrefix(def, ":") {
			break
		}
		node.Children = append(node.Children, &Node{
			Kind:     KindDefinition,
			Children: s.formatted(def[1:]),
		})
	}

	s.emit(i, node)
	return j - i, true
}

func (s *scanner) taskItem(i int) (int, bool) {
	m := taskPattern.FindStringSubmatch(s.lines[i])
	if m == nil {
		return 0, false
	}
	checked := m[2] != " "
	level := nestingLevel(s.lines[i])

	s.emit(i, &Node{
		Kind: KindTaskItem,
		Attrs: s.opts.Resolve(TaskItems, Attributes{
			Checked: Bool(checked),
			Style:   marginStyle(level),
		}),
		Children: []*Node{
			{Kind: KindCheckbox, Attrs: Attributes{Checked: Bool(checked)}},
			textNode(s.format.Format(strings.TrimSpace(m[3]))),
		},
	})
	return 1, true
}

func (s *scanner) heading(i int) (int, bool) {
	m := headingPattern.FindStringSubmatch(strings.TrimSpace(s.lines[i]))
	if m == nil {
		return 0, false
	}

	text := m[2]
	var id string
	if idm := headingID.FindStringSubmatch(text); idm != nil {
		id = idm[1]
		text = headingID.ReplaceAllString(text, "")
	}

	s.emit(i, &Node{
		Kind:     KindHeading,
		Level:    len(m[1]),
		ID:       id,
		Attrs:    s.opts.Resolve(Headings, Attributes{}),
		Children: s.formatted(text),
	})
	return 1, true
}

func isFence(line string) bool {
	return fencePattern.MatchString(strings.TrimSpace(line))
}

func (s *scanner) fenceOpen(i int) (int, bool) {
	m := fencePattern.FindStringSubmatch(strings.TrimSpace(s.lines[i]))
	if m == nil {
		return 0, false
	}
	s.inCode = true
	s.codeStart = i
	s.codeLang = m[1]
	s.codeInfo = m[2]
	s.codeBuf = nil
	return 1, true
}

// closeFence emits the buffered code. Code is never inline formatted.
func (s *scanner) closeFence() {
	local := Attributes{Language: s.codeLang}
	if s.codeLang != "" {
		local.Class = s.opts.LangPrefix + s.codeLang
	}
	id := s.applyFenceInfo(&local, s.codeInfo)

	content := s.opts.sanitize(strings.Join(s.codeBuf, "\n"))
	s.emit(s.codeStart, &Node{
		Kind:     KindCodeBlock,
		ID:       id,
		Attrs:    s.opts.Resolve(CodeBlocks, local),
		Children: []*Node{textNode(content)},
	})

	s.inCode = false
	s.codeLang = ""
	s.codeInfo = ""
	s.codeBuf = nil
}

// applyFenceInfo reads a {.class #id key=value flag} block from a fence
// line into attrs and returns the id, if any. Ids and keys that are not
// plain names are dropped.
func (s *scanner) applyFenceInfo(attrs *Attributes, info string) string {
	info = strings.TrimSuffix(strings.TrimPrefix(info, "{"), "}")
	var id string
	for _, field := range strings.Fields(info) {
		switch {
		case strings.HasPrefix(field, "."):
			attrs.Class = joinClasses(attrs.Class, s.opts.sanitize(field[1:]))
		case strings.HasPrefix(field, "#"):
			if fenceIDPattern.MatchString(field[1:]) {
				id = field[1:]
			}
		default:
			key, value, found := strings.Cut(field, "=")
			if !dataKeyPattern.MatchString(key) {
				continue
			}
			if !found {
				value = "true"
			}
			if attrs.Data == nil {
				attrs.Data = make(map[string]string)
			}
			attrs.Data[key] = s.opts.sanitize(strings.Trim(value, `"'`))
		}
	}
	return id
}

func (s *scanner) blockquote(i int) (int, bool) {
	m := quotePattern.FindStringSubmatch(strings.TrimSpace(s.lines[i]))
	if m == nil {
		return 0, false
	}

	quote, citation, cited := strings.Cut(m[1], citationSeparator)
	node := &Node{
		Kind:     KindBlockquote,
		Attrs:    s.opts.Resolve(Blockquotes, Attributes{}),
		Children: s.formatted(quote),
	}
	if cited {
		node.Children = append(node.Children, &Node{
			Kind:     KindCitation,
			Children: s.formatted(citation),
		})
	}

	s.emit(i, node)
	return 1, true
}

func (s *scanner) image(i int) (int, bool) {
	m := imagePattern.FindStringSubmatch(strings.TrimSpace(s.lines[i]))
	if m == nil {
		return 0, false
	}
	s.emit(i, &Node{
		Kind: KindImage,
		Attrs: s.opts.Resolve(Images, Attributes{
			Src:   s.opts.sanitize(m[2]),
			Alt:   s.opts.sanitize(m[1]),
			Title: s.opts.sanitize(m[3]),
		}),
	})
	return 1, true
}

func (s *scanner) rule(i int) (int, bool) {
	if !rulePattern.MatchString(strings.TrimSpace(s.lines[i])) {
		return 0, false
	}
	s.emit(i, &Node{Kind: KindRule})
	return 1, true
}

func (s *scanner) list(i int) (int, bool) {
	m := listPattern.FindStringSubmatch(s.lines[i])
	if m == nil {
		return 0, false
	}

	node := &Node{
		Kind: KindUnorderedList,
		Attrs: s.opts.Resolve(Lists, Attributes{
			Style: marginStyle(nestingLevel(s.lines[i])),
		}),
		Children: []*Node{
			{Kind: KindListItem, Children: s.formatted(m[3])},
		},
	}
	if marker := m[2]; strings.HasSuffix(marker, ".") {
		node.Kind = KindOrderedList
		node.Start = listStart(strings.TrimSuffix(marker, "."))
	}

	s.emit(i, node)
	return 1, true
}

// listStart reads an ordered list number. Numbers too large for an int
// are clamped rather than lost.
func listStart(digits string) int {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return math.MaxInt
	}
	return n
}

// paragraph is the fallback. Lines that format to nothing emit nothing.
func (s *scanner) paragraph(i int) (int, bool) {
	text := s.format.Format(strings.TrimSpace(s.lines[i]))
	if strings.TrimSpace(text) == "" {
		return 1, true
	}
	s.emit(i, &Node{
		Kind:     KindParagraph,
		Attrs:    s.opts.Resolve(Paragraphs, Attributes{}),
		Children: []*Node{textNode(text)},
	})
	return 1, true
}
